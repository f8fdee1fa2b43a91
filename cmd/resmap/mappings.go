package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resmap-dev/resmap/internal/domain"
)

func newMappingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Operate on root package file entries",
	}

	cmd.AddCommand(newMappingsListCommand(), newMappingsLoadCommand())
	return cmd
}

func newMappingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every recorded mapping and its state",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			for _, m := range client.RootPackageFile().All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.GetRepositoryPath().String(), m.GetState().String())
			}
			return nil
		},
	}
}

func newMappingsLoadCommand() *cobra.Command {
	var packageName string
	var repoURL string

	cmd := &cobra.Command{
		Use:   "load <repository-path>",
		Short: "Resolve a mapping's path references against its containing package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			pathResult := domain.NewRepositoryPath(args[0])
			if pathResult.IsErr() {
				return fmt.Errorf("invalid repository path %q: %w", args[0], pathResult.UnwrapErr())
			}

			if err := client.LoadMapping(cmd.Context(), pathResult.Unwrap(), domain.PackageName(packageName), repoURL); err != nil {
				return fmt.Errorf("load mapping: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "loaded %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&packageName, "package", "", "Name of the containing package (required)")
	cmd.Flags().StringVar(&repoURL, "repo-url", "", "Git URL to clone if the package isn't installed and auto-install is enabled")
	_ = cmd.MarkFlagRequired("package")

	return cmd
}
