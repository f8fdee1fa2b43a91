package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resmap-dev/resmap/internal/domain"
)

func newApplyCommand() *cobra.Command {
	var addPath string
	var addReferences []string
	var removePath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Build a transaction from the requested edits and apply it atomically",
		Long: `apply builds a single Transaction from the --add and --remove flags given
on the command line and executes it. If any step fails, every already-applied
step in the transaction is rolled back and the root package file is left
exactly as it was before apply ran.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addPath == "" && removePath == "" {
				return fmt.Errorf("apply requires at least one of --add or --remove")
			}

			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			var ops []domain.Operation

			if addPath != "" {
				pathResult := domain.NewRepositoryPath(addPath)
				if pathResult.IsErr() {
					return fmt.Errorf("invalid --add repository path %q: %w", addPath, pathResult.UnwrapErr())
				}
				if len(addReferences) == 0 {
					return fmt.Errorf("--add requires at least one --reference")
				}
				refs := make([]domain.PathReference, len(addReferences))
				for i, r := range addReferences {
					refs[i] = domain.PathReference(r)
				}
				mappingResult := domain.NewResourceMapping(pathResult.Unwrap(), refs)
				if mappingResult.IsErr() {
					return fmt.Errorf("invalid mapping: %w", mappingResult.UnwrapErr())
				}
				ops = append(ops, domain.NewAddResourceMappingOp(mappingResult.Unwrap()))
			}

			if removePath != "" {
				pathResult := domain.NewRepositoryPath(removePath)
				if pathResult.IsErr() {
					return fmt.Errorf("invalid --remove repository path %q: %w", removePath, pathResult.UnwrapErr())
				}
				ops = append(ops, domain.NewRemoveResourceMappingOp(pathResult.Unwrap()))
			}

			txn := domain.NewTransaction(ops...)
			if err := client.Apply(cmd.Context(), txn); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&addPath, "add", "", "Repository path to add a mapping for")
	cmd.Flags().StringArrayVar(&addReferences, "reference", nil, "Path reference for the mapping given by --add (repeatable)")
	cmd.Flags().StringVar(&removePath, "remove", "", "Repository path to remove the mapping for")

	return cmd
}
