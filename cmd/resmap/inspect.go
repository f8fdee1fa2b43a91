package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/resmap-dev/resmap/internal/domain"
)

func newInspectCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the root package file as syntax-highlighted JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			content, err := marshalRootPackageFile(client.RootPackageFile())
			if err != nil {
				return fmt.Errorf("marshal root package file: %w", err)
			}

			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), string(content))
				return nil
			}

			var highlighted strings.Builder
			if err := quick.Highlight(&highlighted, string(content), ".json", "terminal256", "monokai"); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), string(content))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), highlighted.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print plain JSON with no syntax highlighting")
	return cmd
}

type inspectMapping struct {
	RepositoryPath string   `json:"repositoryPath"`
	References     []string `json:"references"`
	State          string   `json:"state"`
}

// marshalRootPackageFile renders file as indented JSON for display. It is a
// read-only view built from the public accessors and is not the on-disk
// persistence format (see internal/store, which owns that).
func marshalRootPackageFile(file *domain.RootPackageFile) ([]byte, error) {
	mappings := file.All()
	view := make([]inspectMapping, 0, len(mappings))
	for _, m := range mappings {
		refs := m.GetPathReferences()
		refStrings := make([]string, len(refs))
		for i, r := range refs {
			refStrings[i] = string(r)
		}
		view = append(view, inspectMapping{
			RepositoryPath: m.GetRepositoryPath().String(),
			References:     refStrings,
			State:          m.GetState().String(),
		})
	}

	return json.MarshalIndent(view, "", "  ")
}
