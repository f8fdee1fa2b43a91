package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resmap-dev/resmap/internal/recipe"
)

func newGenerateCommand() *cobra.Command {
	var outputPath string
	var packageName string
	var forceInProcess bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a build recipe from the currently enabled mappings",
		Long: `generate prefers the external resmap-recipe tool when it is present on
$PATH, streaming its output live. When the tool isn't installed, or
--in-process is given, it falls back to rendering the recipe with the
built-in template.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !forceInProcess && recipe.ExternalToolAvailable() {
				if err := recipe.RunExternal(cmd.Context(), outputPath, cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("external recipe generation: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outputPath)
				return nil
			}

			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			content, err := client.GenerateRecipe(recipe.Options{PackageName: packageName})
			if err != nil {
				return fmt.Errorf("generate recipe: %w", err)
			}

			if outputPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(content))
				return nil
			}

			if err := os.WriteFile(outputPath, content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to write the recipe to (stdout if empty, in-process mode only)")
	cmd.Flags().StringVar(&packageName, "name", "", "Name used in the generated recipe's header comment")
	cmd.Flags().BoolVar(&forceInProcess, "in-process", false, "Skip the external resmap-recipe tool even if it is on PATH")

	return cmd
}
