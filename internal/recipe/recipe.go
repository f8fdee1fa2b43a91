// Package recipe generates the static "build recipe" source file that maps
// each enabled repository path to its resolved filesystem paths, for
// consumption by a generated runtime registry. The core never generates
// code itself; this package is the external collaborator named in the
// specification for that concern.
package recipe

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/resmap-dev/resmap/internal/domain"
)

const recipeTemplate = `// Code generated by resmap generate. DO NOT EDIT.

package {{.Package}}

// Recipe maps a repository path to its resolved filesystem paths.
var Recipe = map[string][]string{
{{- range .Entries}}
	{{printf "%q" .RepositoryPath}}: { {{range $i, $p := .FilesystemPaths}}{{if $i}}, {{end}}{{printf "%q" $p}}{{end}} },
{{- end}}
}
`

// Entry is a single recipe row: one enabled repository path and the
// filesystem paths it resolved to.
type Entry struct {
	RepositoryPath  string
	FilesystemPaths []string
}

// Options configures Generate.
type Options struct {
	// PackageName is the Go package name the generated file declares.
	PackageName string
}

var parsedTemplate = template.Must(template.New("recipe").Parse(recipeTemplate))

// Generate renders the recipe source for every Enabled mapping in file, in
// repository-path-sorted order for reproducible output. Mappings that are
// Unloaded, NotFound, or Conflict contribute nothing: only a mapping with at
// least one resolved filesystem path belongs in a build recipe.
func Generate(file *domain.RootPackageFile, opts Options) ([]byte, error) {
	if opts.PackageName == "" {
		opts.PackageName = "recipe"
	}

	entries := collectEntries(file)

	var buf bytes.Buffer
	if err := parsedTemplate.Execute(&buf, struct {
		Package string
		Entries []Entry
	}{
		Package: opts.PackageName,
		Entries: entries,
	}); err != nil {
		return nil, fmt.Errorf("render recipe template: %w", err)
	}

	return buf.Bytes(), nil
}

func collectEntries(file *domain.RootPackageFile) []Entry {
	var entries []Entry
	for _, m := range file.All() {
		if !m.IsEnabled() {
			continue
		}
		paths, err := m.GetFilesystemPaths()
		if err != nil {
			// Enabled implies loaded, so this should be unreachable; skip
			// defensively rather than fail the whole recipe.
			continue
		}
		entries = append(entries, Entry{
			RepositoryPath:  m.GetRepositoryPath().String(),
			FilesystemPaths: paths,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RepositoryPath < entries[j].RepositoryPath
	})

	return entries
}
