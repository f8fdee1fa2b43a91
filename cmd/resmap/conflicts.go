package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/resmap-dev/resmap/internal/domain"
	"github.com/resmap-dev/resmap/pkg/resmap"
)

type resolveKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Skip   key.Binding
}

var resolveKeys = resolveKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
	Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep this mapping")),
	Skip:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "skip this conflict")),
}

func newConflictsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Inspect and resolve repository path conflicts",
	}

	cmd.AddCommand(newConflictsListCommand(), newConflictsResolveCommand())
	return cmd
}

func sortedActiveConflicts(ctx context.Context, client *resmap.Client) ([]*domain.RepositoryPathConflict, error) {
	conflicts, err := client.ActiveConflicts(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].RepositoryPath().String() < conflicts[j].RepositoryPath().String()
	})
	return conflicts, nil
}

func newConflictsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every current repository path conflict",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			conflicts, err := sortedActiveConflicts(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("refresh conflicts: %w", err)
			}
			if len(conflicts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no conflicts")
				return nil
			}

			for _, c := range conflicts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d mappings)\n", c.RepositoryPath().String(), c.Len())
			}
			return nil
		},
	}
}

func newConflictsResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Interactively pick which mapping keeps each contested repository path",
		Long: `resolve is purely advisory: it unloads every mapping at a contested
repository path except the one you choose to keep. It never mutates anything
beyond calling Unload on the losing mappings, so the core's semantics are
untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("conflicts resolve requires an interactive terminal; use 'conflicts list' instead")
			}

			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			conflicts, err := sortedActiveConflicts(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("refresh conflicts: %w", err)
			}
			if len(conflicts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no conflicts")
				return nil
			}

			for _, c := range conflicts {
				model := newResolveModel(c)
				program := tea.NewProgram(model)
				result, err := program.Run()
				if err != nil {
					return fmt.Errorf("resolve conflict at %s: %w", c.RepositoryPath().String(), err)
				}

				finalModel := result.(resolveModel)
				if finalModel.chosen < 0 {
					continue // user quit without choosing; leave this conflict as-is
				}

				for i, m := range c.Mappings() {
					if i == finalModel.chosen {
						continue
					}
					if err := m.Unload(); err != nil {
						return fmt.Errorf("unload losing mapping: %w", err)
					}
				}
			}

			return nil
		},
	}
}

// resolveModel is a bubbletea model for picking the winning mapping among a
// single conflict's members with the arrow keys.
type resolveModel struct {
	conflict *domain.RepositoryPathConflict
	options  []string
	cursorAt int
	chosen   int
}

func newResolveModel(c *domain.RepositoryPathConflict) resolveModel {
	mappings := c.Mappings()
	options := make([]string, len(mappings))
	for i, m := range mappings {
		pkg, err := m.GetContainingPackage()
		if err != nil {
			options[i] = m.GetRepositoryPath().String()
			continue
		}
		options[i] = fmt.Sprintf("%s (package %s)", m.GetRepositoryPath().String(), pkg.Name())
	}

	return resolveModel{
		conflict: c,
		options:  options,
		chosen:   -1,
	}
}

func (m resolveModel) Init() tea.Cmd {
	return nil
}

func (m resolveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, resolveKeys.Up):
		if m.cursorAt > 0 {
			m.cursorAt--
		}
	case key.Matches(keyMsg, resolveKeys.Down):
		if m.cursorAt < len(m.options)-1 {
			m.cursorAt++
		}
	case key.Matches(keyMsg, resolveKeys.Choose):
		m.chosen = m.cursorAt
		return m, tea.Quit
	case key.Matches(keyMsg, resolveKeys.Skip):
		return m, tea.Quit
	}
	return m, nil
}

var (
	resolveTitleStyle    = lipgloss.NewStyle().Bold(true)
	resolveSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

func (m resolveModel) View() string {
	view := resolveTitleStyle.Render(fmt.Sprintf("Conflict at %s - pick the mapping to keep:", m.conflict.RepositoryPath().String())) + "\n"
	for i, opt := range m.options {
		cursorGlyph := "  "
		line := opt
		if i == m.cursorAt {
			cursorGlyph = "> "
			line = resolveSelectedStyle.Render(opt)
		}
		view += cursorGlyph + line + "\n"
	}
	view += fmt.Sprintf("\n(%s/%s, %s, %s)\n",
		resolveKeys.Up.Help().Key, resolveKeys.Down.Help().Key,
		resolveKeys.Choose.Help().Desc, resolveKeys.Skip.Help().Desc)
	return view
}
