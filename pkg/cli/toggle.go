package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/getmockd/mockswitch/pkg/api/types"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Pick enabled handlers interactively",
	Long: `Open a checklist of every handler. Checked handlers are enabled and
unchecked ones disabled; the changes are applied with a single worker restart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client()
		handlers, err := c.ListHandlers()
		if err != nil {
			return FormatConnectionError(err)
		}
		if len(handlers) == 0 {
			return ErrNothingSelected
		}

		selected := enabledIDs(handlers)
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title("Which handlers should be enabled?").
					Options(toggleOptions(handlers)...).
					Filterable(true).
					Value(&selected),
			),
		)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing changed")
				return nil
			}
			return err
		}

		changes := toggleChanges(handlers, selected)
		if len(changes) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes")
			return nil
		}
		states, err := c.ApplyConfig(changes)
		if err != nil {
			return FormatConnectionError(err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d changes\n", len(changes))
		return printConfig(cmd.OutOrStdout(), states)
	},
}

func toggleOptions(handlers []types.Handler) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(handlers))
	for _, h := range handlers {
		label := fmt.Sprintf("[%s] %s  %s", h.GroupName, h.ID, h.Description)
		opts = append(opts, huh.NewOption(label, h.ID))
	}
	return opts
}

func enabledIDs(handlers []types.Handler) []string {
	var ids []string
	for _, h := range handlers {
		if h.Enabled {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

// toggleChanges returns the states that differ from handlers once exactly
// the selected IDs are enabled.
func toggleChanges(handlers []types.Handler, selected []string) map[string]bool {
	changes := make(map[string]bool)
	for _, h := range handlers {
		want := slices.Contains(selected, h.ID)
		if want != h.Enabled {
			changes[h.ID] = want
		}
	}
	return changes
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
