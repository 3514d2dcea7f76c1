package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockswitch/pkg/cli/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the handler state map",
	Long: `Show the handler state map of a running instance.

Subcommands change it: set applies several states with a single worker
restart, save persists the in-memory states, reload re-reads them from
storage and reset restores the states declared in configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfigResult(cmd, client().GetConfig)
	},
}

var configSetCmd = &cobra.Command{
	Use:     "set <id>=<on|off> [<id>=<on|off>...]",
	Short:   "Set several handler states at once",
	Example: `  mockswitch config set get-users=off create-user=on`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		states, err := parseAssignments(args)
		if err != nil {
			return err
		}
		return printConfigResult(cmd, func() (map[string]bool, error) {
			return client().ApplyConfig(states)
		})
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the in-memory handler states",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfigResult(cmd, client().SaveConfig)
	},
}

var configReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload handler states from storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfigResult(cmd, client().ReloadConfig)
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the handler states declared in configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfigResult(cmd, client().ResetConfig)
	},
}

func printConfigResult(cmd *cobra.Command, fn func() (map[string]bool, error)) error {
	states, err := fn()
	if err != nil {
		return FormatConnectionError(err)
	}
	if jsonOutput {
		return output.JSON(cmd.OutOrStdout(), states)
	}
	return printConfig(cmd.OutOrStdout(), states)
}

// parseAssignments parses id=state pairs. States accept on/off and anything
// strconv.ParseBool understands.
func parseAssignments(args []string) (map[string]bool, error) {
	states := make(map[string]bool, len(args))
	for _, arg := range args {
		id, value, ok := strings.Cut(arg, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected <id>=<on|off>", arg)
		}
		enabled, err := parseState(value)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment %q: %w", arg, err)
		}
		states[id] = enabled
	}
	return states, nil
}

func parseState(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "enable", "enabled":
		return true, nil
	case "off", "disable", "disabled":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("unknown state %q", s)
	}
	return b, nil
}

func init() {
	configCmd.AddCommand(configSetCmd, configSaveCmd, configReloadCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}
