package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockswitch/pkg/cli/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List handlers and their states",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handlers, err := client().ListHandlers()
		if err != nil {
			return FormatConnectionError(err)
		}
		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), handlers)
		}
		return printHandlers(cmd.OutOrStdout(), handlers)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one handler",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := client().GetHandler(args[0])
		if err != nil {
			return FormatConnectionError(err)
		}
		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), h)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) status: %s\n", h.Description, h.ID, output.OnOff(h.Enabled))
		return err
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a handler and restart the worker",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetHandler(true),
}

var disableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a handler and restart the worker",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetHandler(false),
}

func runSetHandler(enabled bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		h, err := client().SetHandler(args[0], enabled)
		if err != nil {
			return FormatConnectionError(err)
		}
		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), h)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", h.Description, h.ID, output.OnOff(h.Enabled))
		return err
	}
}

var enableGroupCmd = &cobra.Command{
	Use:   "enable-group <name>",
	Short: "Enable every handler in a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetGroup(true),
}

var disableGroupCmd = &cobra.Command{
	Use:   "disable-group <name>",
	Short: "Disable every handler in a group",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetGroup(false),
}

func runSetGroup(enabled bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		resp, err := client().SetGroup(args[0], enabled)
		if err != nil {
			return FormatConnectionError(err)
		}
		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), resp)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Group %s: %d handlers %sd\n", resp.Group, len(resp.Handlers), action(enabled))
		return printHandlers(cmd.OutOrStdout(), resp.Handlers)
	}
}

var enableAllCmd = &cobra.Command{
	Use:   "enable-all",
	Short: "Enable every handler",
	Args:  cobra.NoArgs,
	RunE:  runSetAll(true),
}

var disableAllCmd = &cobra.Command{
	Use:   "disable-all",
	Short: "Disable every handler",
	Args:  cobra.NoArgs,
	RunE:  runSetAll(false),
}

func runSetAll(enabled bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		handlers, err := client().SetAll(enabled)
		if err != nil {
			return FormatConnectionError(err)
		}
		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), handlers)
		}
		return printHandlers(cmd.OutOrStdout(), handlers)
	}
}

func init() {
	rootCmd.AddCommand(listCmd, getCmd, enableCmd, disableCmd,
		enableGroupCmd, disableGroupCmd, enableAllCmd, disableAllCmd)
}
