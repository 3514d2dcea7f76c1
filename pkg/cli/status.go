package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockswitch/pkg/api/types"
	"github.com/getmockd/mockswitch/pkg/cli/internal/output"
)

// StatusOutput is the JSON form of the status command.
type StatusOutput struct {
	AdminURL string               `json:"adminUrl"`
	Health   types.HealthResponse `json:"health"`
	Worker   types.WorkerStatus   `json:"worker"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show status of a running mockswitch instance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client()
		health, err := c.Health()
		if err != nil {
			return FormatConnectionError(err)
		}
		worker, err := c.WorkerStatus()
		if err != nil {
			return FormatConnectionError(err)
		}

		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), StatusOutput{AdminURL: adminURL, Health: *health, Worker: *worker})
		}

		w := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(w, "mockswitch is %s at %s", health.Status, adminURL)
		if health.Version != "" {
			_, _ = fmt.Fprintf(w, " (%s)", health.Version)
		}
		_, _ = fmt.Fprintf(w, ", up %s\n", time.Duration(health.Uptime)*time.Second)
		return printWorker(w, worker)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
