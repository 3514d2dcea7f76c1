package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/getmockd/mockswitch/pkg/api/types"
	"github.com/getmockd/mockswitch/pkg/cli/internal/output"
)

// printHandlers writes handlers as an aligned table.
func printHandlers(w io.Writer, handlers []types.Handler) error {
	if len(handlers) == 0 {
		_, err := fmt.Fprintln(w, "No handlers registered")
		return err
	}
	tw := output.Table(w)
	_, _ = fmt.Fprintln(tw, "GROUP\tID\tSTATUS\tDESCRIPTION")
	for _, h := range handlers {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.GroupName, h.ID, output.OnOff(h.Enabled), h.Description)
	}
	return tw.Flush()
}

// printConfig writes a state map sorted by handler ID.
func printConfig(w io.Writer, states map[string]bool) error {
	if len(states) == 0 {
		_, err := fmt.Fprintln(w, "No handler states")
		return err
	}
	tw := output.Table(w)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS")
	for _, id := range slices.Sorted(maps.Keys(states)) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", id, output.OnOff(states[id]))
	}
	return tw.Flush()
}

// printWorker writes the worker status block.
func printWorker(w io.Writer, s *types.WorkerStatus) error {
	tw := output.Table(w)
	_, _ = fmt.Fprintf(tw, "Controller:\t%s\n", enabledLabel(s.Enabled))
	_, _ = fmt.Fprintf(tw, "State:\t%s\n", s.State)
	_, _ = fmt.Fprintf(tw, "Running:\t%t\n", s.Running)
	if s.WorkerID != "" {
		_, _ = fmt.Fprintf(tw, "Worker ID:\t%s\n", s.WorkerID)
	}
	_, _ = fmt.Fprintf(tw, "Handlers:\t%d/%d active\n", s.ActiveHandlers, s.TotalHandlers)
	return tw.Flush()
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
