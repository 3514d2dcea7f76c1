package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockswitch/pkg/cli/internal/output"
	"github.com/getmockd/mockswitch/pkg/config"
)

// ValidateOutput is the JSON form of the validate command.
type ValidateOutput struct {
	Path     string   `json:"path"`
	Valid    bool     `json:"valid"`
	Groups   int      `json:"groups"`
	Handlers int      `json:"handlers"`
	Errors   []string `json:"errors,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file without starting anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := validateConfig(configPath)
		if jsonOutput {
			if jerr := output.JSON(cmd.OutOrStdout(), out); jerr != nil {
				return jerr
			}
			return err
		}
		printValidation(cmd.OutOrStdout(), out)
		return err
	},
}

// validateConfig loads path and summarizes the result. The returned error is
// non-nil when the configuration is invalid.
func validateConfig(path string) (ValidateOutput, error) {
	out := ValidateOutput{Path: path}
	cfg, err := config.Load(path)
	if err != nil {
		out.Errors = splitErrors(err)
		return out, fmt.Errorf("configuration is invalid (%d problems)", len(out.Errors))
	}

	out.Path = cfg.Path()
	out.Valid = true
	out.Groups = len(cfg.Groups)
	for _, g := range cfg.Groups {
		out.Handlers += len(g.Handlers)
	}
	return out, nil
}

// splitErrors lists the problems of a joined validation error, or err itself
// when it is a single failure.
func splitErrors(err error) []string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		joined, ok := e.(interface{ Unwrap() []error })
		if !ok {
			continue
		}
		var msgs []string
		for _, inner := range joined.Unwrap() {
			msgs = append(msgs, inner.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}

func printValidation(w io.Writer, out ValidateOutput) {
	if out.Valid {
		_, _ = fmt.Fprintf(w, "%s is valid: %d groups, %d handlers\n", out.Path, out.Groups, out.Handlers)
		return
	}
	if out.Path != "" {
		_, _ = fmt.Fprintf(w, "%s is invalid:\n", out.Path)
	} else {
		_, _ = fmt.Fprintln(w, "Configuration is invalid:")
	}
	for _, e := range out.Errors {
		_, _ = fmt.Fprintf(w, "  • %s\n", e)
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
