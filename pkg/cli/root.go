package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// EnvAdminURL overrides the default admin API URL.
const EnvAdminURL = "MOCKSWITCH_ADMIN_URL"

// DefaultAdminURL is used when neither --admin-url nor EnvAdminURL is set.
const DefaultAdminURL = "http://localhost:4290"

var (
	// Persistent flags available to all subcommands
	adminURL   string
	jsonOutput bool
	configPath string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mockswitch",
	Short: "mockswitch switches mock API handlers on and off at runtime",
	Long: `mockswitch serves a catalog of mock HTTP handlers and lets you switch them
on and off while the mock worker is running. Handler states are persisted so
they survive restarts.

Run 'mockswitch serve' to start the worker, the admin API and the interactive
console. The other commands talk to a running instance through its admin API.

The configuration file is taken from --config, $MOCKSWITCH_CONFIG, or the first
of mockswitch.yaml, mockswitch.yml, mockswitch.json in the current directory.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&adminURL, "admin-url", defaultAdminURL(), "Admin API base URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")
}

// defaultAdminURL resolves the admin URL from the environment.
func defaultAdminURL() string {
	if u := os.Getenv(EnvAdminURL); u != "" {
		return u
	}
	return DefaultAdminURL
}

// client returns an admin client for the --admin-url flag.
func client() AdminClient {
	return NewAdminClient(adminURL)
}
