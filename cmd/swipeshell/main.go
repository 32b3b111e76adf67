// Package main is the entry point for swipeshell, a terminal demo of the
// touch gesture recognizer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFile    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "swipeshell",
	Short: "Touch gesture recognizer driven from a terminal",
	Long: `swipeshell recognizes tap, long-press and swipe gestures and maps them to
shell actions. In the terminal demo the left mouse button stands in for a
finger: click to tap, hold still to long press, drag quickly to swipe.

Run without arguments to start the demo.`,
	SilenceUsage: true,
	RunE:         runDemo,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the terminal demo",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the effective threshold profile",
	Long: `Loads the configuration the same way the demo does and prints the
thresholds in effect for an orientation.

Example:
  swipeshell profile --orientation landscape`,
	Args: cobra.NoArgs,
	RunE: showProfile,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "swipeshell %s\n", version)
		fmt.Fprintf(out, "Commit: %s\n", commit)
		fmt.Fprintf(out, "Built: %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (.toml, .yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write JSON logs to this file")

	profileCmd.Flags().String("orientation", "portrait", "Orientation to resolve (portrait, landscape)")
	profileCmd.Flags().Bool("json", false, "Print the profile as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
