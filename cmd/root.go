package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/learnhub/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "learnhub",
	Short: "A small learning portal with courses, assignments and a profile",
	Long: `LearnHub serves a landing page, a sign-in page and a dashboard whose
panes load courses, assignments and a profile from public demo APIs.
Visitor preferences and sessions are kept in a local SQLite database.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
