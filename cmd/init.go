package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/learnhub/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize learnhub configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the port, data directory and upstream APIs, and writes a .learnhub.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.RunWizard(cfgFile); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", cfgFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
