package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/commentsync/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize commentsync configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that asks for the Comment Service URL and local settings and generates a .commentsync.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
