package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/commentsync/internal/render"
)

var sortCmd = &cobra.Command{
	Use:       "sort <date|rating>",
	Short:     "Save the sort order and print the list sorted by it",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"date", "rating"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		return a.controller(ctx, a.textView(render.FormatTable)).SelectSort(ctx, args[0])
	},
}

var quantityCmd = &cobra.Command{
	Use:   "quantity <N|all>",
	Short: "Save how many comments to show and print the list",
	Long:  `Saves the page size. Anything other than a positive number means "all".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		return a.controller(ctx, a.textView(render.FormatTable)).SelectPageSize(ctx, args[0])
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(quantityCmd)
}
