package cmd

import (
	"github.com/spf13/cobra"
)

var (
	listFormat   string
	listSort     string
	listQuantity string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch and print the comment list",
	Long: `Fetches comments using the saved sort order and page size. --sort and
--quantity override them for this fetch only; use the sort and quantity
commands to change the saved preferences.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(listFormat)
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		ctrl := a.controller(ctx, a.textView(format))
		if !cmd.Flags().Changed("sort") && !cmd.Flags().Changed("quantity") {
			return ctrl.Start(ctx)
		}

		active := ctrl.Preferences()
		sort, quantity := string(active.Sort), active.PageSize.String()
		if cmd.Flags().Changed("sort") {
			sort = listSort
		}
		if cmd.Flags().Changed("quantity") {
			quantity = listQuantity
		}
		return ctrl.Refresh(ctx, sort, quantity)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format: table, json or html")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort by date or rating for this fetch")
	listCmd.Flags().StringVar(&listQuantity, "quantity", "", "number of comments or \"all\" for this fetch")
	rootCmd.AddCommand(listCmd)
}
