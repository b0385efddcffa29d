package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/commentsync/internal/render"
)

var voteDown bool

var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Post a new comment and print the refreshed list",
	Long:  `Posts the arguments, joined by spaces, as a new comment. Markdown is allowed.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		return a.controller(ctx, a.textView(render.FormatTable)).Add(ctx, strings.Join(args, " "))
	},
}

var voteCmd = &cobra.Command{
	Use:   "vote <comment-id>",
	Short: "Upvote a comment (or downvote with --down) and print the refreshed list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		return a.controller(ctx, a.textView(render.FormatTable)).Vote(ctx, args[0], !voteDown)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <comment-id>",
	Short: "Delete a comment and print the refreshed list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		return a.controller(ctx, a.textView(render.FormatTable)).Delete(ctx, args[0])
	},
}

func init() {
	voteCmd.Flags().BoolVar(&voteDown, "down", false, "downvote instead of upvote")
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(deleteCmd)
}
