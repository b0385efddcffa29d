package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/commentsync/internal/comments"
	"github.com/ziadkadry99/commentsync/internal/controller"
	"github.com/ziadkadry99/commentsync/internal/render"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively vote on, delete and re-sort comments",
	Long: `Prints the comment list and offers a menu with one entry per control of
each comment (upvote, downvote, delete), adding a comment, and sort
and page size choices. The list is re-fetched after every action.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		ctrl := a.controller(ctx, a.textView(render.FormatTable))
		if err := ctrl.Start(ctx); err != nil && !isSyncError(err) {
			return err
		}

		for {
			items := menu(ctx, ctrl)
			labels := make([]string, len(items))
			for i, it := range items {
				labels[i] = it.label
			}

			sel := promptui.Select{
				Label: "Action",
				Items: labels,
				Size:  12,
			}
			idx, _, err := sel.Run()
			if err != nil {
				if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
					return nil
				}
				return fmt.Errorf("menu: %w", err)
			}
			if items[idx].run == nil {
				return nil
			}
			// Failures were already printed by the view; keep browsing.
			if err := items[idx].run(); err != nil && !isSyncError(err) {
				return err
			}
		}
	},
}

type menuItem struct {
	label string
	run   func() error
}

// menu lists the bound row controls of the displayed comments followed by
// the preference choices.
func menu(ctx context.Context, ctrl *controller.Controller) []menuItem {
	snap := ctrl.Snapshot()

	var items []menuItem
	for _, b := range render.Bind(render.Rows(snap.Comments), ctrl) {
		invoke := b.Invoke
		items = append(items, menuItem{label: b.Label, run: func() error { return invoke(ctx) }})
	}

	next := comments.SortRating
	if snap.Active.Sort == comments.SortRating {
		next = comments.SortDate
	}
	items = append(items,
		menuItem{label: "Add a comment", run: func() error {
			p := promptui.Prompt{Label: "Comment"}
			v, err := p.Run()
			if err != nil {
				return nil
			}
			return ctrl.Add(ctx, v)
		}},
		menuItem{label: "Sort by " + string(next), run: func() error { return ctrl.SelectSort(ctx, string(next)) }},
		menuItem{label: "Change page size", run: func() error {
			p := promptui.Prompt{Label: "Comments to show (number or all)", Default: snap.Active.PageSize.String()}
			v, err := p.Run()
			if err != nil {
				return nil
			}
			return ctrl.SelectPageSize(ctx, v)
		}},
		menuItem{label: "Refresh", run: func() error {
			p := ctrl.Preferences()
			return ctrl.Refresh(ctx, string(p.Sort), p.PageSize.String())
		}},
		menuItem{label: "Quit"},
	)
	return items
}

func isSyncError(err error) bool {
	var syncErr *controller.SyncError
	return errors.As(err, &syncErr) || errors.Is(err, controller.ErrSuperseded)
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
