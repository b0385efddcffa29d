package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/commentsync/internal/controller"
)

var (
	cfgFile   string
	verbose   bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "commentsync",
	Short: "Browse, vote on and moderate comments from a Comment Service",
	Long: `commentsync keeps a local view of a Comment Service's comments in sync
with the server. The chosen sort order and page size are remembered
between runs, and every vote or delete is followed by a fresh fetch so
ratings and ordering always come from the server.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Comment sync failures have already been
// shown by the view that received them and are not printed twice.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	var syncErr *controller.SyncError
	if err != nil && !errors.As(err, &syncErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".commentsync.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Comment Service URL (overrides server_url)")
}
