package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/commentsync/internal/auth"
	"github.com/ziadkadry99/commentsync/internal/liveview"
	"github.com/ziadkadry99/commentsync/internal/render"
)

var livePort int

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Serve the comment list as a web page that updates itself",
	Long: `Starts a local web server showing the comment list with vote and
delete buttons and sort/page size selectors. Every change is pushed to
all open browser tabs over a websocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		port := a.cfg.Live.Port
		if cmd.Flags().Changed("port") {
			port = livePort
		}

		ctx := cmd.Context()
		hub := liveview.NewHub(render.NewHTML(a.cfg.Render.HighlightStyle), a.log)
		ctrl := a.controller(ctx, hub)

		nav := func(ctx context.Context) (auth.NavButton, error) {
			_, btn, err := auth.Sync(ctx, a.auth, a.store)
			return btn, err
		}
		srv := liveview.New(liveview.Config{
			Port:     port,
			AllowAll: a.cfg.Live.AllowAllOrigins,
		}, ctrl, hub, nav, a.log)

		// The page is served right away; the first list arrives over the
		// websocket once this fetch completes.
		go func() {
			if err := ctrl.Start(ctx); err != nil {
				a.log.Warn("initial fetch failed", zap.Error(err))
			}
		}()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down live view...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "commentsync live view on http://localhost:%d (server %s)\n", port, a.cfg.ServerURL)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	liveCmd.Flags().IntVarP(&livePort, "port", "p", 8090, "port to listen on (overrides live.port)")
	rootCmd.AddCommand(liveCmd)
}
