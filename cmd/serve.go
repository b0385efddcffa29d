package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/commentsync/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to list, vote on and delete comments and to change the saved sort order and page size.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// No view: tool results are built from the controller snapshot.
		ctrl := a.controller(cmd.Context(), nil)

		mcpserver.Version = Version

		p := ctrl.Preferences()
		fmt.Fprintf(os.Stderr, "commentsync MCP server started on stdio (server=%s, sort=%s, quantity=%s)\n",
			a.cfg.ServerURL, p.Sort, p.PageSize)

		return mcpserver.NewServer(ctrl).Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
