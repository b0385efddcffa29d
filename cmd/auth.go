package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/commentsync/internal/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Show whether you are signed in to the Comment Service",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		status, btn, err := auth.Sync(cmd.Context(), a.auth, a.store)
		if err != nil {
			return fmt.Errorf("checking login state: %w", err)
		}
		if status.LoggedIn {
			fmt.Printf("Signed in as %s\n", status.ID)
		} else {
			fmt.Println("Not signed in")
		}
		fmt.Printf("%s: %s\n", btn.Label, btn.Href)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
