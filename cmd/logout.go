package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyj0824/ojAssistant/internal/session"
	"github.com/hyj0824/ojAssistant/ui"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the cached session",
	Long: `Remove the locally cached session tokens.

The server session itself is left to expire on its own; the platform
offers no logout endpoint for CAS sessions. Run 'oja login' to
authenticate again.

Example:
  oja logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := session.DefaultPath()
		if err != nil {
			return err
		}
		store := session.NewStore(path)

		if _, ok := store.Load(); !ok {
			ui.Infof("Already logged out")
			return nil
		}

		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		ui.Successf("Logged out successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
