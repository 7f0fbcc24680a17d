package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hyj0824/ojAssistant/ui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate through SUSTech CAS",
	Long: `Authenticate against the online judge with your CAS account.

The CAS OAuth handshake runs entirely in the terminal; no browser is
needed. The resulting session is cached locally so later commands can
reuse it until it expires.

Example:
  oja login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orange := lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

		fmt.Println()
		fmt.Println(orange.Render("  ___     _   _        _    _            _"))
		fmt.Println(orange.Render(" / _ \\ _ | | /_\\   ___| |_(_)__ _ _ _  | |_"))
		fmt.Println(orange.Render("| (_) | || |/ _ \\ (_-<_-< (_-<  _/ _' | |  _|"))
		fmt.Println(orange.Render(" \\___/ \\__//_/ \\_\\/__/__/_/__/\\__\\__,_|  \\__|"))
		fmt.Println()
		fmt.Println(gray.Render("SUSTech OJ, without the browser"))
		fmt.Println()

		c, store, err := newClient()
		if err != nil {
			return err
		}

		if sess, ok := store.Load(); ok {
			c.SetSession(sess)
			if c.CheckSession() {
				ui.Successf("Already logged in, cached session is still valid")
				return nil
			}
		}

		if err := interactiveLogin(c, store); err != nil {
			ui.Errorf("Failed to login: %v", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
