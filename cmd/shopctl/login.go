package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.uber.org/zap"
)

var (
	loginToken  string
	loginSiteID string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the API token and site id for this machine",
	Long: `Stores the bearer token (and optionally the site id) in the config
directory. The token is issued in the web panel under Settings -> API.

Environment overrides SHOPCTL_TOKEN / SHOPCTL_SITE_ID always win over the
stored session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginToken == "" {
			return fmt.Errorf("--token is required")
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.sess.Set(loginToken, loginSiteID); err != nil {
			return err
		}
		logger.Info("session stored", zap.String("dir", a.dir))
		fmt.Println("Logged in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.sess.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if !a.sess.Authenticated() {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("Authenticated against %s", a.client.BaseURL())
		if site := a.sess.SiteID(); site != "" {
			fmt.Printf(" (site %s)", site)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "bearer token from the web panel")
	loginCmd.Flags().StringVar(&loginSiteID, "site", "", "site id for multi-site accounts")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
