package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopctl/internal/api"
	"shopctl/internal/types"
	"shopctl/internal/users"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage operator accounts",
}

var (
	userEmail string
	userName  string
	userRole  string
)

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireAuth(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		resp, err := a.users.List(ctx, api.ListParams{Limit: 100})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tACTIVE")
		for _, u := range resp.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\n", u.ID, u.Email, u.Name, u.Role, u.IsActive)
		}
		return w.Flush()
	},
}

var usersInviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Invite a new operator",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireAuth(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		d := users.NewUserDraft(nil)
		d.Value().Email = userEmail
		d.Value().Name = userName
		if userRole != "" {
			d.Value().Role = types.Role(userRole)
		}
		if err := d.Save(ctx, a.users); err != nil {
			return draftError(d.FieldErrors(), err)
		}
		fmt.Printf("Invited %s as %s\n", userEmail, d.Value().Role)
		return nil
	},
}

var usersDeactivateCmd = &cobra.Command{
	Use:   "deactivate [id]",
	Short: "Disable an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireAuth(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		if err := a.users.SetActive(ctx, id, false); err != nil {
			return err
		}
		fmt.Println("Deactivated.")
		return nil
	},
}

func init() {
	usersInviteCmd.Flags().StringVar(&userEmail, "email", "", "account email")
	usersInviteCmd.Flags().StringVar(&userName, "name", "", "display name")
	usersInviteCmd.Flags().StringVar(&userRole, "role", "viewer", "role: owner, admin, manager, viewer")
	usersCmd.AddCommand(usersListCmd, usersInviteCmd, usersDeactivateCmd)
	rootCmd.AddCommand(usersCmd)
}
