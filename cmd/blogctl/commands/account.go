package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var assumeYes bool

// deleteAccountCmd runs the account deletion pipeline for one user
var deleteAccountCmd = &cobra.Command{
	Use:   "delete-account <user-id>",
	Short: "Delete a user's posts, profile and identity",
	Long: `Delete an account the same way the settings screen does: the user's posts first,
then the profile, then the identity, in one transaction.

Examples:
  blogctl delete-account 6f1c0e7e-8d4b-4a55-9d3e-3f7a2b1c9d10 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := args[0]
		if !assumeYes {
			return fmt.Errorf("refusing to delete %s without --yes", userID)
		}

		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Accounts.DeleteAccountByID(cmd.Context(), userID); err != nil {
			return fmt.Errorf("delete account %s: %w", userID, err)
		}
		cmd.Printf("Account %s deleted.\n", userID)
		return nil
	},
}

func init() {
	deleteAccountCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Confirm the deletion")
	rootCmd.AddCommand(deleteAccountCmd)
}
