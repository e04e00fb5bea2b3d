package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd is the parent command for account operations.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the user account",
	Long:  `Register, log in and log out of the MediSync server.`,
}
