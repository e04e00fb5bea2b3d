package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored access token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("client not initialized")
		}

		if err := app.ClearToken(); err != nil {
			return err
		}
		fmt.Println("Logged out. Local records are kept and will sync after the next login.")
		return nil
	},
}
