package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
	"medisync/internal/sync"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the MediSync server",
	Long: `Authenticate against the server. The access token is stored locally so
subsequent sync operations run without re-entering credentials.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("client not initialized")
		}

		fmt.Print("Login: ")
		var login string
		_, _ = fmt.Scanln(&login)

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Login(ctx, login, string(password)); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Println("Logged in.")

		// First sync after login pulls reference data and anything recorded
		// before the account existed on this device.
		fmt.Println("Synchronizing...")
		if err := app.Sync(ctx, sync.GroupDaily); err != nil && !errors.Is(err, sync.ErrSyncRunning) {
			fmt.Printf("Warning: reference data sync failed: %v\n", err)
		}
		if err := app.Sync(ctx, sync.GroupFrequent); err != nil && !errors.Is(err, sync.ErrSyncRunning) {
			fmt.Printf("Warning: sync failed: %v\n", err)
			fmt.Println("You can keep working offline; records will sync later.")
			return nil
		}
		fmt.Println("Up to date.")
		return nil
	},
}
