package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the MediSync server",
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

		fmt.Print("Repeat password: ")
		confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Println()

		if string(password) != string(confirm) {
			return fmt.Errorf("passwords do not match")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Register(ctx, login, string(password)); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Println("Account created. Log in with: medisync auth login")
		return nil
	},
}
