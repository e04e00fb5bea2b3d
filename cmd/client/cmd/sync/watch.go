package sync

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep syncing on the configured schedule until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Println("Periodic sync running, Ctrl+C to stop.")
		app.RunSchedulers(ctx)
		return nil
	},
}
