package sync

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"medisync/internal/sync"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync indicator and pending counts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		state, err := app.Indicator().State(ctx)
		if err != nil {
			return fmt.Errorf("resolve indicator: %w", err)
		}

		switch state.Status {
		case sync.IndicatorSynced:
			color.Green("Synced %v ago", state.SinceLastSync.Round(time.Minute))
		case sync.IndicatorSyncing:
			color.Cyan("Syncing...")
		case sync.IndicatorSyncPending:
			color.Yellow("Sync pending")
		case sync.IndicatorConnectToSync:
			color.Red("Connect to sync")
		}

		pending, err := app.DataSync().PendingCount(ctx, sync.GroupFrequent)
		if err != nil {
			return err
		}
		fmt.Printf("Records waiting to upload: %d\n", pending)
		for _, ms := range app.DataSync().Syncs(sync.GroupFrequent) {
			n, err := ms.PendingCount(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				fmt.Printf("  %s: %d\n", ms.Name(), n)
			}
		}

		if err := app.CheckConnection(ctx); err != nil {
			fmt.Println("Server: unreachable")
		} else {
			fmt.Println("Server: reachable")
		}
		return nil
	},
}
