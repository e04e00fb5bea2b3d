package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"medisync/internal/app/client"
	"medisync/internal/sync"
)

var group string

var NowCmd = &cobra.Command{
	Use:   "now",
	Short: "Run one sync cycle",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		switch group {
		case "frequent":
			return runCycle(cmd.Context(), app, sync.GroupFrequent)
		case "daily":
			return runCycle(cmd.Context(), app, sync.GroupDaily)
		case "all":
			if err := runCycle(cmd.Context(), app, sync.GroupFrequent); err != nil {
				return err
			}
			return runCycle(cmd.Context(), app, sync.GroupDaily)
		default:
			return fmt.Errorf("--group must be frequent, daily or all")
		}
	},
}

func runCycle(ctx context.Context, app *client.App, g sync.Group) error {
	fmt.Printf("Syncing %s group...\n", g)
	start := time.Now()

	err := app.Sync(ctx, g)
	if errors.Is(err, sync.ErrSyncRunning) {
		fmt.Println("A sync cycle is already running.")
		return nil
	}

	reportEntityErrors(app)

	if err != nil {
		// Some entities may have synced fine; the cycle continues past
		// individual failures.
		color.Yellow("Finished with errors in %v", time.Since(start).Round(time.Millisecond))
		return nil
	}
	color.Green("Done in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// reportEntityErrors drains whatever the finished cycle published on the
// error stream.
func reportEntityErrors(app *client.App) {
	for {
		select {
		case ee := <-app.DataSync().Errors():
			color.Red("  %s: %s error: %v", ee.Entity, ee.Kind, ee.Err)
		default:
			return
		}
	}
}

func init() {
	NowCmd.Flags().StringVar(&group, "group", "frequent", "sync group: frequent, daily or all")
}
