package sync

import (
	"fmt"

	"github.com/spf13/cobra"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
)

// SyncCmd is the parent command for synchronization.
var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize with the MediSync server",
	Long: `Push locally recorded data to the server and pull changes made on other
devices. Patient-entered records sync in the frequent group; facilities
and protocols in the daily group.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok {
		return nil, fmt.Errorf("client not initialized")
	}
	if !app.IsAuthenticated() {
		return nil, fmt.Errorf("authentication required, run: medisync auth login")
	}
	return app, nil
}
