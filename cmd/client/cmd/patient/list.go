package patient

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
	"medisync/internal/sync"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patients stored on this device",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("client not initialized")
		}

		patients, err := app.ListPatients(cmd.Context())
		if err != nil {
			return err
		}
		if len(patients) == 0 {
			fmt.Println("No patients yet.")
			return nil
		}

		pending := color.New(color.FgYellow).SprintFunc()
		for _, p := range patients {
			line := fmt.Sprintf("%s  %-30s %s", p.UUID, p.FullName, p.Status)
			if p.SyncStatus == sync.StatusPending {
				line += "  " + pending("(not synced)")
			}
			fmt.Println(line)
		}
		fmt.Printf("\n%d patient(s)\n", len(patients))
		return nil
	},
}
