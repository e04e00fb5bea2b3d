package prescription

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
)

var StopCmd = &cobra.Command{
	Use:   "stop <prescription-uuid>",
	Short: "Discontinue a prescribed drug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("client not initialized")
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("argument must be a prescription uuid: %w", err)
		}

		rx, err := app.DiscontinuePrescription(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Discontinued %s %s (%s)\n", rx.Name, rx.Dosage, rx.UUID)
		return nil
	},
}
