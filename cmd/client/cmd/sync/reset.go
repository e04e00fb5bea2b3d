package sync

import (
	"fmt"

	"github.com/spf13/cobra"

	"medisync/internal/app/client"
)

var resettable = map[string]bool{
	client.EntityPatient:       true,
	client.EntityBloodPressure: true,
	client.EntityBloodSugar:    true,
	client.EntityPrescription:  true,
	client.EntityAppointment:   true,
	client.EntityFacility:      true,
	client.EntityProtocol:      true,
}

var ResetTokenCmd = &cobra.Command{
	Use:   "reset-token <entity>",
	Short: "Drop an entity's pull cursor to force a full re-pull",
	Long: `Dropping the cursor makes the next pull walk the entire server feed for
the entity. Safe at any time: re-pulled records merge idempotently and
never overwrite unsynced local edits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		entity := args[0]
		if !resettable[entity] {
			return fmt.Errorf("unknown entity %q", entity)
		}

		if err := app.ResetPullToken(cmd.Context(), entity); err != nil {
			return err
		}
		fmt.Printf("Pull cursor for %s dropped.\n", entity)
		return nil
	},
}
