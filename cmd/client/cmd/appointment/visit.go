package appointment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var VisitCmd = &cobra.Command{
	Use:   "visit <appointment-uuid>",
	Short: "Record that the patient showed up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("argument must be an appointment uuid: %w", err)
		}

		appt, err := app.MarkAppointmentVisited(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Marked appointment %s as visited\n", appt.UUID)
		return nil
	},
}
