package appointment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cancelReason string

var CancelCmd = &cobra.Command{
	Use:   "cancel <appointment-uuid>",
	Short: "Cancel a scheduled visit",
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

		appt, err := app.CancelAppointment(cmd.Context(), id, cancelReason)
		if err != nil {
			return err
		}

		fmt.Printf("Cancelled appointment %s\n", appt.UUID)
		return nil
	},
}

func init() {
	CancelCmd.Flags().StringVar(&cancelReason, "reason", "", "cancellation reason")
}
