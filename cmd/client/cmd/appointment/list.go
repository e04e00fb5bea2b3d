package appointment

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"medisync/internal/model"
)

var listPatient string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a patient's appointments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, patient, err := patientContext(cmd, listPatient)
		if err != nil {
			return err
		}

		appointments, err := app.ListAppointments(cmd.Context(), patient.UUID)
		if err != nil {
			return err
		}
		if len(appointments) == 0 {
			fmt.Printf("No appointments for %s.\n", patient.FullName)
			return nil
		}

		cancelled := color.New(color.FgRed).SprintFunc()
		for _, appt := range appointments {
			line := fmt.Sprintf("%s  %s  %s", appt.UUID,
				appt.ScheduledDate.Format("2006-01-02"), appt.Status)
			if appt.Status == model.AppointmentCancelled && appt.CancelReason != "" {
				line += "  " + cancelled(appt.CancelReason)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVar(&listPatient, "patient", "", "patient uuid")
}
