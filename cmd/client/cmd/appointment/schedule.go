package appointment

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	schedulePatient string
	scheduleDate    string
)

var ScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a follow-up visit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		when, err := time.Parse("2006-01-02", scheduleDate)
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
		}

		app, patient, err := patientContext(cmd, schedulePatient)
		if err != nil {
			return err
		}

		appt, err := app.ScheduleAppointment(cmd.Context(), patient.UUID,
			patient.AssignedFacilityUUID, when)
		if err != nil {
			return err
		}

		fmt.Printf("Scheduled %s for %s (%s)\n",
			appt.ScheduledDate.Format("2006-01-02"), patient.FullName, appt.UUID)
		return nil
	},
}

func init() {
	ScheduleCmd.Flags().StringVar(&schedulePatient, "patient", "", "patient uuid")
	ScheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "visit date, YYYY-MM-DD")
}
