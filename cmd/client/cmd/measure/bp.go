package measure

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	bpPatient string
	systolic  int
	diastolic int
)

var BPCmd = &cobra.Command{
	Use:   "bp",
	Short: "Record a blood pressure measurement",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if systolic <= 0 || diastolic <= 0 {
			return fmt.Errorf("--systolic and --diastolic are required")
		}

		app, patient, user, err := patientContext(cmd, bpPatient)
		if err != nil {
			return err
		}

		bp, err := app.RecordBloodPressure(cmd.Context(), systolic, diastolic,
			patient.UUID, patient.AssignedFacilityUUID, user)
		if err != nil {
			return err
		}

		fmt.Printf("Recorded %d/%d for %s (%s)\n", bp.Systolic, bp.Diastolic, patient.FullName, bp.UUID)
		return nil
	},
}

func init() {
	BPCmd.Flags().StringVar(&bpPatient, "patient", "", "patient uuid")
	BPCmd.Flags().IntVar(&systolic, "systolic", 0, "systolic reading, mmHg")
	BPCmd.Flags().IntVar(&diastolic, "diastolic", 0, "diastolic reading, mmHg")
}
