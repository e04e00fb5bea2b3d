package prescription

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addPatient string
	drugName   string
	dosage     string
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Prescribe a drug",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if drugName == "" || dosage == "" {
			return fmt.Errorf("--drug and --dosage are required")
		}

		app, patient, err := patientContext(cmd, addPatient)
		if err != nil {
			return err
		}

		rx, err := app.PrescribeDrug(cmd.Context(), drugName, dosage,
			patient.UUID, patient.AssignedFacilityUUID)
		if err != nil {
			return err
		}

		fmt.Printf("Prescribed %s %s for %s (%s)\n", rx.Name, rx.Dosage, patient.FullName, rx.UUID)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVar(&addPatient, "patient", "", "patient uuid")
	AddCmd.Flags().StringVar(&drugName, "drug", "", "drug name")
	AddCmd.Flags().StringVar(&dosage, "dosage", "", "dosage, e.g. '5 mg'")
}
