package measure

import (
	"fmt"

	"github.com/spf13/cobra"

	"medisync/internal/model"
)

var (
	sugarPatient string
	readingType  string
	readingValue float64
)

var SugarCmd = &cobra.Command{
	Use:   "sugar",
	Short: "Record a blood sugar measurement",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt := model.BloodSugarReadingType(readingType)
		if !rt.Known() {
			return fmt.Errorf("--type must be random, fasting, post_prandial or hba1c")
		}
		if readingValue <= 0 {
			return fmt.Errorf("--value is required")
		}

		app, patient, user, err := patientContext(cmd, sugarPatient)
		if err != nil {
			return err
		}

		bs, err := app.RecordBloodSugar(cmd.Context(), rt, readingValue,
			patient.UUID, patient.AssignedFacilityUUID, user)
		if err != nil {
			return err
		}

		fmt.Printf("Recorded %s %.1f for %s (%s)\n", bs.ReadingType, bs.ReadingValue, patient.FullName, bs.UUID)
		return nil
	},
}

func init() {
	SugarCmd.Flags().StringVar(&sugarPatient, "patient", "", "patient uuid")
	SugarCmd.Flags().StringVar(&readingType, "type", "random", "reading type: random, fasting, post_prandial, hba1c")
	SugarCmd.Flags().Float64Var(&readingValue, "value", 0, "reading value (mg/dL, or %% for hba1c)")
}
