package prescription

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listPatient string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a patient's prescriptions, discontinued ones included",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, patient, err := patientContext(cmd, listPatient)
		if err != nil {
			return err
		}

		prescriptions, err := app.ListPrescriptions(cmd.Context(), patient.UUID)
		if err != nil {
			return err
		}
		if len(prescriptions) == 0 {
			fmt.Printf("No prescriptions for %s.\n", patient.FullName)
			return nil
		}

		stopped := color.New(color.FgRed).SprintFunc()
		for _, rx := range prescriptions {
			line := fmt.Sprintf("%s  %-24s %s", rx.UUID, rx.Name, rx.Dosage)
			if rx.IsDeleted {
				line += "  " + stopped("(discontinued)")
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVar(&listPatient, "patient", "", "patient uuid")
}
