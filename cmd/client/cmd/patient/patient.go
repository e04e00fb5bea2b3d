package patient

import (
	"github.com/spf13/cobra"
)

// PatientCmd is the parent command for patient records.
var PatientCmd = &cobra.Command{
	Use:   "patient",
	Short: "Manage patient records",
	Long: `Register patients and browse the local patient list. New patients are
stored locally with a pending sync status and pushed on the next cycle.`,
}
