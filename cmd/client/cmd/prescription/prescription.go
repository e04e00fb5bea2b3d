package prescription

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
	"medisync/internal/model"
)

// PrescriptionCmd is the parent command for prescribed drugs.
var PrescriptionCmd = &cobra.Command{
	Use:   "prescription",
	Short: "Manage prescribed drugs",
	Long: `Prescribe, discontinue and list drugs for a patient. Changes are stored
locally with a pending sync status and pushed on the next cycle.`,
}

func patientContext(cmd *cobra.Command, patientID string) (*client.App, model.Patient, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok {
		return nil, model.Patient{}, fmt.Errorf("client not initialized")
	}

	id, err := uuid.Parse(patientID)
	if err != nil {
		return nil, model.Patient{}, fmt.Errorf("--patient must be a uuid: %w", err)
	}

	patient, err := app.Patients().Get(cmd.Context(), id)
	if err != nil {
		return nil, model.Patient{}, fmt.Errorf("patient %s: %w", id, err)
	}
	return app, patient, nil
}
