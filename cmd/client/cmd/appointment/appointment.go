package appointment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
	"medisync/internal/model"
)

// AppointmentCmd is the parent command for follow-up visits.
var AppointmentCmd = &cobra.Command{
	Use:   "appointment",
	Short: "Manage follow-up appointments",
	Long: `Schedule, cancel and list follow-up visits for a patient. Changes are
stored locally with a pending sync status and pushed on the next cycle.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok {
		return nil, fmt.Errorf("client not initialized")
	}
	return app, nil
}

func patientContext(cmd *cobra.Command, patientID string) (*client.App, model.Patient, error) {
	app, err := appFrom(cmd)
	if err != nil {
		return nil, model.Patient{}, err
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
