package measure

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
	"medisync/internal/model"
)

// MeasureCmd is the parent command for clinical measurements.
var MeasureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Record clinical measurements",
	Long: `Record blood pressure and blood sugar measurements for a patient.
Measurements are stored locally with a pending sync status and pushed
on the next cycle.`,
}

// patientContext resolves the app, the patient and the device user id shared
// by every measurement subcommand.
func patientContext(cmd *cobra.Command, patientID string) (*client.App, model.Patient, uuid.UUID, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok {
		return nil, model.Patient{}, uuid.Nil, fmt.Errorf("client not initialized")
	}

	id, err := uuid.Parse(patientID)
	if err != nil {
		return nil, model.Patient{}, uuid.Nil, fmt.Errorf("--patient must be a uuid: %w", err)
	}

	patient, err := app.Patients().Get(cmd.Context(), id)
	if err != nil {
		return nil, model.Patient{}, uuid.Nil, fmt.Errorf("patient %s: %w", id, err)
	}

	user, err := app.UserID(cmd.Context())
	if err != nil {
		return nil, model.Patient{}, uuid.Nil, err
	}

	return app, patient, user, nil
}
