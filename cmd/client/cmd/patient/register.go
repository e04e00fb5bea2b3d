package patient

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"medisync/cmd/client/cmd/types"
	"medisync/internal/app/client"
	"medisync/internal/model"
)

var (
	fullName     string
	gender       string
	facilityUUID string
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new patient",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("client not initialized")
		}

		if fullName == "" {
			return fmt.Errorf("--name is required")
		}
		g := model.Gender(gender)
		switch g {
		case model.GenderFemale, model.GenderMale, model.GenderTransgender:
		default:
			return fmt.Errorf("--gender must be female, male or transgender")
		}

		facility, err := resolveFacility(cmd, app)
		if err != nil {
			return err
		}

		p, err := app.RegisterPatient(cmd.Context(), fullName, g, facility)
		if err != nil {
			return err
		}

		fmt.Printf("Registered %s (%s)\n", p.FullName, p.UUID)
		return nil
	},
}

// resolveFacility uses the --facility flag when given, otherwise falls back
// to the first facility pulled from the server.
func resolveFacility(cmd *cobra.Command, app *client.App) (uuid.UUID, error) {
	if facilityUUID != "" {
		id, err := uuid.Parse(facilityUUID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("--facility must be a uuid: %w", err)
		}
		return id, nil
	}

	facilities, err := app.Facilities().List(cmd.Context())
	if err != nil {
		return uuid.Nil, fmt.Errorf("list facilities: %w", err)
	}
	if len(facilities) == 0 {
		return uuid.Nil, fmt.Errorf("no facilities available; run 'medisync sync now --group daily' first or pass --facility")
	}
	return facilities[0].UUID, nil
}

func init() {
	RegisterCmd.Flags().StringVar(&fullName, "name", "", "patient full name")
	RegisterCmd.Flags().StringVar(&gender, "gender", "", "female, male or transgender")
	RegisterCmd.Flags().StringVar(&facilityUUID, "facility", "", "assigned facility uuid")
}
