package client

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"medisync/internal/api"
	"medisync/internal/app/client/config"
	"medisync/internal/model"
	"medisync/internal/storage/sqlite"
	"medisync/internal/sync"
)

// App is the client composition root: the offline database, the API client
// and the fully wired sync engine behind one facade the CLI commands use.
type App struct {
	cfg   *config.Config
	log   *slog.Logger
	store *sqlite.Store
	prefs *sqlite.PreferenceStore
	api   *api.Client

	patients       *sqlite.Repository[model.Patient, model.PatientPayload]
	bloodPressures *sqlite.Repository[model.BloodPressure, model.BloodPressurePayload]
	bloodSugars    *sqlite.Repository[model.BloodSugar, model.BloodSugarPayload]
	prescriptions  *sqlite.Repository[model.Prescription, model.PrescriptionPayload]
	appointments   *sqlite.Repository[model.Appointment, model.AppointmentPayload]
	facilities     *sqlite.Repository[model.Facility, model.FacilityPayload]
	protocols      *sqlite.Repository[model.Protocol, model.ProtocolPayload]

	data      *sync.DataSync
	indicator *sync.Indicator
}

// Entity names, also used as the token-key entity component.
const (
	EntityPatient       = "patient"
	EntityBloodPressure = "blood_pressure"
	EntityBloodSugar    = "blood_sugar"
	EntityPrescription  = "prescription"
	EntityAppointment   = "appointment"
	EntityFacility      = "facility"
	EntityProtocol      = "protocol"
)

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := sqlite.Open(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	a := &App{
		cfg:   cfg,
		log:   log,
		store: store,
		prefs: sqlite.NewPreferenceStore(store),
		api:   api.New(cfg.BaseURL(), log),

		patients:       sqlite.NewPatientRepository(store, log),
		bloodPressures: sqlite.NewBloodPressureRepository(store, log),
		bloodSugars:    sqlite.NewBloodSugarRepository(store, log),
		prescriptions:  sqlite.NewPrescriptionRepository(store, log),
		appointments:   sqlite.NewAppointmentRepository(store, log),
		facilities:     sqlite.NewFacilityRepository(store, log),
		protocols:      sqlite.NewProtocolRepository(store, log),
	}
	a.loadToken()
	a.wireSync()

	return a, nil
}

// wireSync assembles one coordinator and ModelSync per entity. Patient-
// entered records sync frequently in both directions; facilities and
// protocols are server-authored, pulled daily, never pushed.
func (a *App) wireSync() {
	batch := a.cfg.BatchSize
	log := a.log

	patientCoord := sync.NewCoordinator(a.patients, model.Patient.Payload,
		a.api.PushPatients, a.api.PullPatients,
		a.prefs, sync.TokenKey(EntityPatient, 1), batch, log)
	bpCoord := sync.NewCoordinator(a.bloodPressures, model.BloodPressure.Payload,
		a.api.PushBloodPressures, a.api.PullBloodPressures,
		a.prefs, sync.TokenKey(EntityBloodPressure, 1), batch, log)
	sugarCoord := sync.NewCoordinator(a.bloodSugars, model.BloodSugar.Payload,
		a.api.PushBloodSugars, a.api.PullBloodSugars,
		a.prefs, sync.TokenKey(EntityBloodSugar, 1), batch, log)
	rxCoord := sync.NewCoordinator(a.prescriptions, model.Prescription.Payload,
		a.api.PushPrescriptions, a.api.PullPrescriptions,
		a.prefs, sync.TokenKey(EntityPrescription, 1), batch, log)
	apptCoord := sync.NewCoordinator(a.appointments, model.Appointment.Payload,
		a.api.PushAppointments, a.api.PullAppointments,
		a.prefs, sync.TokenKey(EntityAppointment, 1), batch, log)
	facilityCoord := sync.NewCoordinator(a.facilities, model.Facility.Payload,
		nil, a.api.PullFacilities,
		a.prefs, sync.TokenKey(EntityFacility, 1), batch, log)
	protocolCoord := sync.NewCoordinator(a.protocols, model.Protocol.Payload,
		nil, a.api.PullProtocols,
		a.prefs, sync.TokenKey(EntityProtocol, 1), batch, log)

	a.data = sync.NewDataSync(a.prefs, log,
		sync.NewModelSync(EntityPatient, sync.GroupFrequent, patientCoord, a.patients, log),
		sync.NewModelSync(EntityBloodPressure, sync.GroupFrequent, bpCoord, a.bloodPressures, log),
		sync.NewModelSync(EntityBloodSugar, sync.GroupFrequent, sugarCoord, a.bloodSugars, log),
		sync.NewModelSync(EntityPrescription, sync.GroupFrequent, rxCoord, a.prescriptions, log),
		sync.NewModelSync(EntityAppointment, sync.GroupFrequent, apptCoord, a.appointments, log),
		sync.NewPullOnlyModelSync(EntityFacility, sync.GroupDaily, facilityCoord, a.facilities, log),
		sync.NewPullOnlyModelSync(EntityProtocol, sync.GroupDaily, protocolCoord, a.protocols, log),
	)
	a.indicator = sync.NewIndicator(a.data, a.prefs, a.cfg.StaleAfter, log)
}

func (a *App) Close() error {
	return a.store.Close()
}

// --- auth ---

func (a *App) loadToken() {
	raw, err := os.ReadFile(a.cfg.TokenPath)
	if err != nil {
		return
	}
	a.api.SetToken(strings.TrimSpace(string(raw)))
}

// SaveToken persists the access token and installs it on the API client.
func (a *App) SaveToken(token string) error {
	if err := os.WriteFile(a.cfg.TokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	a.api.SetToken(token)
	return nil
}

func (a *App) ClearToken() error {
	a.api.SetToken("")
	if err := os.Remove(a.cfg.TokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (a *App) IsAuthenticated() bool {
	return a.api.Token() != ""
}

func (a *App) Login(ctx context.Context, login, password string) error {
	token, err := a.api.Login(ctx, login, password)
	if err != nil {
		return err
	}
	return a.SaveToken(token)
}

func (a *App) Register(ctx context.Context, login, password string) error {
	return a.api.Register(ctx, login, password)
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.api.HealthCheck(ctx)
}

// --- sync ---

func (a *App) DataSync() *sync.DataSync {
	return a.data
}

func (a *App) Indicator() *sync.Indicator {
	return a.indicator
}

// Sync runs one cycle for the given group.
func (a *App) Sync(ctx context.Context, group sync.Group) error {
	return a.data.Sync(ctx, group)
}

// RunSchedulers starts the periodic frequent and daily cycles and blocks
// until ctx is cancelled.
func (a *App) RunSchedulers(ctx context.Context) {
	go a.data.RunPeriodic(ctx, sync.GroupDaily, a.cfg.DailyInterval)
	a.data.RunPeriodic(ctx, sync.GroupFrequent, a.cfg.FrequentInterval)
}

// ResetPullToken drops the persisted pull cursor for one entity, forcing the
// next pull to start from the beginning of the server feed.
func (a *App) ResetPullToken(ctx context.Context, entity string) error {
	return a.prefs.DeleteToken(ctx, sync.TokenKey(entity, 1))
}

// UserID returns the stable identity stamped on measurements recorded from
// this device, generating and persisting it on first use.
func (a *App) UserID(ctx context.Context) (uuid.UUID, error) {
	const key = "device_user_id"
	raw, err := a.prefs.Value(ctx, key)
	if err != nil {
		return uuid.Nil, err
	}
	if raw != "" {
		return uuid.Parse(raw)
	}
	id := uuid.New()
	if err := a.prefs.SetValue(ctx, key, id.String()); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// --- clinical records ---

func (a *App) RegisterPatient(ctx context.Context, fullName string, gender model.Gender, facility uuid.UUID) (model.Patient, error) {
	p := model.NewPatient(time.Now(), fullName, gender, facility)
	if err := a.patients.Save(ctx, []model.Patient{p}); err != nil {
		return model.Patient{}, fmt.Errorf("save patient: %w", err)
	}
	return p, nil
}

func (a *App) ListPatients(ctx context.Context) ([]model.Patient, error) {
	return a.patients.List(ctx)
}

func (a *App) RecordBloodPressure(ctx context.Context, systolic, diastolic int, patient, facility, user uuid.UUID) (model.BloodPressure, error) {
	bp := model.NewBloodPressure(time.Now(), systolic, diastolic, patient, facility, user)
	if err := a.bloodPressures.Save(ctx, []model.BloodPressure{bp}); err != nil {
		return model.BloodPressure{}, fmt.Errorf("save blood pressure: %w", err)
	}
	return bp, nil
}

func (a *App) RecordBloodSugar(ctx context.Context, readingType model.BloodSugarReadingType, value float64, patient, facility, user uuid.UUID) (model.BloodSugar, error) {
	bs := model.NewBloodSugar(time.Now(), readingType, value, patient, facility, user)
	if err := a.bloodSugars.Save(ctx, []model.BloodSugar{bs}); err != nil {
		return model.BloodSugar{}, fmt.Errorf("save blood sugar: %w", err)
	}
	return bs, nil
}

func (a *App) PrescribeDrug(ctx context.Context, name, dosage string, patient, facility uuid.UUID) (model.Prescription, error) {
	rx := model.NewPrescription(time.Now(), name, dosage, patient, facility)
	if err := a.prescriptions.Save(ctx, []model.Prescription{rx}); err != nil {
		return model.Prescription{}, fmt.Errorf("save prescription: %w", err)
	}
	return rx, nil
}

// DiscontinuePrescription stops the drug and queues the change for push.
func (a *App) DiscontinuePrescription(ctx context.Context, id uuid.UUID) (model.Prescription, error) {
	rx, err := a.prescriptions.Get(ctx, id)
	if err != nil {
		return model.Prescription{}, fmt.Errorf("prescription %s: %w", id, err)
	}
	rx.Discontinue(time.Now())
	if err := a.prescriptions.Save(ctx, []model.Prescription{rx}); err != nil {
		return model.Prescription{}, fmt.Errorf("save prescription: %w", err)
	}
	return rx, nil
}

// ListPrescriptions returns the patient's prescriptions, discontinued ones
// included so the medication history stays visible.
func (a *App) ListPrescriptions(ctx context.Context, patient uuid.UUID) ([]model.Prescription, error) {
	all, err := a.prescriptions.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Prescription
	for _, rx := range all {
		if rx.PatientUUID == patient {
			out = append(out, rx)
		}
	}
	return out, nil
}

func (a *App) ScheduleAppointment(ctx context.Context, patient, facility uuid.UUID, scheduled time.Time) (model.Appointment, error) {
	appt := model.NewAppointment(time.Now(), patient, facility, scheduled)
	if err := a.appointments.Save(ctx, []model.Appointment{appt}); err != nil {
		return model.Appointment{}, fmt.Errorf("save appointment: %w", err)
	}
	return appt, nil
}

func (a *App) CancelAppointment(ctx context.Context, id uuid.UUID, reason string) (model.Appointment, error) {
	appt, err := a.appointments.Get(ctx, id)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("appointment %s: %w", id, err)
	}
	appt.Cancel(time.Now(), reason)
	if err := a.appointments.Save(ctx, []model.Appointment{appt}); err != nil {
		return model.Appointment{}, fmt.Errorf("save appointment: %w", err)
	}
	return appt, nil
}

func (a *App) MarkAppointmentVisited(ctx context.Context, id uuid.UUID) (model.Appointment, error) {
	appt, err := a.appointments.Get(ctx, id)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("appointment %s: %w", id, err)
	}
	appt.MarkVisited(time.Now())
	if err := a.appointments.Save(ctx, []model.Appointment{appt}); err != nil {
		return model.Appointment{}, fmt.Errorf("save appointment: %w", err)
	}
	return appt, nil
}

func (a *App) ListAppointments(ctx context.Context, patient uuid.UUID) ([]model.Appointment, error) {
	all, err := a.appointments.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Appointment
	for _, appt := range all {
		if appt.PatientUUID == patient {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (a *App) Patients() *sqlite.Repository[model.Patient, model.PatientPayload] {
	return a.patients
}

func (a *App) Facilities() *sqlite.Repository[model.Facility, model.FacilityPayload] {
	return a.facilities
}
