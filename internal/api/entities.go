package api

import (
	"context"

	"medisync/internal/model"
	"medisync/internal/sync"
)

// Wire paths and field keys per entity. The field key names the JSON array
// on both the push request and the pull response.
const (
	pathPatients       = "/api/v1/sync/patients"
	pathBloodPressures = "/api/v1/sync/blood_pressures"
	pathBloodSugars    = "/api/v1/sync/blood_sugars"
	pathPrescriptions  = "/api/v1/sync/prescription_drugs"
	pathAppointments   = "/api/v1/sync/appointments"
	pathFacilities     = "/api/v1/sync/facilities"
	pathProtocols      = "/api/v1/sync/protocols"

	keyPatients       = "patients"
	keyBloodPressures = "blood_pressures"
	keyBloodSugars    = "blood_sugars"
	keyPrescriptions  = "prescription_drugs"
	keyAppointments   = "appointments"
	keyFacilities     = "facilities"
	keyProtocols      = "protocols"
)

func (c *Client) PushPatients(ctx context.Context, payloads []model.PatientPayload) error {
	return Push(ctx, c, pathPatients, keyPatients, payloads)
}

func (c *Client) PullPatients(ctx context.Context, batchSize int, token string) (sync.Page[model.PatientPayload], error) {
	return Pull[model.PatientPayload](ctx, c, pathPatients, keyPatients, batchSize, token)
}

func (c *Client) PushBloodPressures(ctx context.Context, payloads []model.BloodPressurePayload) error {
	return Push(ctx, c, pathBloodPressures, keyBloodPressures, payloads)
}

func (c *Client) PullBloodPressures(ctx context.Context, batchSize int, token string) (sync.Page[model.BloodPressurePayload], error) {
	return Pull[model.BloodPressurePayload](ctx, c, pathBloodPressures, keyBloodPressures, batchSize, token)
}

func (c *Client) PushBloodSugars(ctx context.Context, payloads []model.BloodSugarPayload) error {
	return Push(ctx, c, pathBloodSugars, keyBloodSugars, payloads)
}

func (c *Client) PullBloodSugars(ctx context.Context, batchSize int, token string) (sync.Page[model.BloodSugarPayload], error) {
	return Pull[model.BloodSugarPayload](ctx, c, pathBloodSugars, keyBloodSugars, batchSize, token)
}

func (c *Client) PushPrescriptions(ctx context.Context, payloads []model.PrescriptionPayload) error {
	return Push(ctx, c, pathPrescriptions, keyPrescriptions, payloads)
}

func (c *Client) PullPrescriptions(ctx context.Context, batchSize int, token string) (sync.Page[model.PrescriptionPayload], error) {
	return Pull[model.PrescriptionPayload](ctx, c, pathPrescriptions, keyPrescriptions, batchSize, token)
}

func (c *Client) PushAppointments(ctx context.Context, payloads []model.AppointmentPayload) error {
	return Push(ctx, c, pathAppointments, keyAppointments, payloads)
}

func (c *Client) PullAppointments(ctx context.Context, batchSize int, token string) (sync.Page[model.AppointmentPayload], error) {
	return Pull[model.AppointmentPayload](ctx, c, pathAppointments, keyAppointments, batchSize, token)
}

func (c *Client) PullFacilities(ctx context.Context, batchSize int, token string) (sync.Page[model.FacilityPayload], error) {
	return Pull[model.FacilityPayload](ctx, c, pathFacilities, keyFacilities, batchSize, token)
}

func (c *Client) PullProtocols(ctx context.Context, batchSize int, token string) (sync.Page[model.ProtocolPayload], error) {
	return Pull[model.ProtocolPayload](ctx, c, pathProtocols, keyProtocols, batchSize, token)
}
