package model

import (
	"time"

	"github.com/google/uuid"

	"medisync/internal/sync"
)

// Gender as reported at registration.
type Gender string

const (
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderTransgender Gender = "transgender"
)

// PatientStatus tracks whether the patient is still under care. The server
// may introduce new statuses; unknown values round-trip verbatim and Known
// reports whether this build understands one.
type PatientStatus string

const (
	PatientActive       PatientStatus = "active"
	PatientDead         PatientStatus = "dead"
	PatientMigrated     PatientStatus = "migrated"
	PatientUnresponsive PatientStatus = "unresponsive"
	PatientInactive     PatientStatus = "inactive"
)

func (s PatientStatus) Known() bool {
	switch s {
	case PatientActive, PatientDead, PatientMigrated, PatientUnresponsive, PatientInactive:
		return true
	}
	return false
}

// IdentifierType classifies a business identifier (BP passport number,
// national id, ...). Server-added types deserialize without loss: the raw
// string is the value, Known tells the UI whether to render it specially.
type IdentifierType string

const (
	IdentifierBPPassport      IdentifierType = "bp_passport"
	IdentifierNationalID      IdentifierType = "national_id"
	IdentifierMedicalRecordNo IdentifierType = "medical_record_number"
)

func (t IdentifierType) Known() bool {
	switch t {
	case IdentifierBPPassport, IdentifierNationalID, IdentifierMedicalRecordNo:
		return true
	}
	return false
}

// BusinessIdentifier is a human-facing patient identifier, distinct from the
// record uuid.
type BusinessIdentifier struct {
	Value string         `json:"value"`
	Type  IdentifierType `json:"type"`
}

// Patient is the root clinical record. All relationships are by uuid, never
// by a local row id, so identity survives the client/server round trip.
type Patient struct {
	Syncable
	FullName             string               `json:"full_name"`
	Gender               Gender               `json:"gender"`
	DateOfBirth          *time.Time           `json:"date_of_birth,omitempty"`
	Status               PatientStatus        `json:"status"`
	PhoneNumber          string               `json:"phone_number,omitempty"`
	Identifiers          []BusinessIdentifier `json:"business_identifiers,omitempty"`
	AssignedFacilityUUID uuid.UUID            `json:"assigned_facility_id"`
}

// NewPatient registers a patient locally with status pending.
func NewPatient(now time.Time, fullName string, gender Gender, facilityUUID uuid.UUID) Patient {
	return Patient{
		Syncable:             NewSyncable(now),
		FullName:             fullName,
		Gender:               gender,
		Status:               PatientActive,
		AssignedFacilityUUID: facilityUUID,
	}
}

// PatientPayload is the wire form. It carries everything but the local sync
// status.
type PatientPayload struct {
	UUID                 uuid.UUID            `json:"id"`
	FullName             string               `json:"full_name"`
	Gender               Gender               `json:"gender"`
	DateOfBirth          *time.Time           `json:"date_of_birth,omitempty"`
	Status               PatientStatus        `json:"status"`
	PhoneNumber          string               `json:"phone_number,omitempty"`
	Identifiers          []BusinessIdentifier `json:"business_identifiers,omitempty"`
	AssignedFacilityUUID uuid.UUID            `json:"assigned_facility_id"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
	DeletedAt            *time.Time           `json:"deleted_at,omitempty"`
}

func (p Patient) Payload() PatientPayload {
	return PatientPayload{
		UUID:                 p.UUID,
		FullName:             p.FullName,
		Gender:               p.Gender,
		DateOfBirth:          p.DateOfBirth,
		Status:               p.Status,
		PhoneNumber:          p.PhoneNumber,
		Identifiers:          p.Identifiers,
		AssignedFacilityUUID: p.AssignedFacilityUUID,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
		DeletedAt:            p.DeletedAt,
	}
}

// Record converts a server payload into the local form, marked done because
// it is by definition server-acknowledged.
func (p PatientPayload) Record() Patient {
	return Patient{
		Syncable: Syncable{
			UUID:       p.UUID,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
			DeletedAt:  p.DeletedAt,
			SyncStatus: sync.StatusDone,
		},
		FullName:             p.FullName,
		Gender:               p.Gender,
		DateOfBirth:          p.DateOfBirth,
		Status:               p.Status,
		PhoneNumber:          p.PhoneNumber,
		Identifiers:          p.Identifiers,
		AssignedFacilityUUID: p.AssignedFacilityUUID,
	}
}
