package model

import (
	"time"

	"github.com/google/uuid"

	"medisync/internal/sync"
)

// Prescription is one prescribed drug for a patient. Discontinuing a drug
// sets IsDeleted rather than soft-deleting the row, so the medication
// history stays queryable.
type Prescription struct {
	Syncable
	Name           string    `json:"name"`
	Dosage         string    `json:"dosage"`
	RxNormCode     string    `json:"rxnorm_code,omitempty"`
	IsProtocolDrug bool      `json:"is_protocol_drug"`
	IsDeleted      bool      `json:"is_deleted"`
	PatientUUID    uuid.UUID `json:"patient_id"`
	FacilityUUID   uuid.UUID `json:"facility_id"`
}

func NewPrescription(now time.Time, name, dosage string, patient, facility uuid.UUID) Prescription {
	return Prescription{
		Syncable:     NewSyncable(now),
		Name:         name,
		Dosage:       dosage,
		PatientUUID:  patient,
		FacilityUUID: facility,
	}
}

// Discontinue marks the drug stopped and queues the change for push.
func (p *Prescription) Discontinue(now time.Time) {
	p.IsDeleted = true
	p.Touch(now)
}

type PrescriptionPayload struct {
	UUID           uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Dosage         string     `json:"dosage"`
	RxNormCode     string     `json:"rxnorm_code,omitempty"`
	IsProtocolDrug bool       `json:"is_protocol_drug"`
	IsDeleted      bool       `json:"is_deleted"`
	PatientUUID    uuid.UUID  `json:"patient_id"`
	FacilityUUID   uuid.UUID  `json:"facility_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

func (p Prescription) Payload() PrescriptionPayload {
	return PrescriptionPayload{
		UUID:           p.UUID,
		Name:           p.Name,
		Dosage:         p.Dosage,
		RxNormCode:     p.RxNormCode,
		IsProtocolDrug: p.IsProtocolDrug,
		IsDeleted:      p.IsDeleted,
		PatientUUID:    p.PatientUUID,
		FacilityUUID:   p.FacilityUUID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		DeletedAt:      p.DeletedAt,
	}
}

func (p PrescriptionPayload) Record() Prescription {
	return Prescription{
		Syncable: Syncable{
			UUID:       p.UUID,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
			DeletedAt:  p.DeletedAt,
			SyncStatus: sync.StatusDone,
		},
		Name:           p.Name,
		Dosage:         p.Dosage,
		RxNormCode:     p.RxNormCode,
		IsProtocolDrug: p.IsProtocolDrug,
		IsDeleted:      p.IsDeleted,
		PatientUUID:    p.PatientUUID,
		FacilityUUID:   p.FacilityUUID,
	}
}
