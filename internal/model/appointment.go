package model

import (
	"time"

	"github.com/google/uuid"

	"medisync/internal/sync"
)

// AppointmentStatus is server-extensible; unknown values round-trip.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentVisited   AppointmentStatus = "visited"
)

func (s AppointmentStatus) Known() bool {
	switch s {
	case AppointmentScheduled, AppointmentCancelled, AppointmentVisited:
		return true
	}
	return false
}

// Appointment is a scheduled follow-up visit.
type Appointment struct {
	Syncable
	PatientUUID   uuid.UUID         `json:"patient_id"`
	FacilityUUID  uuid.UUID         `json:"facility_id"`
	ScheduledDate time.Time         `json:"scheduled_date"`
	Status        AppointmentStatus `json:"status"`
	CancelReason  string            `json:"cancel_reason,omitempty"`
}

func NewAppointment(now time.Time, patient, facility uuid.UUID, scheduled time.Time) Appointment {
	return Appointment{
		Syncable:      NewSyncable(now),
		PatientUUID:   patient,
		FacilityUUID:  facility,
		ScheduledDate: scheduled,
		Status:        AppointmentScheduled,
	}
}

// Cancel marks the appointment cancelled with a reason and queues the change.
func (a *Appointment) Cancel(now time.Time, reason string) {
	a.Status = AppointmentCancelled
	a.CancelReason = reason
	a.Touch(now)
}

// MarkVisited records that the patient showed up.
func (a *Appointment) MarkVisited(now time.Time) {
	a.Status = AppointmentVisited
	a.Touch(now)
}

type AppointmentPayload struct {
	UUID          uuid.UUID         `json:"id"`
	PatientUUID   uuid.UUID         `json:"patient_id"`
	FacilityUUID  uuid.UUID         `json:"facility_id"`
	ScheduledDate time.Time         `json:"scheduled_date"`
	Status        AppointmentStatus `json:"status"`
	CancelReason  string            `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     *time.Time        `json:"deleted_at,omitempty"`
}

func (a Appointment) Payload() AppointmentPayload {
	return AppointmentPayload{
		UUID:          a.UUID,
		PatientUUID:   a.PatientUUID,
		FacilityUUID:  a.FacilityUUID,
		ScheduledDate: a.ScheduledDate,
		Status:        a.Status,
		CancelReason:  a.CancelReason,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		DeletedAt:     a.DeletedAt,
	}
}

func (p AppointmentPayload) Record() Appointment {
	return Appointment{
		Syncable: Syncable{
			UUID:       p.UUID,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
			DeletedAt:  p.DeletedAt,
			SyncStatus: sync.StatusDone,
		},
		PatientUUID:   p.PatientUUID,
		FacilityUUID:  p.FacilityUUID,
		ScheduledDate: p.ScheduledDate,
		Status:        p.Status,
		CancelReason:  p.CancelReason,
	}
}
