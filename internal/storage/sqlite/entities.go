package sqlite

import (
	"golang.org/x/exp/slog"

	"medisync/internal/model"
	"medisync/internal/sync"
)

// record_type discriminator values in the records table.
const (
	TypePatient       = "patient"
	TypeBloodPressure = "blood_pressure"
	TypeBloodSugar    = "blood_sugar"
	TypePrescription  = "prescription"
	TypeAppointment   = "appointment"
	TypeFacility      = "facility"
	TypeProtocol      = "protocol"
)

func fromPayload[T record, P interface{ Record() T }](setStatus func(*T, sync.Status)) func(P, sync.Status) T {
	return func(p P, status sync.Status) T {
		rec := p.Record()
		setStatus(&rec, status)
		return rec
	}
}

func NewPatientRepository(store *Store, log *slog.Logger) *Repository[model.Patient, model.PatientPayload] {
	return NewRepository(store, TypePatient,
		model.Patient.Payload,
		fromPayload[model.Patient, model.PatientPayload](func(r *model.Patient, s sync.Status) { r.SyncStatus = s }),
		log)
}

func NewBloodPressureRepository(store *Store, log *slog.Logger) *Repository[model.BloodPressure, model.BloodPressurePayload] {
	return NewRepository(store, TypeBloodPressure,
		model.BloodPressure.Payload,
		fromPayload[model.BloodPressure, model.BloodPressurePayload](func(r *model.BloodPressure, s sync.Status) { r.SyncStatus = s }),
		log)
}

func NewBloodSugarRepository(store *Store, log *slog.Logger) *Repository[model.BloodSugar, model.BloodSugarPayload] {
	return NewRepository(store, TypeBloodSugar,
		model.BloodSugar.Payload,
		fromPayload[model.BloodSugar, model.BloodSugarPayload](func(r *model.BloodSugar, s sync.Status) { r.SyncStatus = s }),
		log)
}

func NewPrescriptionRepository(store *Store, log *slog.Logger) *Repository[model.Prescription, model.PrescriptionPayload] {
	return NewRepository(store, TypePrescription,
		model.Prescription.Payload,
		fromPayload[model.Prescription, model.PrescriptionPayload](func(r *model.Prescription, s sync.Status) { r.SyncStatus = s }),
		log)
}

func NewAppointmentRepository(store *Store, log *slog.Logger) *Repository[model.Appointment, model.AppointmentPayload] {
	return NewRepository(store, TypeAppointment,
		model.Appointment.Payload,
		fromPayload[model.Appointment, model.AppointmentPayload](func(r *model.Appointment, s sync.Status) { r.SyncStatus = s }),
		log)
}

func NewFacilityRepository(store *Store, log *slog.Logger) *Repository[model.Facility, model.FacilityPayload] {
	return NewRepository(store, TypeFacility,
		model.Facility.Payload,
		fromPayload[model.Facility, model.FacilityPayload](func(r *model.Facility, s sync.Status) { r.SyncStatus = s }),
		log)
}

func NewProtocolRepository(store *Store, log *slog.Logger) *Repository[model.Protocol, model.ProtocolPayload] {
	return NewRepository(store, TypeProtocol,
		model.Protocol.Payload,
		fromPayload[model.Protocol, model.ProtocolPayload](func(r *model.Protocol, s sync.Status) { r.SyncStatus = s }),
		log)
}
