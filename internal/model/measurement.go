package model

import (
	"time"

	"github.com/google/uuid"

	"medisync/internal/sync"
)

// BloodPressure is one BP measurement taken at a facility.
type BloodPressure struct {
	Syncable
	Systolic     int       `json:"systolic"`
	Diastolic    int       `json:"diastolic"`
	PatientUUID  uuid.UUID `json:"patient_id"`
	FacilityUUID uuid.UUID `json:"facility_id"`
	UserUUID     uuid.UUID `json:"user_id"`
	RecordedAt   time.Time `json:"recorded_at"`
}

func NewBloodPressure(now time.Time, systolic, diastolic int, patient, facility, user uuid.UUID) BloodPressure {
	return BloodPressure{
		Syncable:     NewSyncable(now),
		Systolic:     systolic,
		Diastolic:    diastolic,
		PatientUUID:  patient,
		FacilityUUID: facility,
		UserUUID:     user,
		RecordedAt:   now,
	}
}

type BloodPressurePayload struct {
	UUID         uuid.UUID  `json:"id"`
	Systolic     int        `json:"systolic"`
	Diastolic    int        `json:"diastolic"`
	PatientUUID  uuid.UUID  `json:"patient_id"`
	FacilityUUID uuid.UUID  `json:"facility_id"`
	UserUUID     uuid.UUID  `json:"user_id"`
	RecordedAt   time.Time  `json:"recorded_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

func (b BloodPressure) Payload() BloodPressurePayload {
	return BloodPressurePayload{
		UUID:         b.UUID,
		Systolic:     b.Systolic,
		Diastolic:    b.Diastolic,
		PatientUUID:  b.PatientUUID,
		FacilityUUID: b.FacilityUUID,
		UserUUID:     b.UserUUID,
		RecordedAt:   b.RecordedAt,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		DeletedAt:    b.DeletedAt,
	}
}

func (p BloodPressurePayload) Record() BloodPressure {
	return BloodPressure{
		Syncable: Syncable{
			UUID:       p.UUID,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
			DeletedAt:  p.DeletedAt,
			SyncStatus: sync.StatusDone,
		},
		Systolic:     p.Systolic,
		Diastolic:    p.Diastolic,
		PatientUUID:  p.PatientUUID,
		FacilityUUID: p.FacilityUUID,
		UserUUID:     p.UserUUID,
		RecordedAt:   p.RecordedAt,
	}
}

// BloodSugarReadingType distinguishes how the sample was taken. Unknown
// server-added types round-trip verbatim.
type BloodSugarReadingType string

const (
	ReadingRandom       BloodSugarReadingType = "random"
	ReadingFasting      BloodSugarReadingType = "fasting"
	ReadingPostPrandial BloodSugarReadingType = "post_prandial"
	ReadingHbA1c        BloodSugarReadingType = "hba1c"
)

func (t BloodSugarReadingType) Known() bool {
	switch t {
	case ReadingRandom, ReadingFasting, ReadingPostPrandial, ReadingHbA1c:
		return true
	}
	return false
}

// BloodSugar is one blood sugar measurement. Value unit depends on the
// reading type (mg/dL, or %% for HbA1c).
type BloodSugar struct {
	Syncable
	ReadingType  BloodSugarReadingType `json:"reading_type"`
	ReadingValue float64               `json:"reading_value"`
	PatientUUID  uuid.UUID             `json:"patient_id"`
	FacilityUUID uuid.UUID             `json:"facility_id"`
	UserUUID     uuid.UUID             `json:"user_id"`
	RecordedAt   time.Time             `json:"recorded_at"`
}

func NewBloodSugar(now time.Time, readingType BloodSugarReadingType, value float64, patient, facility, user uuid.UUID) BloodSugar {
	return BloodSugar{
		Syncable:     NewSyncable(now),
		ReadingType:  readingType,
		ReadingValue: value,
		PatientUUID:  patient,
		FacilityUUID: facility,
		UserUUID:     user,
		RecordedAt:   now,
	}
}

type BloodSugarPayload struct {
	UUID         uuid.UUID             `json:"id"`
	ReadingType  BloodSugarReadingType `json:"reading_type"`
	ReadingValue float64               `json:"reading_value"`
	PatientUUID  uuid.UUID             `json:"patient_id"`
	FacilityUUID uuid.UUID             `json:"facility_id"`
	UserUUID     uuid.UUID             `json:"user_id"`
	RecordedAt   time.Time             `json:"recorded_at"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	DeletedAt    *time.Time            `json:"deleted_at,omitempty"`
}

func (b BloodSugar) Payload() BloodSugarPayload {
	return BloodSugarPayload{
		UUID:         b.UUID,
		ReadingType:  b.ReadingType,
		ReadingValue: b.ReadingValue,
		PatientUUID:  b.PatientUUID,
		FacilityUUID: b.FacilityUUID,
		UserUUID:     b.UserUUID,
		RecordedAt:   b.RecordedAt,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		DeletedAt:    b.DeletedAt,
	}
}

func (p BloodSugarPayload) Record() BloodSugar {
	return BloodSugar{
		Syncable: Syncable{
			UUID:       p.UUID,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
			DeletedAt:  p.DeletedAt,
			SyncStatus: sync.StatusDone,
		},
		ReadingType:  p.ReadingType,
		ReadingValue: p.ReadingValue,
		PatientUUID:  p.PatientUUID,
		FacilityUUID: p.FacilityUUID,
		UserUUID:     p.UserUUID,
		RecordedAt:   p.RecordedAt,
	}
}
