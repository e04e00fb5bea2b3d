package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisync/internal/sync"
)

func TestNewSyncable(t *testing.T) {
	now := time.Now()
	s := NewSyncable(now)

	assert.NotEqual(t, uuid.Nil, s.UUID)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, now, s.UpdatedAt)
	assert.Nil(t, s.DeletedAt)
	assert.Equal(t, sync.StatusPending, s.SyncStatus)
}

func TestSyncable_TouchQueuesForPush(t *testing.T) {
	s := NewSyncable(time.Now())
	s.SyncStatus = sync.StatusDone

	later := s.UpdatedAt.Add(time.Minute)
	s.Touch(later)

	assert.Equal(t, later, s.UpdatedAt)
	assert.Equal(t, sync.StatusPending, s.SyncStatus, "local edit must reach the server")
}

func TestSyncable_SoftDelete(t *testing.T) {
	s := NewSyncable(time.Now())
	s.SyncStatus = sync.StatusDone

	later := s.UpdatedAt.Add(time.Minute)
	s.SoftDelete(later)

	require.True(t, s.IsDeleted())
	assert.Equal(t, later, *s.DeletedAt)
	assert.Equal(t, sync.StatusPending, s.SyncStatus, "deletion syncs like any mutation")
}

func TestPatient_PayloadRoundTrip(t *testing.T) {
	facility := uuid.New()
	p := NewPatient(time.Now(), "Anjali Devi", GenderFemale, facility)
	p.PhoneNumber = "+911234567890"
	p.Identifiers = []BusinessIdentifier{{Value: "abc-123", Type: IdentifierBPPassport}}

	got := p.Payload().Record()

	assert.Equal(t, p.UUID, got.UUID)
	assert.Equal(t, p.FullName, got.FullName)
	assert.Equal(t, p.Identifiers, got.Identifiers)
	assert.Equal(t, facility, got.AssignedFacilityUUID)
	assert.Equal(t, sync.StatusDone, got.SyncStatus, "a payload is by definition server-acknowledged")
}

func TestPatientStatus_UnknownValueRoundTrips(t *testing.T) {
	p := NewPatient(time.Now(), "x", GenderMale, uuid.New())
	p.Status = PatientStatus("quarantined")

	got := p.Payload().Record()

	assert.Equal(t, PatientStatus("quarantined"), got.Status)
	assert.False(t, got.Status.Known())
	assert.True(t, PatientActive.Known())
}

func TestAppointment_Transitions(t *testing.T) {
	now := time.Now()
	a := NewAppointment(now, uuid.New(), uuid.New(), now.AddDate(0, 1, 0))
	require.Equal(t, AppointmentScheduled, a.Status)
	a.SyncStatus = sync.StatusDone

	a.Cancel(now.Add(time.Hour), "moved away")
	assert.Equal(t, AppointmentCancelled, a.Status)
	assert.Equal(t, "moved away", a.CancelReason)
	assert.Equal(t, sync.StatusPending, a.SyncStatus)

	a.MarkVisited(now.Add(2 * time.Hour))
	assert.Equal(t, AppointmentVisited, a.Status)
}

func TestPrescription_Discontinue(t *testing.T) {
	now := time.Now()
	rx := NewPrescription(now, "Amlodipine", "5 mg", uuid.New(), uuid.New())
	rx.SyncStatus = sync.StatusDone

	rx.Discontinue(now.Add(time.Hour))

	assert.True(t, rx.IsDeleted)
	assert.Nil(t, rx.DeletedAt, "discontinuing keeps the row in the medication history")
	assert.Equal(t, sync.StatusPending, rx.SyncStatus)
}

func TestProtocol_PayloadCarriesDrugSteps(t *testing.T) {
	p := Protocol{
		Syncable:     NewSyncable(time.Now()),
		Name:         "Hypertension stage 1",
		FollowUpDays: 28,
		Drugs: []ProtocolDrug{
			{Name: "Amlodipine", Dosage: "5 mg"},
			{Name: "Amlodipine", Dosage: "10 mg"},
		},
	}

	got := p.Payload().Record()

	assert.Equal(t, p.Drugs, got.Drugs)
	assert.Equal(t, 28, got.FollowUpDays)
	assert.Equal(t, sync.StatusDone, got.SyncStatus)
}
