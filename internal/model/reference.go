package model

import (
	"time"

	"github.com/google/uuid"

	"medisync/internal/sync"
)

// Facility and Protocol are reference data: authored on the server, pulled
// daily, never pushed.

type Facility struct {
	Syncable
	Name     string `json:"name"`
	District string `json:"district"`
	State    string `json:"state"`
}

type FacilityPayload struct {
	UUID      uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	District  string     `json:"district"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (f Facility) Payload() FacilityPayload {
	return FacilityPayload{
		UUID:      f.UUID,
		Name:      f.Name,
		District:  f.District,
		State:     f.State,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		DeletedAt: f.DeletedAt,
	}
}

func (p FacilityPayload) Record() Facility {
	return Facility{
		Syncable: Syncable{
			UUID:       p.UUID,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
			DeletedAt:  p.DeletedAt,
			SyncStatus: sync.StatusDone,
		},
		Name:     p.Name,
		District: p.District,
		State:    p.State,
	}
}

// ProtocolDrug is one step of a treatment protocol.
type ProtocolDrug struct {
	Name       string `json:"name"`
	Dosage     string `json:"dosage"`
	RxNormCode string `json:"rxnorm_code,omitempty"`
}

// Protocol is a facility-assigned treatment protocol with its drug steps.
type Protocol struct {
	Syncable
	Name         string         `json:"name"`
	FollowUpDays int            `json:"follow_up_days"`
	Drugs        []ProtocolDrug `json:"drugs,omitempty"`
}

type ProtocolPayload struct {
	UUID         uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	FollowUpDays int            `json:"follow_up_days"`
	Drugs        []ProtocolDrug `json:"drugs,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    *time.Time     `json:"deleted_at,omitempty"`
}

func (p Protocol) Payload() ProtocolPayload {
	return ProtocolPayload{
		UUID:         p.UUID,
		Name:         p.Name,
		FollowUpDays: p.FollowUpDays,
		Drugs:        p.Drugs,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		DeletedAt:    p.DeletedAt,
	}
}

func (p ProtocolPayload) Record() Protocol {
	return Protocol{
		Syncable: Syncable{
			UUID:       p.UUID,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
			DeletedAt:  p.DeletedAt,
			SyncStatus: sync.StatusDone,
		},
		Name:         p.Name,
		FollowUpDays: p.FollowUpDays,
		Drugs:        p.Drugs,
	}
}
