package domain

import (
	"time"

	"github.com/google/uuid"
)

type SignalStatus string

const (
	StatusPending      SignalStatus = "pending"
	StatusAcknowledged SignalStatus = "acknowledged"
	StatusResponding   SignalStatus = "responding"
	StatusResolved     SignalStatus = "resolved"
	StatusFalseAlarm   SignalStatus = "false_alarm"
	StatusCancelled    SignalStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted out of s.
func (s SignalStatus) Terminal() bool {
	switch s {
	case StatusResolved, StatusFalseAlarm, StatusCancelled:
		return true
	}
	return false
}

func (s SignalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAcknowledged, StatusResponding,
		StatusResolved, StatusFalseAlarm, StatusCancelled:
		return true
	}
	return false
}

// AllStatuses lists every status, for stable group-by output.
var AllStatuses = []SignalStatus{
	StatusPending, StatusAcknowledged, StatusResponding,
	StatusResolved, StatusFalseAlarm, StatusCancelled,
}

type SignalPriority string

const (
	PriorityLow      SignalPriority = "low"
	PriorityMedium   SignalPriority = "medium"
	PriorityHigh     SignalPriority = "high"
	PriorityCritical SignalPriority = "critical"
)

func (p SignalPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Rank orders priorities low < medium < high < critical.
func (p SignalPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityCritical:
		return 3
	}
	return -1
}

// Next returns the priority one step up, capped at critical.
func (p SignalPriority) Next() SignalPriority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	case PriorityHigh, PriorityCritical:
		return PriorityCritical
	}
	return p
}

var AllPriorities = []SignalPriority{
	PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical,
}

type EmergencyType string

const (
	EmergencyMedical         EmergencyType = "medical"
	EmergencyFire            EmergencyType = "fire"
	EmergencyAccident        EmergencyType = "accident"
	EmergencyCrime           EmergencyType = "crime"
	EmergencyNaturalDisaster EmergencyType = "natural_disaster"
	EmergencyOther           EmergencyType = "other"
)

// Note is a single operator annotation. Notes are append-only.
type Note struct {
	Text   string    `json:"text"`
	Author string    `json:"author,omitempty"`
	At     time.Time `json:"at"`
}

type Signal struct {
	ID                uuid.UUID      `json:"id"`
	ReporterID        string         `json:"reporter_id"`
	Lat               float64        `json:"lat" validate:"lat"` // -90..90
	Lng               float64        `json:"lng" validate:"lng"` // -180..180
	Address           string         `json:"address,omitempty"`
	EmergencyType     EmergencyType  `json:"emergency_type"`
	Message           string         `json:"message,omitempty"`
	Priority          SignalPriority `json:"priority"`
	Status            SignalStatus   `json:"status"`
	EscalationLevel   int            `json:"escalation_level"`
	AssignedResponder *string        `json:"assigned_responder,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	AcknowledgedAt    *time.Time     `json:"acknowledged_at,omitempty"`
	ResolvedAt        *time.Time     `json:"resolved_at,omitempty"`
	Notes             []Note         `json:"notes,omitempty"`
}
