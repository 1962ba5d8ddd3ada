package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlertPayload is pushed to the outbound alert queue when a signal is created
// at critical priority or an escalation raises its priority.
type AlertPayload struct {
	SignalID        uuid.UUID      `json:"signal_id"`
	Priority        SignalPriority `json:"priority"`
	EscalationLevel int            `json:"escalation_level"`
	Reason          string         `json:"reason,omitempty"`
	RaisedAt        time.Time      `json:"raised_at"`
}
