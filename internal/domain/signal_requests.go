package domain

import "time"

// CreateSignalRequest carries coordinates as pointers: absence and the
// zero value are different things at the equator and prime meridian.
type CreateSignalRequest struct {
	ReporterID    string         `json:"reporter_id" validate:"required"`
	Lat           *float64       `json:"lat" validate:"required,lat"`
	Lng           *float64       `json:"lng" validate:"required,lng"`
	Address       string         `json:"address" validate:"omitempty,max=512"`
	EmergencyType EmergencyType  `json:"emergency_type" validate:"required,oneof=medical fire accident crime natural_disaster other"`
	Message       string         `json:"message" validate:"omitempty,max=2048"`
	Priority      SignalPriority `json:"priority" validate:"omitempty,oneof=low medium high critical"`
}

type TransitionStatusRequest struct {
	TargetStatus SignalStatus `json:"target_status" validate:"required,oneof=pending acknowledged responding resolved false_alarm cancelled"`
	Note         string       `json:"note" validate:"omitempty,max=2048"`
	Author       string       `json:"author" validate:"omitempty,max=128"`
}

type AssignResponderRequest struct {
	ResponderID string `json:"responder_id" validate:"required,max=128"`
	Note        string `json:"note" validate:"omitempty,max=2048"`
	Author      string `json:"author" validate:"omitempty,max=128"`
}

type EscalateRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2048"`
}

// ListSignalsFilter narrows List output. Nil fields mean "any".
type ListSignalsFilter struct {
	Status   *SignalStatus
	Priority *SignalPriority
	From     *time.Time
	To       *time.Time
}

type ListSignalsResponse struct {
	Signals []Signal `json:"signals"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Total   int64    `json:"total"`
}
