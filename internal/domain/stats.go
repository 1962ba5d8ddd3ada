package domain

import "time"

// StatsSnapshot is a point-in-time aggregate over signals created inside
// [WindowStart, WindowEnd]. Latencies are in seconds and nil when no signal
// in the window has been acknowledged.
type StatsSnapshot struct {
	WindowStart       time.Time                `json:"window_start"`
	WindowEnd         time.Time                `json:"window_end"`
	Total             int64                    `json:"total"`
	CountsByStatus    map[SignalStatus]int64   `json:"counts_by_status"`
	CountsByPriority  map[SignalPriority]int64 `json:"counts_by_priority"`
	ResolutionRate    float64                  `json:"resolution_rate"`
	MeanAckLatencySec *float64                 `json:"mean_ack_latency_sec"`
	P95AckLatencySec  *float64                 `json:"p95_ack_latency_sec"`
	EscalatedCount    int64                    `json:"escalated_count"`
}
