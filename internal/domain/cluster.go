package domain

import "github.com/google/uuid"

// Cluster is a derived spatial grouping of non-terminal signals.
// It is recomputed on request and never persisted.
type Cluster struct {
	CentroidLat   float64        `json:"centroid_lat"`
	CentroidLng   float64        `json:"centroid_lng"`
	RadiusKm      float64        `json:"radius_km"`
	Members       []uuid.UUID    `json:"members"`
	PriorityLevel SignalPriority `json:"priority_level"`
}
