package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"sosEngine/internal/domain"
	"sosEngine/pkg/e"
)

type statsService struct {
	repo SignalRepository
}

func NewStatsService(repo SignalRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) GetStats(ctx context.Context, from, to time.Time) (*domain.StatsSnapshot, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("window end before start: %w", e.ErrValidation)
	}

	signals, err := s.repo.ListWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	snap := ComputeStats(signals, from, to)
	return &snap, nil
}

// ComputeStats aggregates signals created inside [from, to]. It is a pure
// function of its inputs: no I/O, no hidden state.
func ComputeStats(signals []*domain.Signal, from, to time.Time) domain.StatsSnapshot {
	snap := domain.StatsSnapshot{
		WindowStart:      from,
		WindowEnd:        to,
		CountsByStatus:   make(map[domain.SignalStatus]int64, len(domain.AllStatuses)),
		CountsByPriority: make(map[domain.SignalPriority]int64, len(domain.AllPriorities)),
	}
	for _, st := range domain.AllStatuses {
		snap.CountsByStatus[st] = 0
	}
	for _, pr := range domain.AllPriorities {
		snap.CountsByPriority[pr] = 0
	}

	var (
		resolved  int64
		latencies []float64
	)

	for _, sig := range signals {
		if sig.CreatedAt.Before(from) || sig.CreatedAt.After(to) {
			continue
		}
		snap.Total++
		snap.CountsByStatus[sig.Status]++
		snap.CountsByPriority[sig.Priority]++

		if sig.Status == domain.StatusResolved {
			resolved++
		}
		if sig.EscalationLevel > 0 {
			snap.EscalatedCount++
		}
		if sig.AcknowledgedAt != nil {
			latencies = append(latencies, sig.AcknowledgedAt.Sub(sig.CreatedAt).Seconds())
		}
	}

	if snap.Total > 0 {
		rate := float64(resolved) / float64(snap.Total) * 100
		snap.ResolutionRate = math.Round(rate*100) / 100
	}

	if len(latencies) > 0 {
		mean := meanOf(latencies)
		p95 := p95NearestRank(latencies)
		snap.MeanAckLatencySec = &mean
		snap.P95AckLatencySec = &p95
	}

	return snap
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// p95NearestRank picks the value at rank ceil(0.95 * n) of the sorted
// distribution, per the nearest-rank percentile definition.
func p95NearestRank(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := int(math.Ceil(0.95 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
