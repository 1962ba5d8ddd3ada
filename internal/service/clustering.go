package service

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"sosEngine/internal/domain"
)

type clusterService struct {
	repo            SignalRepository
	cache           SnapshotCache
	logger          *slog.Logger
	defaultRadiusKm float64
	snapshotTTL     time.Duration
}

func NewClusterService(
	repo SignalRepository,
	cache SnapshotCache,
	logger *slog.Logger,
	defaultRadiusKm float64,
	snapshotTTL time.Duration,
) ClusterService {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 2.0
	}
	if snapshotTTL <= 0 {
		snapshotTTL = 60 * time.Second
	}
	return &clusterService{
		repo:            repo,
		cache:           cache,
		logger:          logger,
		defaultRadiusKm: defaultRadiusKm,
		snapshotTTL:     snapshotTTL,
	}
}

func (s *clusterService) GetClusters(ctx context.Context, radiusKm float64) ([]domain.Cluster, error) {
	if radiusKm <= 0 {
		radiusKm = s.defaultRadiusKm
	}

	signals, err := s.activeSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	clusters := ComputeClusters(signals, radiusKm)
	s.logger.Debug("clusters computed",
		slog.Int("signals", len(signals)),
		slog.Int("clusters", len(clusters)),
		slog.Float64("radius_km", radiusKm),
	)
	return clusters, nil
}

// RefreshSnapshot repopulates the active-signal cache from the repository.
func (s *clusterService) RefreshSnapshot(ctx context.Context) error {
	signals, err := s.repo.ListActive(ctx)
	if err != nil {
		return err
	}
	return s.cache.SetActive(ctx, signals, s.snapshotTTL)
}

func (s *clusterService) activeSnapshot(ctx context.Context) ([]*domain.Signal, error) {
	signals, err := s.cache.GetActive(ctx)
	if err != nil {
		s.logger.Warn("snapshot cache read failed, falling back to store", slog.Any("error", err))
	}
	if err == nil && signals != nil {
		return signals, nil
	}

	signals, err = s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if cerr := s.cache.SetActive(ctx, signals, s.snapshotTTL); cerr != nil {
		s.logger.Warn("snapshot cache write failed", slog.Any("error", cerr))
	}
	return signals, nil
}

// ComputeClusters partitions signals into hotspot clusters with single-pass
// greedy clustering run to a fixed point. Every input signal lands in exactly
// one cluster. The result is deterministic for a fixed input set: seeds are
// taken highest priority first, oldest first, id as the final tiebreak.
//
// A non-positive radius yields one singleton cluster per signal.
func ComputeClusters(signals []*domain.Signal, radiusKm float64) []domain.Cluster {
	out := make([]domain.Cluster, 0, len(signals))
	if len(signals) == 0 {
		return out
	}

	sorted := make([]*domain.Signal, len(signals))
	copy(sorted, signals)
	sort.Slice(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Priority.Rank(), sorted[j].Priority.Rank()
		if pi != pj {
			return pi > pj
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	clustered := make([]bool, len(sorted))

	for i := range sorted {
		if clustered[i] {
			continue
		}

		members := []int{i}
		clustered[i] = true
		cLat, cLng := sorted[i].Lat, sorted[i].Lng

		// Fixed point: a signal far from the seed can still join through a
		// centroid dragged toward it by closer members.
		for radiusKm > 0 {
			added := false
			for j := range sorted {
				if clustered[j] {
					continue
				}
				if haversineKm(cLat, cLng, sorted[j].Lat, sorted[j].Lng) <= radiusKm {
					members = append(members, j)
					clustered[j] = true
					cLat, cLng = centroid(sorted, members)
					added = true
				}
			}
			if !added {
				break
			}
		}

		cluster := domain.Cluster{
			CentroidLat:   cLat,
			CentroidLng:   cLng,
			PriorityLevel: sorted[members[0]].Priority,
		}
		for _, m := range members {
			cluster.Members = append(cluster.Members, sorted[m].ID)
			if d := haversineKm(cLat, cLng, sorted[m].Lat, sorted[m].Lng); d > cluster.RadiusKm {
				cluster.RadiusKm = d
			}
			if sorted[m].Priority.Rank() > cluster.PriorityLevel.Rank() {
				cluster.PriorityLevel = sorted[m].Priority
			}
		}
		out = append(out, cluster)
	}

	return out
}

// centroid is the planar mean of member positions, acceptable at hotspot
// scale where clusters span a few kilometers.
func centroid(signals []*domain.Signal, members []int) (float64, float64) {
	var lat, lng float64
	for _, m := range members {
		lat += signals[m].Lat
		lng += signals[m].Lng
	}
	n := float64(len(members))
	return lat / n, lng / n
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0 // Earth radius, km

	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
