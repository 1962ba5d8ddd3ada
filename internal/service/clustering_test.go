package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"sosEngine/internal/domain"
	"sosEngine/internal/service"
	mock_service "sosEngine/internal/service/mocks"
)

func activeSignal(t *testing.T, lat, lng float64, priority domain.SignalPriority, age time.Duration) *domain.Signal {
	t.Helper()
	return &domain.Signal{
		ID:            uuid.New(),
		ReporterID:    "device-1",
		Lat:           lat,
		Lng:           lng,
		EmergencyType: domain.EmergencyFire,
		Priority:      priority,
		Status:        domain.StatusPending,
		CreatedAt:     mustTime(t).Add(-age),
	}
}

func memberSet(c domain.Cluster) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(c.Members))
	for _, id := range c.Members {
		set[id] = true
	}
	return set
}

// --- ComputeClusters ---

func TestComputeClusters_Empty(t *testing.T) {
	t.Parallel()

	clusters := service.ComputeClusters(nil, 2)
	if len(clusters) != 0 {
		t.Fatalf("expected no clusters, got %d", len(clusters))
	}
}

func TestComputeClusters_SingleSignal(t *testing.T) {
	t.Parallel()

	sig := activeSignal(t, 55.75, 37.61, domain.PriorityMedium, 0)
	clusters := service.ComputeClusters([]*domain.Signal{sig}, 2)

	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	c := clusters[0]
	if len(c.Members) != 1 || c.Members[0] != sig.ID {
		t.Fatalf("unexpected members: %v", c.Members)
	}
	if c.CentroidLat != sig.Lat || c.CentroidLng != sig.Lng {
		t.Fatalf("centroid must equal the single position, got (%v,%v)", c.CentroidLat, c.CentroidLng)
	}
	if c.RadiusKm != 0 {
		t.Fatalf("expected radius=0, got %v", c.RadiusKm)
	}
	if c.PriorityLevel != domain.PriorityMedium {
		t.Fatalf("expected priority=medium, got %q", c.PriorityLevel)
	}
}

func TestComputeClusters_ZeroRadiusSingletons(t *testing.T) {
	t.Parallel()

	// co-located signals still must not merge at radius 0
	signals := []*domain.Signal{
		activeSignal(t, 55.75, 37.61, domain.PriorityMedium, time.Minute),
		activeSignal(t, 55.75, 37.61, domain.PriorityMedium, 2*time.Minute),
		activeSignal(t, 55.75, 37.61, domain.PriorityHigh, 3*time.Minute),
	}

	clusters := service.ComputeClusters(signals, 0)
	if len(clusters) != len(signals) {
		t.Fatalf("expected %d singleton clusters, got %d", len(signals), len(clusters))
	}
	for _, c := range clusters {
		if len(c.Members) != 1 {
			t.Fatalf("expected singleton, got %d members", len(c.Members))
		}
	}
}

func TestComputeClusters_NearbySignalsMerge(t *testing.T) {
	t.Parallel()

	// ~0.7 km apart at Moscow latitude
	a := activeSignal(t, 55.750, 37.610, domain.PriorityHigh, 10*time.Minute)
	b := activeSignal(t, 55.755, 37.615, domain.PriorityLow, 5*time.Minute)
	// ~100+ km away
	far := activeSignal(t, 56.85, 35.90, domain.PriorityMedium, time.Minute)

	clusters := service.ComputeClusters([]*domain.Signal{a, b, far}, 2)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}

	var merged, single *domain.Cluster
	for i := range clusters {
		if len(clusters[i].Members) == 2 {
			merged = &clusters[i]
		} else {
			single = &clusters[i]
		}
	}
	if merged == nil || single == nil {
		t.Fatalf("expected one pair and one singleton: %+v", clusters)
	}

	set := memberSet(*merged)
	if !set[a.ID] || !set[b.ID] {
		t.Fatalf("wrong pair members: %v", merged.Members)
	}
	if single.Members[0] != far.ID {
		t.Fatalf("wrong singleton member: %v", single.Members)
	}
	if merged.PriorityLevel != domain.PriorityHigh {
		t.Fatalf("cluster priority must be max of members, got %q", merged.PriorityLevel)
	}
	if merged.RadiusKm <= 0 || merged.RadiusKm > 2 {
		t.Fatalf("unexpected cluster radius %v", merged.RadiusKm)
	}
}

func TestComputeClusters_Partition(t *testing.T) {
	t.Parallel()

	signals := []*domain.Signal{
		activeSignal(t, 55.750, 37.610, domain.PriorityCritical, time.Hour),
		activeSignal(t, 55.751, 37.611, domain.PriorityLow, 30*time.Minute),
		activeSignal(t, 55.752, 37.612, domain.PriorityMedium, 20*time.Minute),
		activeSignal(t, 40.71, -74.00, domain.PriorityHigh, 10*time.Minute),
		activeSignal(t, 40.72, -74.01, domain.PriorityLow, 5*time.Minute),
	}

	clusters := service.ComputeClusters(signals, 3)

	seen := make(map[uuid.UUID]int)
	for _, c := range clusters {
		for _, id := range c.Members {
			seen[id]++
		}
	}
	if len(seen) != len(signals) {
		t.Fatalf("every signal must be clustered: got %d of %d", len(seen), len(signals))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("signal %s appears in %d clusters", id, n)
		}
	}
}

func TestComputeClusters_Deterministic(t *testing.T) {
	t.Parallel()

	signals := []*domain.Signal{
		activeSignal(t, 55.750, 37.610, domain.PriorityMedium, time.Hour),
		activeSignal(t, 55.755, 37.615, domain.PriorityMedium, time.Hour),
		activeSignal(t, 55.760, 37.620, domain.PriorityHigh, time.Minute),
		activeSignal(t, 55.900, 37.900, domain.PriorityLow, time.Second),
	}

	first := service.ComputeClusters(signals, 2)

	// reversed input order must not change the outcome
	reversed := make([]*domain.Signal, 0, len(signals))
	for i := len(signals) - 1; i >= 0; i-- {
		reversed = append(reversed, signals[i])
	}
	second := service.ComputeClusters(reversed, 2)

	if len(first) != len(second) {
		t.Fatalf("cluster count differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		fs, ss := memberSet(first[i]), memberSet(second[i])
		if len(fs) != len(ss) {
			t.Fatalf("cluster %d size differs", i)
		}
		for id := range fs {
			if !ss[id] {
				t.Fatalf("cluster %d membership differs on %s", i, id)
			}
		}
	}
}

func TestComputeClusters_ChainedMembership(t *testing.T) {
	t.Parallel()

	// c is ~2.8 km from a but the centroid of {a, b} drifts toward b,
	// pulling c within reach
	a := activeSignal(t, 55.7500, 37.6100, domain.PriorityCritical, time.Hour)
	b := activeSignal(t, 55.7650, 37.6100, domain.PriorityLow, time.Minute)
	c := activeSignal(t, 55.7750, 37.6100, domain.PriorityLow, time.Second)

	clusters := service.ComputeClusters([]*domain.Signal{a, b, c}, 2)
	if len(clusters) != 1 {
		t.Fatalf("expected a single chained cluster, got %d", len(clusters))
	}
	if len(clusters[0].Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(clusters[0].Members))
	}
}

// --- GetClusters / RefreshSnapshot ---

func TestClusterService_GetClusters_CacheHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockSignalRepository(ctrl)
	cache := mock_service.NewMockSnapshotCache(ctrl)

	signals := []*domain.Signal{activeSignal(t, 55.75, 37.61, domain.PriorityMedium, 0)}
	cache.EXPECT().GetActive(gomock.Any()).Return(signals, nil).Times(1)
	// repo must not be touched on a hit

	svc := service.NewClusterService(repo, cache, testLogger(), 2, time.Minute)

	clusters, err := svc.GetClusters(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
}

func TestClusterService_GetClusters_EmptySnapshotIsAHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockSignalRepository(ctrl)
	cache := mock_service.NewMockSnapshotCache(ctrl)

	// a cached empty snapshot must not fall through to the store
	cache.EXPECT().GetActive(gomock.Any()).Return([]*domain.Signal{}, nil).Times(1)

	svc := service.NewClusterService(repo, cache, testLogger(), 2, time.Minute)

	clusters, err := svc.GetClusters(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(clusters) != 0 {
		t.Fatalf("expected no clusters, got %d", len(clusters))
	}
}

func TestClusterService_GetClusters_CacheMissFallsBack(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockSignalRepository(ctrl)
	cache := mock_service.NewMockSnapshotCache(ctrl)

	signals := []*domain.Signal{activeSignal(t, 55.75, 37.61, domain.PriorityMedium, 0)}

	gomock.InOrder(
		cache.EXPECT().GetActive(gomock.Any()).Return(nil, nil).Times(1),
		repo.EXPECT().ListActive(gomock.Any()).Return(signals, nil).Times(1),
		cache.EXPECT().SetActive(gomock.Any(), signals, time.Minute).Return(nil).Times(1),
	)

	svc := service.NewClusterService(repo, cache, testLogger(), 2, time.Minute)

	clusters, err := svc.GetClusters(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
}

func TestClusterService_GetClusters_CacheErrorFallsBack(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockSignalRepository(ctrl)
	cache := mock_service.NewMockSnapshotCache(ctrl)

	cache.EXPECT().GetActive(gomock.Any()).Return(nil, errors.New("redis down")).Times(1)
	repo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Signal{}, nil).Times(1)
	cache.EXPECT().SetActive(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(1)

	svc := service.NewClusterService(repo, cache, testLogger(), 2, time.Minute)

	clusters, err := svc.GetClusters(context.Background(), 2)
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if len(clusters) != 0 {
		t.Fatalf("expected no clusters, got %d", len(clusters))
	}
}

func TestClusterService_GetClusters_DefaultRadius(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockSignalRepository(ctrl)
	cache := mock_service.NewMockSnapshotCache(ctrl)

	// two signals ~1.6 km apart: merged under the 2 km default,
	// split if the zero radius were used as-is
	signals := []*domain.Signal{
		activeSignal(t, 55.750, 37.610, domain.PriorityMedium, time.Minute),
		activeSignal(t, 55.764, 37.610, domain.PriorityMedium, time.Second),
	}
	cache.EXPECT().GetActive(gomock.Any()).Return(signals, nil).Times(1)

	svc := service.NewClusterService(repo, cache, testLogger(), 2, time.Minute)

	clusters, err := svc.GetClusters(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected default radius to merge, got %d clusters", len(clusters))
	}
}

func TestClusterService_RefreshSnapshot(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockSignalRepository(ctrl)
	cache := mock_service.NewMockSnapshotCache(ctrl)

	signals := []*domain.Signal{activeSignal(t, 55.75, 37.61, domain.PriorityMedium, 0)}
	gomock.InOrder(
		repo.EXPECT().ListActive(gomock.Any()).Return(signals, nil).Times(1),
		cache.EXPECT().SetActive(gomock.Any(), signals, time.Minute).Return(nil).Times(1),
	)

	svc := service.NewClusterService(repo, cache, testLogger(), 2, time.Minute)

	if err := svc.RefreshSnapshot(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestClusterService_RefreshSnapshot_RepoError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockSignalRepository(ctrl)
	cache := mock_service.NewMockSnapshotCache(ctrl)

	repo.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("db down")).Times(1)

	svc := service.NewClusterService(repo, cache, testLogger(), 2, time.Minute)

	if err := svc.RefreshSnapshot(context.Background()); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
