//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"sosEngine/internal/domain"
	"sosEngine/pkg/e"
)

var (
	testPool *pgxpool.Pool
	tc       testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "postgres"

	req := testcontainers.ContainerRequest{
		Image:        "postgis/postgis:16-3.4-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, mappedPort.Port(), db)

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := setupSchema(ctx, testPool); err != nil {
		fmt.Println("setupSchema:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func setupSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE EXTENSION IF NOT EXISTS postgis;

		CREATE TABLE IF NOT EXISTS signals (
			id uuid PRIMARY KEY,
			reporter_id text NOT NULL,
			geo_point geography(Point, 4326) NOT NULL,
			address text NOT NULL DEFAULT '',
			emergency_type text NOT NULL,
			message text NOT NULL DEFAULT '',
			priority text NOT NULL,
			status text NOT NULL,
			escalation_level int NOT NULL DEFAULT 0,
			assigned_responder text,
			created_at timestamptz NOT NULL,
			acknowledged_at timestamptz,
			resolved_at timestamptz,
			notes jsonb NOT NULL DEFAULT '[]'
		);
	`)
	return err
}

func truncateSignals(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE signals`)
	if err != nil {
		t.Fatalf("truncate signals: %v", err)
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedSignal(t *testing.T, repo *SignalRepo, status domain.SignalStatus, created time.Time) *domain.Signal {
	t.Helper()
	sig := &domain.Signal{
		ReporterID:    "device-1",
		Lat:           55.75,
		Lng:           37.61,
		EmergencyType: domain.EmergencyMedical,
		Priority:      domain.PriorityMedium,
		Status:        status,
		CreatedAt:     created,
	}
	if err := repo.Create(context.Background(), sig); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return sig
}

func TestSignalRepo_Create_SetsDefaults(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	sig := &domain.Signal{
		ReporterID:    "device-17",
		Lat:           55.75,
		Lng:           37.61,
		EmergencyType: domain.EmergencyFire,
		Priority:      domain.PriorityHigh,
	}

	if err := repo.Create(context.Background(), sig); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if sig.ID == uuid.Nil {
		t.Fatalf("expected ID set")
	}
	if sig.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt set")
	}
	if sig.Status != domain.StatusPending {
		t.Fatalf("expected status=%s got=%s", domain.StatusPending, sig.Status)
	}

	got, err := repo.Get(context.Background(), sig.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Lat != sig.Lat || got.Lng != sig.Lng {
		t.Fatalf("lat/lng mismatch got=(%v,%v) want=(%v,%v)", got.Lat, got.Lng, sig.Lat, sig.Lng)
	}
	if got.ReporterID != "device-17" || got.EmergencyType != domain.EmergencyFire {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestSignalRepo_Get_NotFound(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	_, err := repo.Get(context.Background(), uuid.New())
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestSignalRepo_Create_LngLatOrder_RoundTrip(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	sig := &domain.Signal{
		ReporterID:    "device-1",
		Lat:           49.281441,
		Lng:           -123.055913,
		EmergencyType: domain.EmergencyAccident,
		Priority:      domain.PriorityLow,
	}
	if err := repo.Create(context.Background(), sig); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Get(context.Background(), sig.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Lat != sig.Lat || got.Lng != sig.Lng {
		t.Fatalf("expected round-trip lat/lng equal; got=(%v,%v) want=(%v,%v)", got.Lat, got.Lng, sig.Lat, sig.Lng)
	}
}

func TestSignalRepo_List_FilterAndPagination(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedSignal(t, repo, domain.StatusPending, base.Add(time.Duration(i)*time.Second))
	}
	seedSignal(t, repo, domain.StatusResolved, base.Add(time.Minute))

	status := domain.StatusPending
	list1, total, err := repo.List(context.Background(), domain.ListSignalsFilter{Status: &status}, 1, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total=3 got=%d", total)
	}
	if len(list1) != 2 {
		t.Fatalf("expected len=2 got=%d", len(list1))
	}
	if list1[0].CreatedAt.Before(list1[1].CreatedAt) {
		t.Fatalf("expected DESC order by created_at")
	}

	list2, total2, err := repo.List(context.Background(), domain.ListSignalsFilter{Status: &status}, 2, 2)
	if err != nil {
		t.Fatalf("List page2: %v", err)
	}
	if total2 != 3 || len(list2) != 1 {
		t.Fatalf("expected total=3 len=1, got total=%d len=%d", total2, len(list2))
	}
}

func TestSignalRepo_ListActive_ExcludesTerminals(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	active := seedSignal(t, repo, domain.StatusPending, base)
	seedSignal(t, repo, domain.StatusResponding, base.Add(time.Second))
	seedSignal(t, repo, domain.StatusResolved, base.Add(2*time.Second))
	seedSignal(t, repo, domain.StatusFalseAlarm, base.Add(3*time.Second))
	seedSignal(t, repo, domain.StatusCancelled, base.Add(4*time.Second))

	list, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 active signals, got %d", len(list))
	}
	// oldest first
	if list[0].ID != active.ID {
		t.Fatalf("expected ASC order by created_at")
	}
}

func TestSignalRepo_ListWindow_InclusiveBounds(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)

	seedSignal(t, repo, domain.StatusPending, from.Add(-time.Second))
	onFrom := seedSignal(t, repo, domain.StatusPending, from)
	onTo := seedSignal(t, repo, domain.StatusPending, to)
	seedSignal(t, repo, domain.StatusPending, to.Add(time.Second))

	list, err := repo.ListWindow(context.Background(), from, to)
	if err != nil {
		t.Fatalf("ListWindow: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 signals in window, got %d", len(list))
	}
	if list[0].ID != onFrom.ID || list[1].ID != onTo.ID {
		t.Fatalf("wrong window rows: %v %v", list[0].ID, list[1].ID)
	}
}

func TestSignalRepo_UpdateCAS_OK(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	sig := seedSignal(t, repo, domain.StatusPending, time.Now().UTC())

	now := time.Now().UTC().Truncate(time.Microsecond)
	sig.Status = domain.StatusAcknowledged
	sig.AcknowledgedAt = &now
	sig.Notes = append(sig.Notes, domain.Note{Text: "operator picked up", Author: "op-3", At: now})

	if err := repo.UpdateCAS(context.Background(), sig, domain.StatusPending, 0); err != nil {
		t.Fatalf("UpdateCAS: %v", err)
	}

	got, err := repo.Get(context.Background(), sig.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.StatusAcknowledged {
		t.Fatalf("expected status=acknowledged got=%s", got.Status)
	}
	if got.AcknowledgedAt == nil || !got.AcknowledgedAt.Equal(now) {
		t.Fatalf("AcknowledgedAt mismatch: %v", got.AcknowledgedAt)
	}
	if len(got.Notes) != 1 || got.Notes[0].Text != "operator picked up" {
		t.Fatalf("notes did not round-trip: %+v", got.Notes)
	}
}

func TestSignalRepo_UpdateCAS_StaleStatus(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	sig := seedSignal(t, repo, domain.StatusAcknowledged, time.Now().UTC())

	// writer read the row while it was still pending
	sig.Status = domain.StatusAcknowledged
	err := repo.UpdateCAS(context.Background(), sig, domain.StatusPending, 0)
	if !errors.Is(err, e.ErrStaleState) {
		t.Fatalf("expected ErrStaleState, got: %v", err)
	}
}

func TestSignalRepo_UpdateCAS_StaleLevel(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	sig := seedSignal(t, repo, domain.StatusPending, time.Now().UTC())

	sig.EscalationLevel = 2
	err := repo.UpdateCAS(context.Background(), sig, domain.StatusPending, 1)
	if !errors.Is(err, e.ErrStaleState) {
		t.Fatalf("expected ErrStaleState, got: %v", err)
	}
}

func TestSignalRepo_UpdateCAS_NotFound(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	sig := &domain.Signal{
		ID:            uuid.New(),
		ReporterID:    "device-1",
		Lat:           1,
		Lng:           1,
		EmergencyType: domain.EmergencyOther,
		Priority:      domain.PriorityLow,
		Status:        domain.StatusAcknowledged,
	}

	err := repo.UpdateCAS(context.Background(), sig, domain.StatusPending, 0)
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestSignalRepo_UpdateCAS_ConcurrentWriters(t *testing.T) {

	truncateSignals(t)

	repo := NewSignalRepo(testPool, quietLogger())

	sig := seedSignal(t, repo, domain.StatusPending, time.Now().UTC())

	// both writers read the same pending row
	first := *sig
	second := *sig

	first.Status = domain.StatusAcknowledged
	if err := repo.UpdateCAS(context.Background(), &first, domain.StatusPending, 0); err != nil {
		t.Fatalf("first writer: %v", err)
	}

	second.Status = domain.StatusCancelled
	err := repo.UpdateCAS(context.Background(), &second, domain.StatusPending, 0)
	if !errors.Is(err, e.ErrStaleState) {
		t.Fatalf("second writer must lose the race, got: %v", err)
	}

	got, err := repo.Get(context.Background(), sig.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.StatusAcknowledged {
		t.Fatalf("expected first write to win, status=%s", got.Status)
	}
}
