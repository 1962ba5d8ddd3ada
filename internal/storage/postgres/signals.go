package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sosEngine/internal/domain"
	"sosEngine/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SignalRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewSignalRepo(pool *pgxpool.Pool, logger *slog.Logger) *SignalRepo {
	return &SignalRepo{pool: pool, logger: logger}
}

const signalColumns = `
	id,
	reporter_id,
	ST_Y(geo_point::geometry) AS lat,
	ST_X(geo_point::geometry) AS lng,
	address,
	emergency_type,
	message,
	priority,
	status,
	escalation_level,
	assigned_responder,
	created_at,
	acknowledged_at,
	resolved_at,
	notes
`

func (p *SignalRepo) Create(ctx context.Context, signal *domain.Signal) error {
	const op = "postgres.Signal.Create"

	const query = `
		INSERT INTO signals (
			id, reporter_id, geo_point, address, emergency_type, message,
			priority, status, escalation_level, assigned_responder,
			created_at, acknowledged_at, resolved_at, notes
		)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14, $15)
	`

	if signal.ID == uuid.Nil {
		signal.ID = uuid.New()
	}
	if signal.CreatedAt.IsZero() {
		signal.CreatedAt = time.Now().UTC()
	}
	if signal.Status == "" {
		signal.Status = domain.StatusPending
	}

	notes, err := marshalNotes(signal.Notes)
	if err != nil {
		return fmt.Errorf("%s: %w", op, e.ErrValidation)
	}

	_, err = p.pool.Exec(ctx, query,
		signal.ID,
		signal.ReporterID,
		signal.Lng,
		signal.Lat,
		signal.Address,
		signal.EmergencyType,
		signal.Message,
		signal.Priority,
		signal.Status,
		signal.EscalationLevel,
		signal.AssignedResponder,
		signal.CreatedAt,
		signal.AcknowledgedAt,
		signal.ResolvedAt,
		notes,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *SignalRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Signal, error) {
	const op = "postgres.Signal.Get"

	query := `SELECT ` + signalColumns + ` FROM signals WHERE id = $1`

	rows, err := p.pool.Query(ctx, query, id)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	sig, err := scanSignal(rows)
	if err != nil {
		p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return sig, nil
}

func (p *SignalRepo) List(ctx context.Context, filter domain.ListSignalsFilter, page, limit int) ([]*domain.Signal, int64, error) {
	const op = "postgres.Signal.List"

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	where, args := buildFilter(filter)

	countQuery := `SELECT COUNT(*) FROM signals` + where

	var total int64
	if err := p.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	listQuery := fmt.Sprintf(
		`SELECT %s FROM signals%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		signalColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	signals, err := p.querySignals(ctx, op, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return signals, total, nil
}

func (p *SignalRepo) ListActive(ctx context.Context) ([]*domain.Signal, error) {
	const op = "postgres.Signal.ListActive"

	query := `SELECT ` + signalColumns + `
		FROM signals
		WHERE status NOT IN ('resolved', 'false_alarm', 'cancelled')
		ORDER BY created_at ASC`

	return p.querySignals(ctx, op, query)
}

func (p *SignalRepo) ListWindow(ctx context.Context, from, to time.Time) ([]*domain.Signal, error) {
	const op = "postgres.Signal.ListWindow"

	query := `SELECT ` + signalColumns + `
		FROM signals
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at ASC`

	return p.querySignals(ctx, op, query, from, to)
}

func (p *SignalRepo) UpdateCAS(ctx context.Context, signal *domain.Signal, expectedStatus domain.SignalStatus, expectedLevel int) error {
	const op = "postgres.Signal.UpdateCAS"

	const query = `
		UPDATE signals
		SET status             = $2,
			priority           = $3,
			escalation_level   = $4,
			assigned_responder = $5,
			acknowledged_at    = $6,
			resolved_at        = $7,
			notes              = $8
		WHERE id = $1 AND status = $9 AND escalation_level = $10
	`

	notes, err := marshalNotes(signal.Notes)
	if err != nil {
		return fmt.Errorf("%s: %w", op, e.ErrValidation)
	}

	cmd, err := p.pool.Exec(ctx, query,
		signal.ID,
		signal.Status,
		signal.Priority,
		signal.EscalationLevel,
		signal.AssignedResponder,
		signal.AcknowledgedAt,
		signal.ResolvedAt,
		notes,
		expectedStatus,
		expectedLevel,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", signal.ID.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		// Either the row is gone or someone got there first.
		var exists bool
		if err := p.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM signals WHERE id = $1)`, signal.ID).Scan(&exists); err != nil {
			return e.WrapError(ctx, op, err)
		}
		if !exists {
			return fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, e.ErrStaleState)
	}

	return nil
}

func (p *SignalRepo) querySignals(ctx context.Context, op, query string, args ...any) ([]*domain.Signal, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var signals []*domain.Signal
	for rows.Next() {
		sig, err := scanSignal(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		signals = append(signals, sig)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return signals, nil
}

func scanSignal(rows pgx.Rows) (*domain.Signal, error) {
	var (
		sig   domain.Signal
		notes []byte
	)
	if err := rows.Scan(
		&sig.ID,
		&sig.ReporterID,
		&sig.Lat,
		&sig.Lng,
		&sig.Address,
		&sig.EmergencyType,
		&sig.Message,
		&sig.Priority,
		&sig.Status,
		&sig.EscalationLevel,
		&sig.AssignedResponder,
		&sig.CreatedAt,
		&sig.AcknowledgedAt,
		&sig.ResolvedAt,
		&notes,
	); err != nil {
		return nil, err
	}
	if len(notes) > 0 {
		if err := json.Unmarshal(notes, &sig.Notes); err != nil {
			return nil, err
		}
	}
	return &sig, nil
}

func marshalNotes(notes []domain.Note) ([]byte, error) {
	if notes == nil {
		notes = []domain.Note{}
	}
	return json.Marshal(notes)
}

func buildFilter(filter domain.ListSignalsFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
