package plan

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dunr-app/dunr/internal/errors"
	"github.com/dunr-app/dunr/internal/sqlite"
)

// insertBatchSize is how many sessions go into a single INSERT statement.
const insertBatchSize = 50

// Repository handles database operations for plans and their sessions.
type Repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewRepository(db *sqlite.Database, logger *slog.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// CreatePlan stores a freshly generated plan and its sessions, replacing any
// previous plan of the rider. There is no plan history. The whole operation
// is atomic so a failed insert leaves the old plan in place.
func (r *Repository) CreatePlan(ctx context.Context, userID string, p Plan, sessions []Session) error {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		err = tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", err))
		}
	}(tx)

	// Cascade removes the old plan's sessions.
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM training_plans WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete previous plans: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO training_plans (id, user_id, race_id, active, is_partial, total_weeks, created_at)
		VALUES (?, ?, ?, 1, ?, ?, ?)`,
		p.ID, userID, p.RaceID, p.IsPartial, p.TotalWeeks,
		p.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}

	for start := 0; start < len(sessions); start += insertBatchSize {
		end := min(start+insertBatchSize, len(sessions))
		if err = insertSessionBatch(ctx, tx, userID, p.ID, start, sessions[start:end]); err != nil {
			return fmt.Errorf("insert sessions %d-%d: %w", start, end, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func insertSessionBatch(ctx context.Context, tx *sql.Tx, userID, planID string, seqOffset int, batch []Session) error {
	placeholders := make([]string, 0, len(batch))
	args := make([]any, 0, len(batch)*12)
	for i, s := range batch {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			s.ID, planID, userID, s.Date.Format(dateFormat), s.WeekNumber,
			s.Weekday().String(), string(s.Type), s.PlannedDurationMin,
			s.PlannedDistanceKm, s.IntensityZone, s.Description, seqOffset+i)
	}

	query := `
		INSERT INTO training_sessions (
			id, plan_id, user_id, session_date, week_number, day_of_week, session_type,
			planned_duration_min, planned_distance_km, intensity_zone, description, seq
		) VALUES ` + strings.Join(placeholders, ", ")

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("exec batch insert: %w", err)
	}

	return nil
}

// DeleteAll removes every plan of the rider and, through cascade, all
// sessions.
func (r *Repository) DeleteAll(ctx context.Context, userID string) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx,
		`DELETE FROM training_plans WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete plans: %w", err)
	}

	return nil
}

// ActivePlan returns the rider's active plan.
func (r *Repository) ActivePlan(ctx context.Context, userID string) (Plan, error) {
	var (
		p            Plan
		createdAtStr string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, race_id, active, is_partial, total_weeks, created_at
		FROM training_plans
		WHERE user_id = ? AND active = 1`, userID).Scan(
		&p.ID, &p.RaceID, &p.Active, &p.IsPartial, &p.TotalWeeks, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrNoActivePlan
	}
	if err != nil {
		return Plan{}, fmt.Errorf("query active plan: %w", err)
	}

	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return Plan{}, fmt.Errorf("parse plan created_at: %w", err)
	}

	return p, nil
}

// DeletePlan removes a plan and, through cascade, its sessions.
func (r *Repository) DeletePlan(ctx context.Context, userID, planID string) error {
	result, err := r.db.ReadWrite.ExecContext(ctx,
		`DELETE FROM training_plans WHERE id = ? AND user_id = ?`, planID, userID)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

const sessionColumns = `
	id, plan_id, session_date, week_number, session_type, planned_duration_min,
	planned_distance_km, intensity_zone, description, completed, actual_duration_min,
	actual_distance_km, perceived_effort, hr_avg, hr_max, elevation_gain_m,
	avg_speed_kmh, avg_cadence, note`

func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var (
		s       Session
		dateStr string
	)
	err := row.Scan(
		&s.ID, &s.PlanID, &dateStr, &s.WeekNumber, &s.Type, &s.PlannedDurationMin,
		&s.PlannedDistanceKm, &s.IntensityZone, &s.Description, &s.Completed,
		&s.ActualDurationMin, &s.ActualDistanceKm, &s.PerceivedEffort, &s.HRAvg,
		&s.HRMax, &s.ElevationGainM, &s.AvgSpeedKmh, &s.AvgCadence, &s.Note)
	if err != nil {
		return Session{}, err
	}

	if s.Date, err = time.Parse(dateFormat, dateStr); err != nil {
		return Session{}, fmt.Errorf("parse session date: %w", err)
	}
	s.Date = s.Date.UTC()

	return s, nil
}

// ListSessions returns every session of the rider's active plan in date
// order, ties broken by generation order.
func (r *Repository) ListSessions(ctx context.Context, userID string) ([]Session, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM training_sessions
		WHERE user_id = ?
		  AND plan_id IN (SELECT id FROM training_plans WHERE user_id = ? AND active = 1)
		ORDER BY session_date, seq`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if s, err = scanSession(rows); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session rows: %w", err)
	}

	return sessions, nil
}

// GetSession returns one session of the rider by id.
func (r *Repository) GetSession(ctx context.Context, userID, sessionID string) (Session, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM training_sessions
		WHERE id = ? AND user_id = ?`, sessionID, userID)

	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("query session: %w", err)
	}

	return s, nil
}

// UpdateSession reads a session, applies the update function and writes the
// result back in a single transaction. The update function returns false to
// abort without writing.
func (r *Repository) UpdateSession(
	ctx context.Context,
	userID, sessionID string,
	update func(*Session) (bool, error),
) (Session, error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		err = tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", err))
		}
	}(tx)

	row := tx.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM training_sessions
		WHERE id = ? AND user_id = ?`, sessionID, userID)

	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("query session: %w", err)
	}

	write, err := update(&s)
	if err != nil {
		return Session{}, fmt.Errorf("apply update: %w", err)
	}
	if !write {
		return s, nil
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE training_sessions SET
			session_date = ?,
			day_of_week = ?,
			completed = ?,
			actual_duration_min = ?,
			actual_distance_km = ?,
			perceived_effort = ?,
			hr_avg = ?,
			hr_max = ?,
			elevation_gain_m = ?,
			avg_speed_kmh = ?,
			avg_cadence = ?,
			note = ?
		WHERE id = ? AND user_id = ?`,
		s.Date.Format(dateFormat), s.Weekday().String(), s.Completed,
		s.ActualDurationMin, s.ActualDistanceKm, s.PerceivedEffort, s.HRAvg, s.HRMax,
		s.ElevationGainM, s.AvgSpeedKmh, s.AvgCadence, s.Note,
		sessionID, userID); err != nil {
		return Session{}, fmt.Errorf("update session: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("commit transaction: %w", err)
	}

	return s, nil
}
