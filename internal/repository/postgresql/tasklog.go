package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/tasklog"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/database"
)

type taskLogRepository struct {
	db *database.DB
}

func NewTaskLogRepository(db *database.DB) tasklog.LogRepository {
	return &taskLogRepository{db: db}
}

const taskLogColumns = `id, user_id, task_name, start_time, end_time, created_at, updated_at`

func scanTaskLog(row pgx.Row) (tasklog.Log, error) {
	var l tasklog.Log
	err := row.Scan(&l.ID, &l.UserID, &l.TaskName, &l.StartTime, &l.EndTime, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// Create implements tasklog.LogRepository.
func (r *taskLogRepository) Create(ctx context.Context, log tasklog.Log) (tasklog.Log, error) {
	q := GetQuerier(ctx, r.db)

	log.ID = uuid.NewString()
	query := `
		INSERT INTO task_logs (id, user_id, task_name, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.ID, log.UserID, log.TaskName, log.StartTime, log.EndTime,
	).Scan(&log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return tasklog.Log{}, fmt.Errorf("failed to create task log: %w", err)
	}

	return log, nil
}

// Update implements tasklog.LogRepository.
func (r *taskLogRepository) Update(ctx context.Context, log tasklog.Log) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE task_logs SET
			task_name = $2,
			start_time = $3,
			end_time = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, log.ID, log.TaskName, log.StartTime, log.EndTime)
	if err != nil {
		return fmt.Errorf("failed to update task log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tasklog.ErrLogNotFound
	}
	return nil
}

// GetRunningByUser implements tasklog.LogRepository. Returns nil when no
// timer is running.
func (r *taskLogRepository) GetRunningByUser(ctx context.Context, userID string) (*tasklog.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskLogColumns + `
		FROM task_logs
		WHERE user_id = $1 AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1`

	log, err := scanTaskLog(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get running task log: %w", err)
	}
	return &log, nil
}

// ListByUserAndDay implements tasklog.LogRepository.
func (r *taskLogRepository) ListByUserAndDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) ([]tasklog.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskLogColumns + `
		FROM task_logs
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`

	rows, err := q.Query(ctx, query, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list task logs: %w", err)
	}
	defer rows.Close()

	var logs []tasklog.Log
	for rows.Next() {
		log, err := scanTaskLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// CloseOpenByUser implements tasklog.LogRepository.
func (r *taskLogRepository) CloseOpenByUser(ctx context.Context, userID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE task_logs SET
			end_time = $2,
			updated_at = NOW()
		WHERE user_id = $1 AND end_time IS NULL AND start_time <= $2
	`

	if _, err := q.Exec(ctx, query, userID, at); err != nil {
		return fmt.Errorf("failed to close open task logs: %w", err)
	}
	return nil
}

// SumSecondsByUserAndDay implements tasklog.LogRepository. Running logs count
// up to now.
func (r *taskLogRepository) SumSecondsByUserAndDay(ctx context.Context, userID string, dayStart, dayEnd, now time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var seconds int
	query := `
		SELECT COALESCE(SUM(
			EXTRACT(EPOCH FROM (COALESCE(end_time, $4) - start_time))
		), 0)::int
		FROM task_logs
		WHERE user_id = $1
		  AND start_time >= $2 AND start_time < $3
		  AND COALESCE(end_time, $4) > start_time
	`
	if err := q.QueryRow(ctx, query, userID, dayStart, dayEnd, now).Scan(&seconds); err != nil {
		return 0, fmt.Errorf("failed to sum task log seconds: %w", err)
	}
	return seconds, nil
}
