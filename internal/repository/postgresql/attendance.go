package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, user_id, date, clock_in, clock_out, first_clock_in,
	accumulated_seconds, status, half_day_portion, is_late,
	overtime_seconds, overtime_overridden, manual_override,
	override_author, override_reason, non_working_reason,
	created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var r attendance.Record
	err := row.Scan(
		&r.ID, &r.UserID, &r.Date, &r.ClockIn, &r.ClockOut, &r.FirstClockIn,
		&r.AccumulatedSeconds, &r.Status, &r.HalfDayPortion, &r.IsLate,
		&r.OvertimeSeconds, &r.OvertimeOverridden, &r.ManualOverride,
		&r.OverrideAuthor, &r.OverrideReason, &r.NonWorkingReason,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	record.ID = uuid.NewString()
	query := `
		INSERT INTO attendance_records (
			id, user_id, date, clock_in, clock_out, first_clock_in,
			accumulated_seconds, status, half_day_portion, is_late,
			overtime_seconds, overtime_overridden, manual_override,
			override_author, override_reason, non_working_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID, record.UserID, record.Date,
		record.ClockIn, record.ClockOut, record.FirstClockIn,
		record.AccumulatedSeconds, record.Status, record.HalfDayPortion, record.IsLate,
		record.OvertimeSeconds, record.OvertimeOverridden, record.ManualOverride,
		record.OverrideAuthor, record.OverrideReason, record.NonWorkingReason,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// Update implements attendance.Repository. Every mutable field is written,
// including NULLing clock_in when a session closes.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			clock_in = $2,
			clock_out = $3,
			first_clock_in = $4,
			accumulated_seconds = $5,
			status = $6,
			half_day_portion = $7,
			is_late = $8,
			overtime_seconds = $9,
			overtime_overridden = $10,
			manual_override = $11,
			override_author = $12,
			override_reason = $13,
			non_working_reason = $14,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID,
		record.ClockIn, record.ClockOut, record.FirstClockIn,
		record.AccumulatedSeconds, record.Status, record.HalfDayPortion, record.IsLate,
		record.OvertimeSeconds, record.OvertimeOverridden, record.ManualOverride,
		record.OverrideAuthor, record.OverrideReason, record.NonWorkingReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`
	record, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return record, nil
}

func (a *attendanceRepository) getByUserAndDate(ctx context.Context, userID string, date time.Time, forUpdate bool) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND date = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	record, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &record, nil
}

// GetByUserAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	return a.getByUserAndDate(ctx, userID, date, false)
}

// GetByUserAndDateForUpdate implements attendance.Repository. The row lock
// serializes concurrent clock-in/clock-out/sweep for the same user-day.
func (a *attendanceRepository) GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	return a.getByUserAndDate(ctx, userID, date, true)
}

// ListOpenByUserForUpdate implements attendance.Repository.
func (a *attendanceRepository) ListOpenByUserForUpdate(ctx context.Context, userID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND clock_in IS NOT NULL
		ORDER BY date
		FOR UPDATE`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListByUserMonth implements attendance.Repository.
func (a *attendanceRepository) ListByUserMonth(ctx context.Context, userID string, year int, month time.Month) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1
		  AND EXTRACT(YEAR FROM date) = $2
		  AND EXTRACT(MONTH FROM date) = $3
		ORDER BY date`

	rows, err := q.Query(ctx, query, userID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListByMonth implements attendance.Repository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, year int, month time.Month) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE EXTRACT(YEAR FROM date) = $1
		  AND EXTRACT(MONTH FROM date) = $2
		ORDER BY user_id, date`

	rows, err := q.Query(ctx, query, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListUserIDsWithOpenSessions implements attendance.Repository.
func (a *attendanceRepository) ListUserIDsWithOpenSessions(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT DISTINCT user_id FROM attendance_records WHERE clock_in IS NOT NULL`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with open sessions: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}

// ExistsForUserAndDate implements attendance.Repository.
func (a *attendanceRepository) ExistsForUserAndDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM attendance_records WHERE user_id = $1 AND date = $2)`
	if err := q.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance record: %w", err)
	}
	return exists, nil
}

// DeleteSyntheticHoliday implements attendance.Repository.
func (a *attendanceRepository) DeleteSyntheticHoliday(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		DELETE FROM attendance_records
		WHERE date = $1 AND status = $2
		  AND first_clock_in IS NULL AND accumulated_seconds = 0
		  AND manual_override = FALSE
		RETURNING user_id
	`
	rows, err := q.Query(ctx, query, date, attendance.StatusHoliday)
	if err != nil {
		return nil, fmt.Errorf("failed to delete holiday records: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
