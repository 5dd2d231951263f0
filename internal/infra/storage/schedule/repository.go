package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/psqlbuilder"
)

const (
	weeklyTable     = "weekly_schedules"
	uniqueViolation = "23505"
)

var weeklyColumns = []string{
	"id",
	"workshop_id",
	"day_of_week",
	"open_time",
	"close_time",
	"is_open",
	"break_start_time",
	"break_end_time",
	"slot_duration_minutes",
	"is_active",
	"created_by",
	"updated_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий недельного расписания и исключений мастерских
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Create создает расписание на один день недели.
// Повторное создание того же дня возвращает ErrDuplicateDay.
func (r *Repository) Create(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(weeklyTable).
		Columns(
			"workshop_id",
			"day_of_week",
			"open_time",
			"close_time",
			"is_open",
			"break_start_time",
			"break_end_time",
			"slot_duration_minutes",
			"is_active",
			"created_by",
			"updated_by",
		).
		Values(
			s.WorkshopID,
			s.DayOfWeek,
			s.OpenTime,
			s.CloseTime,
			s.IsOpen,
			s.BreakStartTime,
			s.BreakEndTime,
			s.SlotDurationMinutes,
			s.IsActive,
			s.CreatedBy,
			s.UpdatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDay
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// Upsert создает или полностью перезаписывает расписание дня (используется пакетной настройкой недели)
func (r *Repository) Upsert(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(weeklyTable).
		Columns(
			"workshop_id",
			"day_of_week",
			"open_time",
			"close_time",
			"is_open",
			"break_start_time",
			"break_end_time",
			"slot_duration_minutes",
			"is_active",
			"created_by",
			"updated_by",
		).
		Values(
			s.WorkshopID,
			s.DayOfWeek,
			s.OpenTime,
			s.CloseTime,
			s.IsOpen,
			s.BreakStartTime,
			s.BreakEndTime,
			s.SlotDurationMinutes,
			s.IsActive,
			s.CreatedBy,
			s.UpdatedBy,
		).
		Suffix(`ON CONFLICT (workshop_id, day_of_week) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			is_open = EXCLUDED.is_open,
			break_start_time = EXCLUDED.break_start_time,
			break_end_time = EXCLUDED.break_end_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			is_active = EXCLUDED.is_active,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
			RETURNING id, created_by, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// Update перезаписывает изменяемые поля расписания дня
func (r *Repository) Update(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(weeklyTable).
		Set("open_time", s.OpenTime).
		Set("close_time", s.CloseTime).
		Set("is_open", s.IsOpen).
		Set("break_start_time", s.BreakStartTime).
		Set("break_end_time", s.BreakEndTime).
		Set("slot_duration_minutes", s.SlotDurationMinutes).
		Set("updated_by", s.UpdatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return s, nil
}

// FindByWorkshopAndDay получает расписание мастерской на день недели (включая неактивные)
func (r *Repository) FindByWorkshopAndDay(ctx context.Context, workshopID int64, day domain.DayOfWeek) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(weeklyColumns...).
		From(weeklyTable).
		Where(squirrel.Eq{"workshop_id": workshopID, "day_of_week": day}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByWorkshopAndDay - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByWorkshopAndDay - scan schedule: %v", ErrScanRow, err)
	}

	return s, nil
}

// FindAllByWorkshop получает недельное расписание мастерской, упорядоченное по дню недели
func (r *Repository) FindAllByWorkshop(ctx context.Context, workshopID int64, includeInactive bool) ([]*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(weeklyColumns...).
		From(weeklyTable).
		Where(squirrel.Eq{"workshop_id": workshopID}).
		OrderBy(`CASE day_of_week
			WHEN 'monday' THEN 1 WHEN 'tuesday' THEN 2 WHEN 'wednesday' THEN 3
			WHEN 'thursday' THEN 4 WHEN 'friday' THEN 5 WHEN 'saturday' THEN 6
			ELSE 7 END`)

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindAllByWorkshop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindAllByWorkshop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.WeeklySchedule, 0, len(domain.AllDays))
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: FindAllByWorkshop - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindAllByWorkshop - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// SetActive деактивирует или восстанавливает расписание дня
func (r *Repository) SetActive(ctx context.Context, workshopID int64, day domain.DayOfWeek, active bool, updatedBy *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(weeklyTable).
		Set("is_active", active).
		Set("updated_by", updatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"workshop_id": workshopID, "day_of_week": day}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

func scanSchedule(row rowScanner) (*domain.WeeklySchedule, error) {
	var s domain.WeeklySchedule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.WorkshopID,
		&s.DayOfWeek,
		&s.OpenTime,
		&s.CloseTime,
		&s.IsOpen,
		&s.BreakStartTime,
		&s.BreakEndTime,
		&s.SlotDurationMinutes,
		&s.IsActive,
		&s.CreatedBy,
		&s.UpdatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
