package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/psqlbuilder"
)

const exceptionsTable = "schedule_exceptions"

var exceptionColumns = []string{
	"id",
	"workshop_id",
	"exception_date",
	"is_closed",
	"special_open_time",
	"special_close_time",
	"reason",
	"is_recurring_yearly",
	"is_active",
	"created_by",
	"created_at",
	"updated_at",
}

// CreateException создает исключение расписания на дату
func (r *Repository) CreateException(ctx context.Context, e *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(exceptionsTable).
		Columns(
			"workshop_id",
			"exception_date",
			"is_closed",
			"special_open_time",
			"special_close_time",
			"reason",
			"is_recurring_yearly",
			"is_active",
			"created_by",
		).
		Values(
			e.WorkshopID,
			e.Date,
			e.IsClosed,
			e.SpecialOpenTime,
			e.SpecialCloseTime,
			e.Reason,
			e.IsRecurringYearly,
			e.IsActive,
			e.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateException - execute insert: %v", ErrExecQuery, err)
	}

	return e, nil
}

// FindExceptionsForDate получает активные исключения, действующие на дату:
// точные на эту дату и ежегодные с тем же месяцем и днём
func (r *Repository) FindExceptionsForDate(ctx context.Context, workshopID int64, date time.Time) ([]*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From(exceptionsTable).
		Where(squirrel.Eq{"workshop_id": workshopID, "is_active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"exception_date": date.Format(domain.DateFormat)},
			squirrel.And{
				squirrel.Eq{"is_recurring_yearly": true},
				squirrel.Expr("EXTRACT(MONTH FROM exception_date) = ?", int(date.Month())),
				squirrel.Expr("EXTRACT(DAY FROM exception_date) = ?", date.Day()),
			},
		}).
		OrderBy("is_recurring_yearly ASC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindExceptionsForDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryExceptions(ctx, executor, query, args, "FindExceptionsForDate")
}

// ListExceptions получает исключения мастерской за период (границы опциональны)
func (r *Repository) ListExceptions(ctx context.Context, workshopID int64, from, to *time.Time, includeInactive bool) ([]*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(exceptionColumns...).
		From(exceptionsTable).
		Where(squirrel.Eq{"workshop_id": workshopID}).
		OrderBy("exception_date ASC", "id ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"exception_date": from.Format(domain.DateFormat)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"exception_date": to.Format(domain.DateFormat)})
	}
	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryExceptions(ctx, executor, query, args, "ListExceptions")
}

// GetExceptionByID получает исключение по ID
func (r *Repository) GetExceptionByID(ctx context.Context, id int64) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From(exceptionsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionByID - build select query: %v", ErrBuildQuery, err)
	}

	e, err := scanException(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionByID - scan exception: %v", ErrScanRow, err)
	}

	return e, nil
}

// DeactivateException снимает исключение (мягкое удаление)
func (r *Repository) DeactivateException(ctx context.Context, workshopID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(exceptionsTable).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "workshop_id": workshopID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeactivateException - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeactivateException - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeactivateException - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

func (r *Repository) queryExceptions(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]*domain.ScheduleException, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.ScheduleException, 0)
	for rows.Next() {
		e, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		exceptions = append(exceptions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return exceptions, nil
}

func scanException(row rowScanner) (*domain.ScheduleException, error) {
	var e domain.ScheduleException
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.WorkshopID,
		&e.Date,
		&e.IsClosed,
		&e.SpecialOpenTime,
		&e.SpecialCloseTime,
		&e.Reason,
		&e.IsRecurringYearly,
		&e.IsActive,
		&e.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Date = domain.TruncateDate(e.Date)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}
