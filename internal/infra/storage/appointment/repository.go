package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/psqlbuilder"
)

const (
	table = "appointments"

	activeSlotIndex  = "uq_appointments_active_slot"
	numberConstraint = "appointments_number_unique"

	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
)

var columns = []string{
	"id",
	"appointment_number",
	"client_id",
	"workshop_id",
	"employee_id",
	"reparation_order_id",
	"contact_id",
	"appointment_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"service_type",
	"priority",
	"status",
	"title",
	"description",
	"notes",
	"estimated_cost",
	"actual_cost",
	"completion_notes",
	"vehicle_make",
	"vehicle_model",
	"vehicle_year",
	"vehicle_license_plate",
	"vehicle_vin",
	"vehicle_color",
	"vehicle_mileage",
	"confirmed_at",
	"started_at",
	"completed_at",
	"cancelled_at",
	"cancellation_reason",
	"confirmation_sent",
	"is_active",
	"created_by",
	"updated_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на обслуживание
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Create создает запись.
// Если в контексте есть транзакция (создание с проверкой доступности), запрос выполняется в ней.
// Нарушение уникального индекса слота возвращает ErrSlotTaken, коллизия номера - ErrDuplicateNumber.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"appointment_number",
			"client_id",
			"workshop_id",
			"employee_id",
			"reparation_order_id",
			"contact_id",
			"appointment_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"service_type",
			"priority",
			"status",
			"title",
			"description",
			"notes",
			"estimated_cost",
			"vehicle_make",
			"vehicle_model",
			"vehicle_year",
			"vehicle_license_plate",
			"vehicle_vin",
			"vehicle_color",
			"vehicle_mileage",
			"is_active",
			"created_by",
			"updated_by",
		).
		Values(
			a.AppointmentNumber,
			a.ClientID,
			a.WorkshopID,
			a.EmployeeID,
			a.ReparationOrderID,
			a.ContactID,
			a.AppointmentDate.Format(domain.DateFormat),
			a.StartTime,
			a.EndTime,
			a.DurationMinutes,
			a.ServiceType,
			a.Priority,
			a.Status,
			a.Title,
			a.Description,
			a.Notes,
			a.EstimatedCost,
			a.Vehicle.Make,
			a.Vehicle.Model,
			a.Vehicle.Year,
			a.Vehicle.LicensePlate,
			a.Vehicle.VIN,
			a.Vehicle.Color,
			a.Vehicle.Mileage,
			a.IsActive,
			a.CreatedBy,
			a.UpdatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, translateError(err, "Create - execute insert")
	}

	return a, nil
}

// GetByID получает запись по ID (включая деактивированные)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// FindByNumber получает запись по номеру
func (r *Repository) FindByNumber(ctx context.Context, number string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"appointment_number": number}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByNumber - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByNumber - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// ExistsByNumber проверяет, занят ли номер записи
func (r *Repository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"appointment_number": number}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByNumber - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsByNumber - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// FindOccupyingByWorkshopAndDate получает активные неотменённые записи мастерской на дату.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка и вставка были согласованы.
func (r *Repository) FindOccupyingByWorkshopAndDate(ctx context.Context, workshopID int64, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"workshop_id":      workshopID,
			"appointment_date": date.Format(domain.DateFormat),
			"is_active":        true,
		}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOccupyingByWorkshopAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, query, args, "FindOccupyingByWorkshopAndDate")
}

// FindByWorkshopWithFilter получает записи мастерской с фильтрацией.
//
// Примеры:
//
//  1. Все активные записи мастерской:
//     filter := domain.WorkshopAppointmentsFilter{WorkshopID: 7}
//
//  2. Незавершённые записи за период (для подсчёта загруженности):
//     filter := domain.WorkshopAppointmentsFilter{WorkshopID: 7, StartDate: &from, EndDate: &to,
//     Statuses: domain.OccupyingStatuses}
func (r *Repository) FindByWorkshopWithFilter(ctx context.Context, filter domain.WorkshopAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"workshop_id": filter.WorkshopID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}
	if len(filter.ExcludeStatuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(filter.ExcludeStatuses)})
	}
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	selectBuilder = selectBuilder.OrderBy("appointment_date ASC", "start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByWorkshopWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, query, args, "FindByWorkshopWithFilter")
}

// Update сохраняет изменяемые поля записи (статус, время, аудит).
// Перенос на занятый слот возвращает ErrSlotTaken.
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("employee_id", a.EmployeeID).
		Set("reparation_order_id", a.ReparationOrderID).
		Set("appointment_date", a.AppointmentDate.Format(domain.DateFormat)).
		Set("start_time", a.StartTime).
		Set("end_time", a.EndTime).
		Set("duration_minutes", a.DurationMinutes).
		Set("status", a.Status).
		Set("actual_cost", a.ActualCost).
		Set("completion_notes", a.CompletionNotes).
		Set("confirmed_at", a.ConfirmedAt).
		Set("started_at", a.StartedAt).
		Set("completed_at", a.CompletedAt).
		Set("cancelled_at", a.CancelledAt).
		Set("cancellation_reason", a.CancellationReason).
		Set("confirmation_sent", a.ConfirmationSent).
		Set("is_active", a.IsActive).
		Set("updated_by", a.UpdatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, translateError(err, "Update - execute update")
	}

	return a, nil
}

// LinkReparationOrder привязывает заказ-наряд, только если у записи его ещё нет.
// Если запись уже связана, возвращает ErrReparationOrderAlreadyLinked.
func (r *Repository) LinkReparationOrder(ctx context.Context, id, orderID int64, updatedBy *int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := linkReparationOrderQuery(id, orderID, updatedBy)
	if err != nil {
		return nil, fmt.Errorf("%w: LinkReparationOrder - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReparationOrderAlreadyLinked
	}
	if err != nil {
		return nil, translateError(err, "LinkReparationOrder - execute update")
	}

	return a, nil
}

func linkReparationOrderQuery(id, orderID int64, updatedBy *int64) (string, []interface{}, error) {
	return psqlbuilder.Update(table).
		Set("reparation_order_id", orderID).
		Set("updated_by", updatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "reparation_order_id": nil}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]*domain.Appointment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, op+" - execute query")
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return appointments, nil
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.AppointmentNumber,
		&a.ClientID,
		&a.WorkshopID,
		&a.EmployeeID,
		&a.ReparationOrderID,
		&a.ContactID,
		&a.AppointmentDate,
		&a.StartTime,
		&a.EndTime,
		&a.DurationMinutes,
		&a.ServiceType,
		&a.Priority,
		&a.Status,
		&a.Title,
		&a.Description,
		&a.Notes,
		&a.EstimatedCost,
		&a.ActualCost,
		&a.CompletionNotes,
		&a.Vehicle.Make,
		&a.Vehicle.Model,
		&a.Vehicle.Year,
		&a.Vehicle.LicensePlate,
		&a.Vehicle.VIN,
		&a.Vehicle.Color,
		&a.Vehicle.Mileage,
		&a.ConfirmedAt,
		&a.StartedAt,
		&a.CompletedAt,
		&a.CancelledAt,
		&a.CancellationReason,
		&a.ConfirmationSent,
		&a.IsActive,
		&a.CreatedBy,
		&a.UpdatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.AppointmentDate = domain.TruncateDate(a.AppointmentDate)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// translateError переводит ошибки PostgreSQL в ошибки репозитория
func translateError(err error, step string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pqUniqueViolation && pqErr.Constraint == numberConstraint:
			return fmt.Errorf("%w: %s: %v", ErrDuplicateNumber, step, err)
		case pqErr.Code == pqUniqueViolation && pqErr.Constraint == activeSlotIndex:
			return fmt.Errorf("%w: %s: %v", ErrSlotTaken, step, err)
		case pqErr.Code == pqSerializationFailure:
			return fmt.Errorf("%w: %s: %v", ErrSerialization, step, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, step, err)
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
