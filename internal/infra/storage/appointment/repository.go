package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	"github.com/m04kA/PetSpa-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetSpa-BookingService/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки PostgreSQL для нарушения exclusion constraint
// Констрейнт appointments_no_overlap - авторитетная защита от пересечения
// интервалов: прикладная проверка перед коммитом является только advisory
const pgExclusionViolation = "23P01"

var appointmentColumns = []string{
	"id",
	"pet_id",
	"client_id",
	"employee_id",
	"service_id",
	"start_time",
	"end_time",
	"status",
	"pet_name",
	"service_name",
	"service_price",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на груминг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Нарушение exclusion constraint по интервалу возвращается как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, app *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"pet_id",
			"client_id",
			"employee_id",
			"service_id",
			"start_time",
			"end_time",
			"status",
			"pet_name",
			"service_name",
			"service_price",
			"notes",
		).
		Values(
			app.PetID,
			app.ClientID,
			app.EmployeeID,
			app.ServiceID,
			app.StartTime,
			app.EndTime,
			app.Status,
			app.PetName,
			app.ServiceName,
			app.ServicePrice,
			app.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&app.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time

	return app, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	app, err := scanAppointmentRow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return app, nil
}

// ListInRange получает все неотменённые записи, интервал которых пересекает
// диапазон [from, to). Используется построителем календарной сетки
// и проверкой коллизий. Пересечение диапазона - та же полуоткрытая
// семантика, что и в domain.Interval.Overlaps.
//
// Внутри транзакции добавляет FOR UPDATE, чтобы проверка доступности
// слота и вставка были атомарны.
func (r *Repository) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetByClientID получает список записей клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetAllWithFilter получает записи с гибкой фильтрацией (админские списки)
// Поддерживает фильтрацию по периоду, статусу, сотруднику и включению отменённых
func (r *Repository) GetAllWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.EndDate})
	}
	if filter.EmployeeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": *filter.EmployeeID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus обновляет статус записи при совпадении текущего статуса
// Валидность перехода проверяется на уровне usecase; условие по from
// отсекает гонку двух одновременных переводов из одного состояния
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			// Возврат статуса cancelled -> active снова занимает интервал
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо записи нет, либо её статус уже не from
		return ErrStatusChanged
	}

	return nil
}

// UpdateFull полностью перезаписывает изменяемые поля записи (админская правка)
// Нарушение exclusion constraint по новому интервалу возвращается как ErrSlotConflict
func (r *Repository) UpdateFull(ctx context.Context, app *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("pet_id", app.PetID).
		Set("employee_id", app.EmployeeID).
		Set("service_id", app.ServiceID).
		Set("start_time", app.StartTime).
		Set("end_time", app.EndTime).
		Set("status", app.Status).
		Set("pet_name", app.PetName).
		Set("service_name", app.ServiceName).
		Set("service_price", app.ServicePrice).
		Set("notes", app.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": app.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateFull - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: UpdateFull - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateFull - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// CountByStatus возвращает количество записей в каждом статусе
// Данные для сводки на админской панели
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("appointments").
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.AppointmentStatus]int, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		counts[s] = 0
	}

	for rows.Next() {
		var status domain.AppointmentStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointmentRow(row rowScanner) (*domain.Appointment, error) {
	var app domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&app.ID,
		&app.PetID,
		&app.ClientID,
		&app.EmployeeID,
		&app.ServiceID,
		&app.StartTime,
		&app.EndTime,
		&app.Status,
		&app.PetName,
		&app.ServiceName,
		&app.ServicePrice,
		&app.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time

	return &app, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		app, err := scanAppointmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgExclusionViolation
	}
	return false
}
