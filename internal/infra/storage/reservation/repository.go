package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// reservationColumns полный список колонок таблицы reservations
var reservationColumns = []string{
	"id",
	"resource_id",
	"pool_id",
	"actor_type",
	"actor_id",
	"event_type",
	"reason",
	"start_at",
	"end_at",
	"status",
	"denial_reason",
	"rrule",
	"recurrence_end",
	"created_at",
	"updated_at",
}

// Коды ошибок PostgreSQL для нарушения ограничений пересечения
const (
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
)

// Repository репозиторий для работы с бронированиями и их исключениями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе pending
// Если в контексте передана активная транзакция, использует её
// Нарушение exclusion constraint (две одновременные брони одного ресурса)
// транслируется в ErrSlotTaken
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"resource_id",
			"pool_id",
			"actor_type",
			"actor_id",
			"event_type",
			"reason",
			"start_at",
			"end_at",
			"status",
			"rrule",
			"recurrence_end",
		).
		Values(
			res.ResourceID,
			res.PoolID,
			res.Actor.Type,
			res.Actor.ID,
			res.EventType,
			res.Reason,
			res.StartAt,
			res.EndAt,
			res.Status,
			res.RRule,
			res.RecurrenceEnd,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == pqExclusionViolation || pqErr.Code == pqUniqueViolation) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
// forUpdate блокирует строку (FOR UPDATE) - имеет смысл только внутри транзакции
func (r *Repository) GetByID(ctx context.Context, id int64, forUpdate bool) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetWithFilter получает бронирования ресурсов с гибкой фильтрацией
// Окно [From, To) сравнивается с концом занятости брони: для повторяющихся
// это recurrence_end плюс длительность вхождения (последнее вхождение может
// начаться перед recurrence_end и выйти за него), для одиночных - end_at
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"resource_id": filter.ResourceIDs})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("COALESCE(recurrence_end + (end_at - start_at), end_at) > ?", *filter.From))
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if len(filter.Statuses) > 0 {
		statusStrings := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings})
	}
	if filter.Actor != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{
			"actor_type": filter.Actor.Type,
			"actor_id":   filter.Actor.ID,
		})
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC", "id ASC")

	// Блокировка строк для сериализации конкурирующих создании/подтверждений
	if filter.ForUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByActor получает бронирования актора (история, календарь)
// Опционально фильтрует по статусу
func (r *Repository) GetByActor(ctx context.Context, actor domain.Actor, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"actor_type": actor.Type,
			"actor_id":   actor.ID,
		}).
		OrderBy("start_at DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByActor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByActor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Reject переводит бронирование в rejected с указанием причины отказа
func (r *Repository) Reject(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusRejected).
		Set("denial_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reject - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Reject")
}

// GetExceptionsByReservationIDs получает исключения серий для набора бронирований
// Возвращает map reservation_id -> исключения
func (r *Repository) GetExceptionsByReservationIDs(ctx context.Context, reservationIDs []int64) (map[int64][]domain.ReservationException, error) {
	result := make(map[int64][]domain.ReservationException)
	if len(reservationIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"occurrence_start",
		"cancelled",
		"created_at",
	).
		From("reservation_exceptions").
		Where(squirrel.Eq{"reservation_id": reservationIDs}).
		OrderBy("occurrence_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionsByReservationIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionsByReservationIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var exc domain.ReservationException
		if err := rows.Scan(&exc.ID, &exc.ReservationID, &exc.OccurrenceStart, &exc.Cancelled, &exc.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetExceptionsByReservationIDs - scan row: %v", ErrScanRow, err)
		}
		result[exc.ReservationID] = append(result[exc.ReservationID], exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetExceptionsByReservationIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CreateException отменяет одно вхождение повторяющегося бронирования
func (r *Repository) CreateException(ctx context.Context, exc *domain.ReservationException) (*domain.ReservationException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_exceptions").
		Columns("reservation_id", "occurrence_start", "cancelled").
		Values(exc.ReservationID, exc.OccurrenceStart, exc.Cancelled).
		Suffix("ON CONFLICT (reservation_id, occurrence_start) DO UPDATE SET cancelled = EXCLUDED.cancelled").
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateException - execute insert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time
	return exc, nil
}

// execExpectingRow выполняет update, требуя ровно одну затронутую строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservation сканирует одну строку бронирования
func scanReservation(scan func(dest ...interface{}) error) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&res.ID,
		&res.ResourceID,
		&res.PoolID,
		&res.Actor.Type,
		&res.Actor.ID,
		&res.EventType,
		&res.Reason,
		&res.StartAt,
		&res.EndAt,
		&res.Status,
		&res.DenialReason,
		&res.RRule,
		&res.RecurrenceEnd,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
