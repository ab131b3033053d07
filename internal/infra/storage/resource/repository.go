package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий каталога ресурсов (пулы и единицы ресурсов)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreatePool создает пул и capacity единиц ресурсов в нём
// Выполняется в транзакции из контекста, чтобы пул не остался без единиц
func (r *Repository) CreatePool(ctx context.Context, pool *domain.ResourcePool) (*domain.ResourcePool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resource_pools").
		Columns("name", "kind", "capacity").
		Values(pool.Name, pool.Kind, pool.Capacity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePool - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&pool.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreatePool - execute insert: %v", ErrExecQuery, err)
	}

	pool.CreatedAt = createdAt.Time
	pool.UpdatedAt = updatedAt.Time

	insertBuilder := psqlbuilder.Insert("resources").Columns("pool_id", "label")
	for i := 1; i <= pool.Capacity; i++ {
		insertBuilder = insertBuilder.Values(pool.ID, fmt.Sprintf("%s-%d", pool.Name, i))
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePool - build resources insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreatePool - insert resources: %v", ErrExecQuery, err)
	}

	return pool, nil
}

// GetPoolByID получает пул по ID
func (r *Repository) GetPoolByID(ctx context.Context, id int64) (*domain.ResourcePool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "kind", "capacity", "created_at", "updated_at").
		From("resource_pools").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPoolByID - build select query: %v", ErrBuildQuery, err)
	}

	var pool domain.ResourcePool
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&pool.ID,
		&pool.Name,
		&pool.Kind,
		&pool.Capacity,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPoolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPoolByID - scan pool: %v", ErrScanRow, err)
	}

	pool.CreatedAt = createdAt.Time
	pool.UpdatedAt = updatedAt.Time

	return &pool, nil
}

// ListPools возвращает все пулы ресурсов
func (r *Repository) ListPools(ctx context.Context) ([]*domain.ResourcePool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "kind", "capacity", "created_at", "updated_at").
		From("resource_pools").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPools - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPools - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	pools := make([]*domain.ResourcePool, 0)
	for rows.Next() {
		var pool domain.ResourcePool
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&pool.ID, &pool.Name, &pool.Kind, &pool.Capacity, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListPools - scan row: %v", ErrScanRow, err)
		}

		pool.CreatedAt = createdAt.Time
		pool.UpdatedAt = updatedAt.Time
		pools = append(pools, &pool)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPools - rows error: %v", ErrScanRow, err)
	}

	return pools, nil
}

// ListByPool возвращает единицы ресурсов пула в стабильном порядке (по ID)
// Стабильный порядок важен: создание брони детерминированно выбирает
// первый свободный ресурс
func (r *Repository) ListByPool(ctx context.Context, poolID int64) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "pool_id", "label", "created_at").
		From("resources").
		Where(squirrel.Eq{"pool_id": poolID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByPool - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPool - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		var res domain.Resource
		var createdAt sql.NullTime

		if err := rows.Scan(&res.ID, &res.PoolID, &res.Label, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByPool - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		resources = append(resources, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByPool - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}
