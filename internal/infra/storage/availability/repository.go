package availability

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"provider_id",
	"date",
	"start_time",
	"end_time",
	"type",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с окнами доступности провайдеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно доступности
func (r *Repository) Create(ctx context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability").
		Columns("provider_id", "date", "start_time", "end_time", "type").
		Values(
			block.ProviderID,
			block.Date.Format(domain.DateFormat),
			block.StartTime,
			block.EndTime,
			block.Type,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return block, nil
}

// GetByID получает окно доступности по ID.
// Внутри транзакции строка блокируется до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("availability").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan availability: %v", ErrScanRow, err)
	}

	return block, nil
}

// GetByProviderAndDate получает окна доступности провайдера на день.
// blockType nil - окна любого типа.
func (r *Repository) GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time, blockType *domain.AvailabilityType) ([]*domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("availability").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC", "id ASC")

	if blockType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *blockType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.AvailabilityBlock, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByProviderAndDate - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndDate - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// Update обновляет время и тип окна доступности
func (r *Repository) Update(ctx context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability").
		Set("start_time", block.StartTime).
		Set("end_time", block.EndTime).
		Set("type", block.Type).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": block.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет окно доступности
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row scanner) (*domain.AvailabilityBlock, error) {
	var (
		block                domain.AvailabilityBlock
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&block.ID,
		&block.ProviderID,
		&block.Date,
		&block.StartTime,
		&block.EndTime,
		&block.Type,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return &block, nil
}
