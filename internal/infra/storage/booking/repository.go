package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"provider_id",
	"client_id",
	"booking_date",
	"start_time",
	"end_time",
	"address",
	"lat",
	"lng",
	"group_id",
	"is_last_in_group",
	"extra_departure_buffer",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения бронирований провайдера.
// Бронирования создаются другим сервисом, здесь они только читаются.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveByProviderAndDate получает активные бронирования провайдера на день,
// отсортированные по времени начала
func (r *Repository) GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error) {
	return r.GetByFilter(ctx, domain.BookingsFilter{
		ProviderID: providerID,
		Date:       date,
	})
}

// GetByFilter получает бронирования провайдера на день с фильтрацией по интервалу времени.
// From/To отбирают бронирования, пересекающиеся с интервалом [From, To).
//
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы изменение окна
// доступности не разошлось с параллельно созданным бронированием.
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID}).
		Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)})

	// Пересечение с интервалом
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}

	if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByFilter - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в бронирование, порядок полей соответствует columns
func scanBooking(row scanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		lat, lng             sql.NullFloat64
		groupID              sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.ProviderID,
		&booking.ClientID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Location.Address,
		&lat,
		&lng,
		&groupID,
		&booking.IsLastInGroup,
		&booking.ExtraDepartureBuffer,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		booking.Location.Lat = &lat.Float64
		booking.Location.Lng = &lng.Float64
	}
	if groupID.Valid && groupID.String != "" {
		booking.GroupID = &groupID.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
