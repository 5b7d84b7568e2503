package waitinglist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "waiting_list_entries"

var columns = []string{
	"id",
	"business_id",
	"service_id",
	"location_id",
	"customer_name",
	"customer_phone",
	"customer_email",
	"preferred_date",
	"preferred_time",
	"people_count",
	"status",
	"notes",
	"invited_at",
	"created_at",
	"updated_at",
}

// Filter фильтр записей листа ожидания
type Filter struct {
	BusinessID int64
	ServiceID  *int64
	Status     *domain.WaitingListStatus
}

// Repository репозиторий листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в лист ожидания
func (r *Repository) Create(ctx context.Context, entry *domain.WaitingListEntry) (*domain.WaitingListEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"business_id",
			"service_id",
			"location_id",
			"customer_name",
			"customer_phone",
			"customer_email",
			"preferred_date",
			"preferred_time",
			"people_count",
			"status",
			"notes",
		).
		Values(
			entry.BusinessID,
			entry.ServiceID,
			entry.LocationID,
			entry.CustomerName,
			entry.CustomerPhone,
			entry.CustomerEmail,
			entry.PreferredDate,
			entry.PreferredTime,
			entry.PeopleCount,
			entry.Status,
			entry.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// GetByID получает запись листа ожидания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitingListEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %w", ErrScanRow, err)
	}

	return entry, nil
}

// List возвращает записи листа ожидания бизнеса в порядке поступления
func (r *Repository) List(ctx context.Context, filter Filter) ([]*domain.WaitingListEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitingListEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}

// UpdateStatus меняет статус записи; invitedAt записывается, только если передан
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.WaitingListStatus, invitedAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpdateStatusQuery(id, status, invitedAt)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func buildListQuery(filter Filter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	return selectBuilder.OrderBy("created_at ASC", "id ASC").ToSql()
}

func buildUpdateStatusQuery(id int64, status domain.WaitingListStatus, invitedAt *time.Time) (string, []interface{}, error) {
	updateBuilder := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if invitedAt != nil {
		updateBuilder = updateBuilder.Set("invited_at", *invitedAt)
	}

	return updateBuilder.ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WaitingListEntry, error) {
	var entry domain.WaitingListEntry
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.BusinessID,
		&entry.ServiceID,
		&entry.LocationID,
		&entry.CustomerName,
		&entry.CustomerPhone,
		&entry.CustomerEmail,
		&entry.PreferredDate,
		&entry.PreferredTime,
		&entry.PeopleCount,
		&entry.Status,
		&entry.Notes,
		&entry.InvitedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}
