package discount

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "discounts"

// Repository репозиторий правил скидок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория скидок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive возвращает активные скидки бизнеса
// Окно действия и лимиты проверяются при выборе скидки, а не в запросе
func (r *Repository) ListActive(ctx context.Context, businessID int64) ([]*domain.Discount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListActiveQuery(businessID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	discounts := make([]*domain.Discount, 0)
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %w", ErrScanRow, err)
		}

		discounts = append(discounts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %w", ErrScanRow, err)
	}

	return discounts, nil
}

// IncrementUsage увеличивает счетчик использований скидки
// Обновление условное: при достигнутом лимите строка не меняется и возвращается ErrUsageLimitReached
func (r *Repository) IncrementUsage(ctx context.Context, businessID, discountID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildIncrementUsageQuery(businessID, discountID)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: discount id=%d", ErrUsageLimitReached, discountID)
	}

	return nil
}

func buildListActiveQuery(businessID int64) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"code",
		"type",
		"value",
		"max_discount_cents",
		"service_id",
		"tier_id",
		"location_id",
		"is_auto",
		"start_at",
		"end_at",
		"usage_limit",
		"usage_count",
		"is_active",
		"created_at",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"business_id": businessID, "is_active": true}).
		OrderBy("id ASC").
		ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDiscount читает строку discounts; окно действия обязательно (NOT NULL в схеме)
func scanDiscount(row rowScanner) (*domain.Discount, error) {
	var d domain.Discount
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&d.ID,
		&d.BusinessID,
		&d.Name,
		&d.Code,
		&d.Type,
		&d.Value,
		&d.MaxDiscountCents,
		&d.ServiceID,
		&d.TierID,
		&d.LocationID,
		&d.IsAuto,
		&d.StartAt,
		&d.EndAt,
		&d.UsageLimit,
		&d.UsageCount,
		&d.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return &d, nil
}

func buildIncrementUsageQuery(businessID, discountID int64) (string, []interface{}, error) {
	return psqlbuilder.Update(tableName).
		Set("usage_count", squirrel.Expr("usage_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": discountID, "business_id": businessID}).
		Where(squirrel.Or{
			squirrel.Eq{"usage_limit": nil},
			squirrel.Expr("usage_count < usage_limit"),
		}).
		ToSql()
}
