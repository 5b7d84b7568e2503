package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг и их вариантов
// Для ядра доступности каталог только читается
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу бизнеса по ID
func (r *Repository) GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetServiceQuery(businessID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return service, nil
}

// GetVariant получает вариант услуги по ID
func (r *Repository) GetVariant(ctx context.Context, serviceID, variantID int64) (*domain.ServiceVariant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetVariantQuery(serviceID, variantID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetVariant - build select query: %v", ErrBuildQuery, err)
	}

	variant, err := scanVariant(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVariant - scan variant: %w", ErrScanRow, err)
	}

	return variant, nil
}

func buildGetServiceQuery(businessID, serviceID int64) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"category",
		"duration_value",
		"duration_unit",
		"capacity_per_slot",
		"base_price_cents",
		"currency",
		"requires_payment_before_confirmation",
		"waiting_list_enabled",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID}).
		ToSql()
}

func buildGetVariantQuery(serviceID, variantID int64) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"duration_value",
		"duration_unit",
		"price_cents",
		"is_active",
	).
		From("service_variants").
		Where(squirrel.Eq{"id": variantID, "service_id": serviceID}).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanService читает строку services; category может быть NULL
func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var category sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&service.ID,
		&service.BusinessID,
		&service.Name,
		&category,
		&service.DurationValue,
		&service.DurationUnit,
		&service.CapacityPerSlot,
		&service.BasePriceCents,
		&service.Currency,
		&service.RequiresPaymentBeforeConfirmation,
		&service.WaitingListEnabled,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.Category = category.String
	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// scanVariant читает строку service_variants; все переопределения опциональны
func scanVariant(row rowScanner) (*domain.ServiceVariant, error) {
	var variant domain.ServiceVariant
	var durationUnit sql.NullString

	err := row.Scan(
		&variant.ID,
		&variant.ServiceID,
		&variant.Name,
		&variant.DurationValue,
		&durationUnit,
		&variant.PriceCents,
		&variant.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if durationUnit.Valid {
		unit := domain.DurationUnit(durationUnit.String)
		variant.DurationUnit = &unit
	}

	return &variant, nil
}
