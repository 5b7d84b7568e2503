package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий расписаний работы
// Расписание задается на уровне бизнеса, локации или ресурса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByScope возвращает расписания ровно указанного уровня, упорядоченные по id
// Для уровня бизнеса location_id и resource_id должны быть NULL, для уровня локации NULL должен быть resource_id
// Порядок по id делает выбор "первого подходящего" расписания детерминированным
func (r *Repository) ListByScope(ctx context.Context, scope domain.Scope) ([]*domain.OperatingSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListByScopeQuery(scope)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByScope - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByScope - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.OperatingSchedule, 0)
	for rows.Next() {
		var s domain.OperatingSchedule
		var weekday int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.BusinessID,
			&s.LocationID,
			&s.ResourceID,
			&weekday,
			&s.StartTime,
			&s.EndTime,
			&s.SlotSizeMinutes,
			&s.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByScope - scan row: %w", ErrScanRow, err)
		}

		s.Weekday = time.Weekday(weekday)
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByScope - rows error: %w", ErrScanRow, err)
	}

	return schedules, nil
}

func buildListByScopeQuery(scope domain.Scope) (string, []interface{}, error) {
	where := squirrel.Eq{
		"business_id": scope.BusinessID,
		"location_id": nil,
		"resource_id": nil,
	}
	if scope.LocationID != nil {
		where["location_id"] = *scope.LocationID
	}
	// Расписание ресурса определяется самим ресурсом независимо от локации
	if scope.ResourceID != nil {
		where["resource_id"] = *scope.ResourceID
		delete(where, "location_id")
	}

	return psqlbuilder.Select(
		"id",
		"business_id",
		"location_id",
		"resource_id",
		"weekday",
		"start_time",
		"end_time",
		"slot_size_minutes",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("operating_schedules").
		Where(where).
		OrderBy("id ASC").
		ToSql()
}
