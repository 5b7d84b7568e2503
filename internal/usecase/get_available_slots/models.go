package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	VariantID  *int64    // ID варианта услуги (опционально)
	LocationID *int64    // Локация (опционально, уровень расписания)
	ResourceID *int64    // Ресурс (опционально, уровень расписания)
	Date       time.Time // Дата (время игнорируется)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time
	BusinessID      int64
	ServiceID       int64
	VariantID       *int64
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime         types.TimeString // Время начала, например "10:00"
	EndTime           types.TimeString // Время окончания
	StartAt           time.Time
	EndAt             time.Time
	Available         bool
	RemainingCapacity int
	TotalCapacity     int
}
