package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID    int64
	ServiceID     int64
	VariantID     *int64
	LocationID    *int64
	ResourceID    *int64
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала слота (например, "10:00")
	PeopleCount   int
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	VoucherCode   string
	Notes         *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	BusinessID      int64
	ServiceID       int64
	VariantID       *int64
	LocationID      *int64
	ResourceID      *int64
	StartAt         time.Time
	EndAt           time.Time
	Status          string
	PeopleCount     int
	BasePriceCents  int64
	DiscountCents   int64
	DiscountName    *string
	TotalPriceCents int64
	Currency        string
	BookingCode     string
	QRCodeData      string
	CreatedAt       time.Time
}
