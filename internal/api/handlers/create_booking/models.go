package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	createBooking "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID    int64   `json:"businessId"`
	ServiceID     int64   `json:"serviceId"`
	VariantID     *int64  `json:"variantId,omitempty"`
	LocationID    *int64  `json:"locationId,omitempty"`
	ResourceID    *int64  `json:"resourceId,omitempty"`
	Date          string  `json:"date"`      // "2026-03-02"
	StartTime     string  `json:"startTime"` // "10:00"
	PeopleCount   int     `json:"peopleCount"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	VoucherCode   string  `json:"voucherCode,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	ServiceID       int64   `json:"serviceId"`
	VariantID       *int64  `json:"variantId,omitempty"`
	LocationID      *int64  `json:"locationId,omitempty"`
	ResourceID      *int64  `json:"resourceId,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Status          string  `json:"status"`
	PeopleCount     int     `json:"peopleCount"`
	BasePriceCents  int64   `json:"basePriceCents"`
	DiscountCents   int64   `json:"discountCents"`
	DiscountName    *string `json:"discountName,omitempty"`
	TotalPriceCents int64   `json:"totalPriceCents"`
	Currency        string  `json:"currency"`
	BookingCode     string  `json:"bookingCode"`
	QRCodeData      string  `json:"qrCodeData"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	peopleCount := r.PeopleCount
	if peopleCount == 0 {
		peopleCount = 1
	}

	return &createBooking.Request{
		BusinessID:    r.BusinessID,
		ServiceID:     r.ServiceID,
		VariantID:     r.VariantID,
		LocationID:    r.LocationID,
		ResourceID:    r.ResourceID,
		Date:          date,
		StartTime:     startTime,
		PeopleCount:   peopleCount,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		VoucherCode:   r.VoucherCode,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		VariantID:       resp.VariantID,
		LocationID:      resp.LocationID,
		ResourceID:      resp.ResourceID,
		Date:            resp.StartAt.Format(domain.DateFormat),
		StartTime:       resp.StartAt.Format(domain.TimeFormat),
		EndTime:         resp.EndAt.Format(domain.TimeFormat),
		Status:          resp.Status,
		PeopleCount:     resp.PeopleCount,
		BasePriceCents:  resp.BasePriceCents,
		DiscountCents:   resp.DiscountCents,
		DiscountName:    resp.DiscountName,
		TotalPriceCents: resp.TotalPriceCents,
		Currency:        resp.Currency,
		BookingCode:     resp.BookingCode,
		QRCodeData:      resp.QRCodeData,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
