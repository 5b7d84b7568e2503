package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookingsRequest запрос на получение бронирований бизнеса
type ListBookingsRequest struct {
	BusinessID      int64      `json:"businessId"`
	ServiceID       *int64     `json:"serviceId,omitempty"`
	LocationID      *int64     `json:"locationId,omitempty"`
	ResourceID      *int64     `json:"resourceId,omitempty"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода, не включается (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		BusinessID:      r.BusinessID,
		ServiceID:       r.ServiceID,
		LocationID:      r.LocationID,
		ResourceID:      r.ResourceID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	BusinessID      int64     `json:"businessId"`
	ServiceID       int64     `json:"serviceId"`
	VariantID       *int64    `json:"variantId,omitempty"`
	LocationID      *int64    `json:"locationId,omitempty"`
	ResourceID      *int64    `json:"resourceId,omitempty"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerEmail   *string   `json:"customerEmail,omitempty"`
	Date            string    `json:"date"`      // "2026-03-02"
	StartTime       string    `json:"startTime"` // "10:00"
	EndTime         string    `json:"endTime"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	Status          string    `json:"status"`
	PeopleCount     int       `json:"peopleCount"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	DiscountCents   int64     `json:"discountCents"`
	DiscountID      *int64    `json:"discountId,omitempty"`
	Currency        string    `json:"currency"`
	BookingCode     string    `json:"bookingCode"`
	QRCodeData      string    `json:"qrCodeData"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Дата и время выводятся в часовом поясе loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}

	start := b.StartAt.In(loc)
	end := b.EndAt.In(loc)

	return &BookingResponse{
		ID:              b.ID,
		BusinessID:      b.BusinessID,
		ServiceID:       b.ServiceID,
		VariantID:       b.VariantID,
		LocationID:      b.LocationID,
		ResourceID:      b.ResourceID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		CustomerEmail:   b.CustomerEmail,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         end.Format(domain.TimeFormat),
		StartAt:         start,
		EndAt:           end,
		Status:          string(b.Status),
		PeopleCount:     b.PeopleCount,
		TotalPriceCents: b.TotalPriceCents,
		DiscountCents:   b.DiscountCents,
		DiscountID:      b.DiscountID,
		Currency:        b.Currency,
		BookingCode:     b.BookingCode,
		QRCodeData:      b.QRCodeData,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
