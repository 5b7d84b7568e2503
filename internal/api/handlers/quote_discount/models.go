package quote_discount

import (
	quoteDiscount "github.com/m04kA/SMC-AvailabilityService/internal/usecase/quote_discount"
)

// QuoteRequest HTTP модель запроса расчета скидки
type QuoteRequest struct {
	ServiceID     int64  `json:"serviceId"`
	VariantID     *int64 `json:"variantId,omitempty"`
	LocationID    *int64 `json:"locationId,omitempty"`
	PeopleCount   int    `json:"peopleCount"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	VoucherCode   string `json:"voucherCode,omitempty"`
}

// QuoteResponse HTTP модель ответа
type QuoteResponse struct {
	BasePriceCents int64   `json:"basePriceCents"`
	DiscountCents  int64   `json:"discountCents"`
	DiscountName   *string `json:"discountName"`
	DiscountID     *int64  `json:"discountId,omitempty"`
	TotalCents     int64   `json:"totalCents"`
	Currency       string  `json:"currency"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(businessID int64) *quoteDiscount.Request {
	peopleCount := r.PeopleCount
	if peopleCount == 0 {
		peopleCount = 1
	}

	return &quoteDiscount.Request{
		BusinessID:    businessID,
		ServiceID:     r.ServiceID,
		VariantID:     r.VariantID,
		LocationID:    r.LocationID,
		PeopleCount:   peopleCount,
		CustomerPhone: r.CustomerPhone,
		VoucherCode:   r.VoucherCode,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteDiscount.Response) *QuoteResponse {
	return &QuoteResponse{
		BasePriceCents: resp.BasePriceCents,
		DiscountCents:  resp.DiscountCents,
		DiscountName:   resp.DiscountName,
		DiscountID:     resp.DiscountID,
		TotalCents:     resp.TotalCents,
		Currency:       resp.Currency,
	}
}
