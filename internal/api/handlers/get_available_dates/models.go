package get_available_dates

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	BusinessID int64    `json:"businessId"`
	Dates      []string `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]string, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = d.Format(domain.DateFormat)
	}
	return &AvailableDatesResponse{
		BusinessID: resp.BusinessID,
		Dates:      dates,
	}
}
