package get_business_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день, from/to - период [from, to] включительно по дням
func ToServiceRequest(businessID int64, query url.Values, loc *time.Location) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{BusinessID: businessID}

	var err error
	if req.ServiceID, err = handlers.ParseOptionalID(query.Get("serviceId")); err != nil {
		return nil, fmt.Errorf("invalid serviceId: %w", err)
	}
	if req.LocationID, err = handlers.ParseOptionalID(query.Get("locationId")); err != nil {
		return nil, fmt.Errorf("invalid locationId: %w", err)
	}
	if req.ResourceID, err = handlers.ParseOptionalID(query.Get("resourceId")); err != nil {
		return nil, fmt.Errorf("invalid resourceId: %w", err)
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	fromStr, toStr := query.Get("from"), query.Get("to")
	if date := query.Get("date"); date != "" {
		fromStr, toStr = date, date
	}

	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", err)
		}
		end := to.AddDate(0, 0, 1)
		req.To = &end
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
