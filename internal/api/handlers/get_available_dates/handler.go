package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_dates"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidFilterID   = "некорректный ID локации или ресурса"
	msgInvalidCount      = "некорректное количество дат"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-dates
// Query params: locationId, resourceId, count (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.ParseID(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-dates - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	query := r.URL.Query()

	locationID, errLocation := handlers.ParseOptionalID(query.Get("locationId"))
	resourceID, errResource := handlers.ParseOptionalID(query.Get("resourceId"))
	if err := errors.Join(errLocation, errResource); err != nil {
		h.logger.Warn("GET /businesses/{id}/available-dates - Invalid filter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilterID)
		return
	}

	count := 0
	if raw := query.Get("count"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/available-dates - Invalid count: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCount)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		BusinessID: businessID,
		LocationID: locationID,
		ResourceID: resourceID,
		Count:      count,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCount)

		default:
			h.logger.Error("GET /businesses/{id}/available-dates - Failed to get dates: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/available-dates - Dates retrieved successfully: business_id=%d, count=%d",
		businessID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
