package get_waiting_list

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service WaitingListService
	logger  Logger
}

func NewHandler(service WaitingListService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/waiting-list
// Query params: serviceId, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.ParseID(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/waiting-list - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	query := r.URL.Query()
	serviceID, err := handlers.ParseOptionalID(query.Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/waiting-list - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.ListRequest{BusinessID: businessID, ServiceID: serviceID}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, waitinglist.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/waiting-list - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /businesses/{id}/waiting-list - Failed to get entries: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/waiting-list - Entries retrieved: business_id=%d, count=%d",
		businessID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result.Entries)
}
