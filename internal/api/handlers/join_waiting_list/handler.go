package join_waiting_list

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgDisabled           = "лист ожидания для услуги недоступен"
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

// Handle POST /api/v1/waiting-list
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.JoinRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waiting-list - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.PeopleCount == 0 {
		req.PeopleCount = 1
	}

	entry, err := h.service.Join(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, waitinglist.ErrInvalidInput):
			h.logger.Warn("POST /waiting-list - Validation error: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, waitinglist.ErrServiceNotFound):
			h.logger.Warn("POST /waiting-list - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, waitinglist.ErrWaitingListDisabled):
			h.logger.Warn("POST /waiting-list - Waiting list disabled: service_id=%d", req.ServiceID)
			handlers.RespondConflict(w, msgDisabled)

		default:
			h.logger.Error("POST /waiting-list - Failed to join waiting list: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waiting-list - Entry created: entry_id=%d, service_id=%d", entry.ID, entry.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
