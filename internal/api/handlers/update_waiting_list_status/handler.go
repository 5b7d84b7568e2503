package update_waiting_list_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist/models"
)

const (
	msgInvalidEntryID     = "некорректный ID записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус"
	msgInvalidTransition  = "недопустимая смена статуса"
	msgNotFound           = "запись не найдена"
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

// Handle PATCH /api/v1/waiting-list/{entryId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entryID, err := handlers.ParseID(mux.Vars(r)["entryId"])
	if err != nil {
		h.logger.Warn("PATCH /waiting-list/{id}/status - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /waiting-list/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entry, err := h.service.UpdateStatus(r.Context(), entryID, &req)
	if err != nil {
		switch {
		case errors.Is(err, waitinglist.ErrInvalidInput):
			h.logger.Warn("PATCH /waiting-list/{id}/status - Invalid status: entry_id=%d, status=%s", entryID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, waitinglist.ErrInvalidTransition):
			h.logger.Warn("PATCH /waiting-list/{id}/status - Invalid transition: entry_id=%d, error=%v", entryID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, waitinglist.ErrEntryNotFound):
			h.logger.Warn("PATCH /waiting-list/{id}/status - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /waiting-list/{id}/status - Failed to update entry: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /waiting-list/{id}/status - Status updated: entry_id=%d, status=%s", entryID, entry.Status)
	handlers.RespondJSON(w, http.StatusOK, entry)
}
