package quote_discount

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	quoteDiscount "github.com/m04kA/SMC-AvailabilityService/internal/usecase/quote_discount"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgVariantNotFound    = "вариант услуги не найден"
	msgInvalidConfig      = "услуга настроена некорректно"
)

type Handler struct {
	useCase QuoteDiscountUseCase
	logger  Logger
}

func NewHandler(useCase QuoteDiscountUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/discounts/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.ParseID(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/discounts/quote - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/discounts/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(businessID))
	if err != nil {
		switch {
		case errors.Is(err, quoteDiscount.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/discounts/quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, quoteDiscount.ErrServiceNotFound):
			h.logger.Warn("POST /businesses/{id}/discounts/quote - Service not found: business_id=%d, service_id=%d",
				businessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, quoteDiscount.ErrVariantNotFound):
			h.logger.Warn("POST /businesses/{id}/discounts/quote - Variant not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgVariantNotFound)

		case errors.Is(err, quoteDiscount.ErrInvalidConfiguration):
			h.logger.Error("POST /businesses/{id}/discounts/quote - Invalid configuration: %v", err)
			handlers.RespondUnprocessable(w, msgInvalidConfig)

		default:
			h.logger.Error("POST /businesses/{id}/discounts/quote - Failed to quote: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/discounts/quote - Quote calculated: business_id=%d, service_id=%d, discount=%d",
		businessID, req.ServiceID, result.DiscountCents)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
