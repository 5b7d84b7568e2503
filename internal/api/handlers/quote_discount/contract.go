package quote_discount

import (
	"context"

	quoteDiscount "github.com/m04kA/SMC-AvailabilityService/internal/usecase/quote_discount"
)

type QuoteDiscountUseCase interface {
	Execute(ctx context.Context, req *quoteDiscount.Request) (*quoteDiscount.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
