package get_waiting_list

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist/models"
)

type WaitingListService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.EntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
