package update_waiting_list_status

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist/models"
)

type WaitingListService interface {
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
