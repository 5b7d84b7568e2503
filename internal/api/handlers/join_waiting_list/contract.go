package join_waiting_list

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist/models"
)

type WaitingListService interface {
	Join(ctx context.Context, req *models.JoinRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
