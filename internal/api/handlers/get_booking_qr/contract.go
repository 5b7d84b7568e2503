package get_booking_qr

import "context"

type BookingService interface {
	QRCode(ctx context.Context, id int64, size int) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
