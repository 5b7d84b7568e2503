package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Availability defaults
const (
	DefaultAvailableDatesCount = 14
	MaxAvailableDatesCount     = 90
)

// Business validation constants
const (
	MinPeoplePerBooking   = 1
	MaxPeoplePerBooking   = 100
	MaxNotesLength        = 500
	MaxVoucherCodeLength  = 64
	MaxCustomerNameLength = 200
)

// Duration conversion
const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

// InactiveStatuses статусы, не занимающие вместимость слота
// Используется для фильтрации при подсчёте оставшихся мест
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
