package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Window candidate slot as minute offsets from midnight, end exclusive
type Window struct {
	Start int
	End   int
}

// GenerateSlots returns candidate windows for the schedule aligned to its slot grid
// A window is emitted for every grid step with start+duration <= schedule end,
// so a duration longer than the grid yields overlapping windows
// A missing or inactive schedule yields no windows
func GenerateSlots(schedule *domain.OperatingSchedule, durationMinutes int) ([]Window, error) {
	if schedule == nil || !schedule.IsActive {
		return nil, nil
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrInvalidService, durationMinutes)
	}

	start, end, err := schedule.Bounds()
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, (end-start)/schedule.SlotSizeMinutes+1)
	for current := start; current+durationMinutes <= end; current += schedule.SlotSizeMinutes {
		windows = append(windows, Window{Start: current, End: current + durationMinutes})
	}

	return windows, nil
}

// At converts the window into absolute times on the given date in the date's location
func (w Window) At(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	loc := date.Location()
	return time.Date(y, m, d, 0, w.Start, 0, 0, loc), time.Date(y, m, d, 0, w.End, 0, 0, loc)
}

// FindWindow returns the window starting at the given minute offset
func FindWindow(windows []Window, startMinute int) (Window, bool) {
	for _, w := range windows {
		if w.Start == startMinute {
			return w, true
		}
	}
	return Window{}, false
}
