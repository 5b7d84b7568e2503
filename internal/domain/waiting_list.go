package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// WaitingListStatus status of a waiting list entry
type WaitingListStatus string

const (
	WaitingListWaiting   WaitingListStatus = "waiting"
	WaitingListInvited   WaitingListStatus = "invited"
	WaitingListConverted WaitingListStatus = "converted"
	WaitingListCancelled WaitingListStatus = "cancelled"
)

var waitingListTransitions = map[WaitingListStatus][]WaitingListStatus{
	WaitingListWaiting: {WaitingListInvited, WaitingListCancelled},
	WaitingListInvited: {WaitingListConverted, WaitingListCancelled},
}

// ParseWaitingListStatus converts a raw string into a known status
func ParseWaitingListStatus(s string) (WaitingListStatus, error) {
	switch status := WaitingListStatus(s); status {
	case WaitingListWaiting, WaitingListInvited, WaitingListConverted, WaitingListCancelled:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWaitingListStatus, s)
}

// CanTransitionTo reports whether the entry may move to next
func (s WaitingListStatus) CanTransitionTo(next WaitingListStatus) bool {
	for _, allowed := range waitingListTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// WaitingListEntry customer waiting for a full slot of a service
type WaitingListEntry struct {
	ID            int64
	BusinessID    int64
	ServiceID     int64
	LocationID    *int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	PreferredDate time.Time
	PreferredTime *types.TimeString
	PeopleCount   int
	Status        WaitingListStatus
	Notes         *string
	InvitedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
