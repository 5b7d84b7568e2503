package membership

import "time"

// Membership статусы членства
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

// Membership модель членства клиента из сервиса членств
type Membership struct {
	ID            int64      `json:"id"`
	BusinessID    int64      `json:"business_id"`
	CustomerPhone string     `json:"customer_phone"`
	TierID        int64      `json:"tier_id"`
	TierName      string     `json:"tier_name"`
	Status        string     `json:"status"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// IsActive возвращает true, если членство активно на момент now
func (m *Membership) IsActive(now time.Time) bool {
	if m.Status != StatusActive {
		return false
	}
	return m.ExpiresAt == nil || m.ExpiresAt.After(now)
}

// ErrorResponse модель ошибки от сервиса членств
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
