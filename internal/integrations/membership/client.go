package membership

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с сервисом членств
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса членств
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetMembership получает членство клиента в бизнесе по номеру телефона
func (c *Client) GetMembership(ctx context.Context, businessID int64, phone string) (*Membership, error) {
	endpoint := fmt.Sprintf("%s/internal/businesses/%d/memberships?%s",
		c.baseURL, businessID, url.Values{"phone": []string{phone}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid phone or business ID", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrMembershipNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var membership Membership
	if err := json.NewDecoder(resp.Body).Decode(&membership); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &membership, nil
}

// GetActiveTier возвращает ID уровня активного членства клиента или nil
// Отсутствие членства не является ошибкой. При недоступности сервиса возвращается
// ErrServiceDegraded, вызывающий может продолжить без уровня членства
func (c *Client) GetActiveTier(ctx context.Context, businessID int64, phone string, now time.Time) (*int64, error) {
	membership, err := c.GetMembership(ctx, businessID, phone)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			c.log.Info("No membership for business=%d, phone=%s", businessID, maskPhone(phone))
			return nil, nil
		}

		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("Membership service unavailable, applying graceful degradation for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: business=%d, error=%v", ErrServiceDegraded, businessID, err)
	}

	if !membership.IsActive(now) {
		c.log.Info("Membership id=%d is not active (status=%s)", membership.ID, membership.Status)
		return nil, nil
	}

	c.log.Info("Resolved membership tier=%d (%s) for business=%d", membership.TierID, membership.TierName, businessID)
	return &membership.TierID, nil
}

// maskPhone скрывает номер в логах, оставляя последние 4 цифры
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return "****" + phone[len(phone)-4:]
}
