package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// JoinRequest запрос на запись в лист ожидания
type JoinRequest struct {
	BusinessID    int64   `json:"businessId"`
	ServiceID     int64   `json:"serviceId"`
	LocationID    *int64  `json:"locationId,omitempty"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	PreferredDate string  `json:"preferredDate"`           // "2026-03-02"
	PreferredTime *string `json:"preferredTime,omitempty"` // "10:00"
	PeopleCount   int     `json:"peopleCount"`
	Notes         *string `json:"notes,omitempty"`
}

// ListRequest запрос на получение листа ожидания бизнеса
type ListRequest struct {
	BusinessID int64
	ServiceID  *int64
	Status     *string
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// EntryResponse ответ с данными записи листа ожидания
type EntryResponse struct {
	ID            int64      `json:"id"`
	BusinessID    int64      `json:"businessId"`
	ServiceID     int64      `json:"serviceId"`
	LocationID    *int64     `json:"locationId,omitempty"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	CustomerEmail *string    `json:"customerEmail,omitempty"`
	PreferredDate string     `json:"preferredDate"`
	PreferredTime *string    `json:"preferredTime,omitempty"`
	PeopleCount   int        `json:"peopleCount"`
	Status        string     `json:"status"`
	Notes         *string    `json:"notes,omitempty"`
	InvitedAt     *time.Time `json:"invitedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// EntryListResponse ответ со списком записей
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitingListEntry) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:            e.ID,
		BusinessID:    e.BusinessID,
		ServiceID:     e.ServiceID,
		LocationID:    e.LocationID,
		CustomerName:  e.CustomerName,
		CustomerPhone: e.CustomerPhone,
		CustomerEmail: e.CustomerEmail,
		PreferredDate: e.PreferredDate.Format(domain.DateFormat),
		PeopleCount:   e.PeopleCount,
		Status:        string(e.Status),
		Notes:         e.Notes,
		InvitedAt:     e.InvitedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}

	if e.PreferredTime != nil {
		preferred := e.PreferredTime.String()
		resp.PreferredTime = &preferred
	}

	return resp
}

// FromDomainEntryList конвертирует список domain моделей в DTO
func FromDomainEntryList(entries []*domain.WaitingListEntry) *EntryListResponse {
	resp := &EntryListResponse{
		Entries: make([]EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		if entryResp := FromDomainEntry(e); entryResp != nil {
			resp.Entries = append(resp.Entries, *entryResp)
		}
	}
	return resp
}
