package waitinglist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	waitingListRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/waitinglist"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Service сервис листа ожидания
type Service struct {
	repo         EntryRepository
	catalog      CatalogService
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(repo EntryRepository, catalog CatalogService, location *time.Location, logger Logger) *Service {
	return &Service{
		repo:         repo,
		catalog:      catalog,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Join записывает клиента в лист ожидания услуги
// Услуга должна быть активна и иметь включенный лист ожидания
func (s *Service) Join(ctx context.Context, req *models.JoinRequest) (*models.EntryResponse, error) {
	s.logger.Info("Join: business=%d, service=%d, date=%s", req.BusinessID, req.ServiceID, req.PreferredDate)

	entry, err := s.entryFromRequest(req)
	if err != nil {
		s.logger.Warn("Join: validation failed: %v", err)
		return nil, err
	}

	offer, err := s.catalog.Resolve(ctx, req.BusinessID, req.ServiceID, nil)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Join: failed to resolve service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Join - failed to resolve service: %v", ErrInternal, err)
	}

	if !offer.Service.WaitingListEnabled {
		s.logger.Warn("Join: waiting list disabled for service id=%d", req.ServiceID)
		return nil, ErrWaitingListDisabled
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Join: repository error: %v", err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Join: created entry id=%d", created.ID)
	return models.FromDomainEntry(created), nil
}

// List возвращает записи листа ожидания бизнеса, опционально по услуге и статусу
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.EntryListResponse, error) {
	s.logger.Info("List: fetching waiting list for business=%d", req.BusinessID)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	filter := waitingListRepo.Filter{BusinessID: req.BusinessID, ServiceID: req.ServiceID}
	if req.Status != nil {
		status, err := domain.ParseWaitingListStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntryList(entries), nil
}

// UpdateStatus переводит запись в новый статус
// При приглашении фиксируется время приглашения
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.EntryResponse, error) {
	s.logger.Info("UpdateStatus: entry id=%d, status=%s", id, req.Status)

	next, err := domain.ParseWaitingListStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, waitingListRepo.ErrEntryNotFound) {
			s.logger.Warn("UpdateStatus: entry id=%d not found", id)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("UpdateStatus: repository error for entry id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !entry.Status.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: entry id=%d cannot move from %s to %s", id, entry.Status, next)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, entry.Status, next)
	}

	invitedAt := entry.InvitedAt
	if next == domain.WaitingListInvited {
		now := s.timeProvider.Now()
		invitedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, next, invitedAt); err != nil {
		if errors.Is(err, waitingListRepo.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("UpdateStatus: failed to update entry id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	entry.Status = next
	entry.InvitedAt = invitedAt
	return models.FromDomainEntry(entry), nil
}

// entryFromRequest валидирует запрос и собирает запись
func (s *Service) entryFromRequest(req *models.JoinRequest) (*domain.WaitingListEntry, error) {
	if req.BusinessID <= 0 || req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: businessID and serviceID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" || len(name) > domain.MaxCustomerNameLength {
		return nil, fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" {
		return nil, fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if req.PeopleCount < domain.MinPeoplePerBooking || req.PeopleCount > domain.MaxPeoplePerBooking {
		return nil, fmt.Errorf("%w: peopleCount must be between %d and %d",
			ErrInvalidInput, domain.MinPeoplePerBooking, domain.MaxPeoplePerBooking)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.PreferredDate, s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid preferredDate, expected YYYY-MM-DD", ErrInvalidInput)
	}

	y, m, d := s.timeProvider.Now().In(s.location).Date()
	if date.Before(time.Date(y, m, d, 0, 0, 0, 0, s.location)) {
		return nil, fmt.Errorf("%w: preferredDate is in the past", ErrInvalidInput)
	}

	var preferredTime *types.TimeString
	if req.PreferredTime != nil {
		ts := types.TimeString(*req.PreferredTime)
		if err := ts.Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid preferredTime: %v", ErrInvalidInput, err)
		}
		preferredTime = &ts
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return &domain.WaitingListEntry{
		BusinessID:    req.BusinessID,
		ServiceID:     req.ServiceID,
		LocationID:    req.LocationID,
		CustomerName:  name,
		CustomerPhone: phone,
		CustomerEmail: req.CustomerEmail,
		PreferredDate: date,
		PreferredTime: preferredTime,
		PeopleCount:   req.PeopleCount,
		Status:        domain.WaitingListWaiting,
		Notes:         req.Notes,
	}, nil
}
