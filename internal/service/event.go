package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrada-events/checkin-api/internal/domain"
	"github.com/entrada-events/checkin-api/internal/repository"
)

var (
	ErrEventNotFound      = repository.ErrEventNotFound
	ErrEndDateBeforeStart = errors.New("end_date must be after start_date")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindByIDWithEntries(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindActive(ctx context.Context) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.EndDate != nil && !event.EndDate.After(event.StartDate) {
		return domain.Event{}, ErrEndDateBeforeStart
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByIDWithEntries(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByIDWithEntries -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

// GetActiveEvent returns the single event currently accepting check-ins,
// with its entries and their users attached.
func (s *EventService) GetActiveEvent(ctx context.Context) (domain.Event, error) {
	active, err := s.repo.FindActive(ctx)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindActive -> %w", err)
	}

	event, err := s.repo.FindByIDWithEntries(ctx, active.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByIDWithEntries -> %w", err)
	}

	return event, nil
}

// UpdateEvent applies the provided fields onto the stored event; absent
// fields, is_active included, are left as they are. Activating an event
// deactivates every other event so that at most one is active at any time.
func (s *EventService) UpdateEvent(ctx context.Context, update domain.EventUpdate) (domain.Event, error) {
	current, err := s.repo.FindByID(ctx, update.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if update.Name != "" {
		current.Name = update.Name
	}
	if update.Description != "" {
		current.Description = update.Description
	}
	if update.StartDate != nil {
		current.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		current.EndDate = update.EndDate
	}
	if update.Location != "" {
		current.Location = update.Location
	}
	if update.IsActive != nil {
		current.IsActive = *update.IsActive
	}

	// Checked after the merge so a lone end_date is still compared against
	// the stored start_date.
	if current.EndDate != nil && !current.EndDate.After(current.StartDate) {
		return domain.Event{}, ErrEndDateBeforeStart
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
