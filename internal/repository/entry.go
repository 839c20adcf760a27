package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/entrada-events/checkin-api/internal/domain"
	"github.com/entrada-events/checkin-api/internal/repository/dao"
)

var (
	ErrEntryNotFound     = dao.ErrEntryNotFound
	ErrEntryExistsForDay = dao.ErrEntryExistsForDay
)

type EntryDAO interface {
	Insert(ctx context.Context, entry dao.EventEntry) (dao.EventEntry, error)
	FindByID(ctx context.Context, id uint) (dao.EventEntry, error)
	FindForDay(ctx context.Context, eventID, userID uint, day time.Time) (dao.EventEntry, error)
	FindAll(ctx context.Context) ([]dao.EventEntry, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.EventEntry, error)
}

type EntryRepository struct {
	dao EntryDAO
}

func NewEntryRepository(dao EntryDAO) *EntryRepository {
	return &EntryRepository{
		dao: dao,
	}
}

func (r *EntryRepository) Create(ctx context.Context, entry domain.EventEntry) (domain.EventEntry, error) {
	created, err := r.dao.Insert(ctx, dao.EventEntry{
		EventID:     entry.EventID,
		UserID:      entry.UserID,
		EntryTime:   entry.EntryTime,
		EntryMethod: entry.EntryMethod,
		Notes:       entry.Notes,
	})
	if err != nil {
		return domain.EventEntry{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return entryDAOToDomain(created), nil
}

// FindForDay returns the entry recorded for the user and event on the given
// calendar day, if any.
func (r *EntryRepository) FindForDay(ctx context.Context, eventID, userID uint, day time.Time) (domain.EventEntry, error) {
	found, err := r.dao.FindForDay(ctx, eventID, userID, day)
	if err != nil {
		return domain.EventEntry{}, fmt.Errorf("r.dao.FindForDay -> %w", err)
	}

	return entryDAOToDomain(found), nil
}

func (r *EntryRepository) FindAll(ctx context.Context) ([]domain.EventEntry, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	entries := make([]domain.EventEntry, 0, len(found))
	for _, e := range found {
		entries = append(entries, entryDAOToDomain(e))
	}

	return entries, nil
}

func (r *EntryRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.EventEntry, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	entries := make([]domain.EventEntry, 0, len(found))
	for _, e := range found {
		entries = append(entries, entryDAOToDomain(e))
	}

	return entries, nil
}

func entryDAOToDomain(e dao.EventEntry) domain.EventEntry {
	entry := domain.EventEntry{
		ID:          e.ID,
		EventID:     e.EventID,
		UserID:      e.UserID,
		EntryTime:   e.EntryTime,
		EntryMethod: e.EntryMethod,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if e.User.ID != 0 {
		entry.User = &domain.User{
			ID:        e.User.ID,
			Name:      e.User.Name,
			Email:     e.User.Email,
			EntryCode: e.User.EntryCode,
			EntryTime: e.User.EntryTime,
			CreatedAt: e.User.CreatedAt,
			UpdatedAt: e.User.UpdatedAt,
		}
	}

	if e.Event.ID != 0 {
		entry.Event = &domain.Event{
			ID:          e.Event.ID,
			Name:        e.Event.Name,
			Description: e.Event.Description,
			StartDate:   e.Event.StartDate,
			EndDate:     e.Event.EndDate,
			Location:    e.Event.Location,
			IsActive:    e.Event.IsActive,
			CreatedAt:   e.Event.CreatedAt,
			UpdatedAt:   e.Event.UpdatedAt,
		}
	}

	return entry
}
