package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/entrada-events/checkin-api/internal/domain"
	"github.com/entrada-events/checkin-api/internal/pkg/keymutex"
	"github.com/entrada-events/checkin-api/internal/repository"
)

var (
	ErrInvalidEntryMethod = errors.New("entry method must be one of qrcode, nfc or manual")
	ErrInvalidEntryCode   = errors.New("invalid entry code")
	ErrNoActiveEvent      = repository.ErrNoActiveEvent
)

// DuplicateCheckInError reports a same-day duplicate check-in and carries the
// existing entry so callers can reconcile.
type DuplicateCheckInError struct {
	Entry domain.EventEntry
}

func (e *DuplicateCheckInError) Error() string {
	return "user already checked in to this event today"
}

type EntryRepository interface {
	Create(ctx context.Context, entry domain.EventEntry) (domain.EventEntry, error)
	FindForDay(ctx context.Context, eventID, userID uint, day time.Time) (domain.EventEntry, error)
	FindAll(ctx context.Context) ([]domain.EventEntry, error)
	FindByEventID(ctx context.Context, eventID uint) ([]domain.EventEntry, error)
}

type EntryUserRepository interface {
	FindByIdentifier(ctx context.Context, identifier string) (domain.User, error)
	FindByEntryCode(ctx context.Context, code string) (domain.User, error)
}

type EntryEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindActive(ctx context.Context) (domain.Event, error)
}

type EntryService struct {
	repo      EntryRepository
	userRepo  EntryUserRepository
	eventRepo EntryEventRepository

	// locks serializes the duplicate-check-then-insert sequence per
	// (event, user) key. The unique (event, user, day) index in the store
	// backstops races across instances.
	locks *keymutex.KeyMutex

	now func() time.Time
}

func NewEntryService(repo EntryRepository, userRepo EntryUserRepository, eventRepo EntryEventRepository) *EntryService {
	return &EntryService{
		repo:      repo,
		userRepo:  userRepo,
		eventRepo: eventRepo,
		locks:     keymutex.New(),
		now:       time.Now,
	}
}

// CheckIn records an explicit check-in: the caller names the event and
// identifies the user by id, email or entry code.
func (s *EntryService) CheckIn(ctx context.Context, eventID uint, identifier, method, notes string) (domain.EventEntry, error) {
	if !domain.IsValidEntryMethod(method) {
		return domain.EventEntry{}, ErrInvalidEntryMethod
	}

	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.EventEntry{}, ErrUserNotFound
		}

		return domain.EventEntry{}, fmt.Errorf("s.userRepo.FindByIdentifier -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.EventEntry{}, ErrEventNotFound
		}

		return domain.EventEntry{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	return s.record(ctx, event.ID, user.ID, method, notes)
}

// CheckInByCode records an implicit check-in against the currently active
// event. The code is matched case-insensitively. An unknown code and a
// missing active event fail with distinct errors so callers can tell a bad
// card from no event running.
func (s *EntryService) CheckInByCode(ctx context.Context, code, method string) (domain.EventEntry, error) {
	if !domain.IsValidEntryMethod(method) {
		return domain.EventEntry{}, ErrInvalidEntryMethod
	}

	user, err := s.userRepo.FindByEntryCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.EventEntry{}, ErrInvalidEntryCode
		}

		return domain.EventEntry{}, fmt.Errorf("s.userRepo.FindByEntryCode -> %w", err)
	}

	event, err := s.eventRepo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveEvent) {
			return domain.EventEntry{}, ErrNoActiveEvent
		}

		return domain.EventEntry{}, fmt.Errorf("s.eventRepo.FindActive -> %w", err)
	}

	return s.record(ctx, event.ID, user.ID, method, "")
}

// record runs the same-day duplicate check and the insert under a per
// (event, user) lock.
func (s *EntryService) record(ctx context.Context, eventID, userID uint, method, entryNotes string) (domain.EventEntry, error) {
	unlock := s.locks.Lock(checkInKey(eventID, userID))
	defer unlock()

	now := s.now()

	existing, err := s.repo.FindForDay(ctx, eventID, userID, now)
	if err == nil {
		return domain.EventEntry{}, &DuplicateCheckInError{Entry: existing}
	}
	if !errors.Is(err, repository.ErrEntryNotFound) {
		return domain.EventEntry{}, fmt.Errorf("s.repo.FindForDay -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.EventEntry{
		EventID:     eventID,
		UserID:      userID,
		EntryTime:   now,
		EntryMethod: method,
		Notes:       entryNotes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEntryExistsForDay) {
			// Lost a race against another instance; surface the winner.
			existing, ferr := s.repo.FindForDay(ctx, eventID, userID, now)
			if ferr == nil {
				return domain.EventEntry{}, &DuplicateCheckInError{Entry: existing}
			}
		}

		return domain.EventEntry{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EntryService) ListEntries(ctx context.Context) ([]domain.EventEntry, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return entries, nil
}

func (s *EntryService) ListEventEntries(ctx context.Context, eventID uint) ([]domain.EventEntry, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	entries, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return entries, nil
}

func checkInKey(eventID, userID uint) string {
	return fmt.Sprintf("%d:%d", eventID, userID)
}
