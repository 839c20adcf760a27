package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/entrada-events/checkin-api/internal/domain"
	"github.com/entrada-events/checkin-api/internal/pkg/entrycode"
	"github.com/entrada-events/checkin-api/internal/repository"
)

var (
	ErrUserNotFound        = repository.ErrUserNotFound
	ErrUserEmailExists     = repository.ErrUserEmailExists
	ErrUserEntryCodeExists = repository.ErrUserEntryCodeExists
)

// Retries when a generated entry code collides with an existing one.
const entryCodeAttempts = 3

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int64, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	TouchEntryTime(ctx context.Context, id uint, at time.Time) (domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// CreateUser hashes the password and stores the user. When no entry code is
// supplied one is generated, retrying on the unlikely collision.
func (s *UserService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	user.Password = string(hash)

	if user.EntryCode != "" {
		user.EntryCode = strings.ToUpper(user.EntryCode)

		created, err := s.repo.Create(ctx, user)
		if err != nil {
			return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
		}

		return created, nil
	}

	for attempt := 0; attempt < entryCodeAttempts; attempt++ {
		code, err := entrycode.Generate()
		if err != nil {
			return domain.User{}, fmt.Errorf("entrycode.Generate -> %w", err)
		}
		user.EntryCode = code

		created, err := s.repo.Create(ctx, user)
		if err != nil {
			if errors.Is(err, repository.ErrUserEntryCodeExists) {
				continue
			}

			return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
		}

		return created, nil
	}

	return domain.User{}, ErrUserEntryCodeExists
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, page, perPage int) ([]domain.User, int64, error) {
	offset := (page - 1) * perPage

	users, total, err := s.repo.List(ctx, offset, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return users, total, nil
}

// UpdateUser applies the non-zero fields onto the stored user. A new
// password is re-hashed; an entry code is normalized to upper case.
func (s *UserService) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	current, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if user.Name != "" {
		current.Name = user.Name
	}
	if user.Email != "" {
		current.Email = user.Email
	}
	if user.EntryCode != "" {
		current.EntryCode = strings.ToUpper(user.EntryCode)
	}
	if user.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
		}
		current.Password = string(hash)
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// LegacyCheckIn stamps the user's entry_time field. Predates event entries;
// kept for clients still driving the single-event flow.
func (s *UserService) LegacyCheckIn(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.TouchEntryTime(ctx, id, time.Now())
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.TouchEntryTime -> %w", err)
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
