package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/entrada-events/checkin-api/internal/domain"
	"github.com/entrada-events/checkin-api/internal/repository/dao"
)

var (
	ErrUserEmailExists     = dao.ErrUserEmailExists
	ErrUserEntryCodeExists = dao.ErrUserEntryCodeExists
	ErrUserNotFound        = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByEntryCode(ctx context.Context, code string) (dao.User, error)
	List(ctx context.Context, offset, limit int) ([]dao.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	TouchEntryTime(ctx context.Context, id uint, at time.Time) (dao.User, error)
	Delete(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		EntryCode: user.EntryCode,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEntryCode(ctx context.Context, code string) (domain.User, error) {
	found, err := r.dao.FindByEntryCode(ctx, strings.ToUpper(code))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEntryCode -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// FindByIdentifier resolves a free-form identifier with a deterministic
// precedence: numeric id first, then email, then entry code. Each step falls
// through to the next on a miss so that an all-digit entry code still
// resolves.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	if id, err := strconv.ParseUint(identifier, 10, 32); err == nil {
		found, err := r.dao.FindByID(ctx, uint(id))
		if err == nil {
			return r.daoToDomain(found), nil
		}
		if !errors.Is(err, dao.ErrUserNotFound) {
			return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
		}
	}

	if strings.Contains(identifier, "@") {
		found, err := r.dao.FindByEmail(ctx, identifier)
		if err == nil {
			return r.daoToDomain(found), nil
		}
		if !errors.Is(err, dao.ErrUserNotFound) {
			return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
		}
	}

	found, err := r.dao.FindByEntryCode(ctx, strings.ToUpper(identifier))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEntryCode -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	found, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	total, err := r.dao.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	users := make([]domain.User, 0, len(found))
	for _, u := range found {
		users = append(users, r.daoToDomain(u))
	}

	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, dao.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		EntryCode: user.EntryCode,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) TouchEntryTime(ctx context.Context, id uint, at time.Time) (domain.User, error) {
	updated, err := r.dao.TouchEntryTime(ctx, id, at)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.TouchEntryTime -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		EntryCode: u.EntryCode,
		EntryTime: u.EntryTime,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
