package repository

import (
	"context"
	"fmt"

	"github.com/entrada-events/checkin-api/internal/domain"
	"github.com/entrada-events/checkin-api/internal/repository/dao"
)

var (
	ErrCardNotFound  = dao.ErrCardNotFound
	ErrCardTagExists = dao.ErrCardTagExists
)

type CardDAO interface {
	Insert(ctx context.Context, card dao.NfcCard) (dao.NfcCard, error)
	FindByID(ctx context.Context, id uint) (dao.NfcCard, error)
	FindByTag(ctx context.Context, tag string) (dao.NfcCard, error)
	FindAll(ctx context.Context) ([]dao.NfcCard, error)
	Update(ctx context.Context, card dao.NfcCard) (dao.NfcCard, error)
	Delete(ctx context.Context, id uint) error
}

type CardRepository struct {
	dao CardDAO
}

func NewCardRepository(dao CardDAO) *CardRepository {
	return &CardRepository{
		dao: dao,
	}
}

func (r *CardRepository) Create(ctx context.Context, card domain.NfcCard) (domain.NfcCard, error) {
	created, err := r.dao.Insert(ctx, dao.NfcCard{
		NfcTag:  card.NfcTag,
		Details: card.Details,
	})
	if err != nil {
		return domain.NfcCard{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CardRepository) FindByID(ctx context.Context, id uint) (domain.NfcCard, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.NfcCard{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CardRepository) FindByTag(ctx context.Context, tag string) (domain.NfcCard, error) {
	found, err := r.dao.FindByTag(ctx, tag)
	if err != nil {
		return domain.NfcCard{}, fmt.Errorf("r.dao.FindByTag -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CardRepository) FindAll(ctx context.Context) ([]domain.NfcCard, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	cards := make([]domain.NfcCard, 0, len(found))
	for _, c := range found {
		cards = append(cards, r.daoToDomain(c))
	}

	return cards, nil
}

func (r *CardRepository) Update(ctx context.Context, card domain.NfcCard) (domain.NfcCard, error) {
	updated, err := r.dao.Update(ctx, dao.NfcCard{
		ID:      card.ID,
		NfcTag:  card.NfcTag,
		Details: card.Details,
	})
	if err != nil {
		return domain.NfcCard{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *CardRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *CardRepository) daoToDomain(c dao.NfcCard) domain.NfcCard {
	return domain.NfcCard{
		ID:        c.ID,
		NfcTag:    c.NfcTag,
		Details:   c.Details,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
