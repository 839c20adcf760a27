package service

import (
	"context"
	"fmt"

	"github.com/entrada-events/checkin-api/internal/domain"
	"github.com/entrada-events/checkin-api/internal/repository"
)

var (
	ErrCardNotFound  = repository.ErrCardNotFound
	ErrCardTagExists = repository.ErrCardTagExists
)

type CardRepository interface {
	Create(ctx context.Context, card domain.NfcCard) (domain.NfcCard, error)
	FindByID(ctx context.Context, id uint) (domain.NfcCard, error)
	FindByTag(ctx context.Context, tag string) (domain.NfcCard, error)
	FindAll(ctx context.Context) ([]domain.NfcCard, error)
	Update(ctx context.Context, card domain.NfcCard) (domain.NfcCard, error)
	Delete(ctx context.Context, id uint) error
}

type CardService struct {
	repo CardRepository
}

func NewCardService(repo CardRepository) *CardService {
	return &CardService{
		repo: repo,
	}
}

func (s *CardService) CreateCard(ctx context.Context, card domain.NfcCard) (domain.NfcCard, error) {
	created, err := s.repo.Create(ctx, card)
	if err != nil {
		return domain.NfcCard{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CardService) GetCard(ctx context.Context, id uint) (domain.NfcCard, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.NfcCard{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return card, nil
}

func (s *CardService) ListCards(ctx context.Context) ([]domain.NfcCard, error) {
	cards, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return cards, nil
}

// VerifyTag reports whether the tag string belongs to a registered card.
// Hardware communication is out of scope; this is presence-only.
func (s *CardService) VerifyTag(ctx context.Context, tag string) (domain.NfcCard, error) {
	card, err := s.repo.FindByTag(ctx, tag)
	if err != nil {
		return domain.NfcCard{}, fmt.Errorf("s.repo.FindByTag -> %w", err)
	}

	return card, nil
}

func (s *CardService) UpdateCard(ctx context.Context, card domain.NfcCard) (domain.NfcCard, error) {
	current, err := s.repo.FindByID(ctx, card.ID)
	if err != nil {
		return domain.NfcCard{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if card.NfcTag != "" {
		current.NfcTag = card.NfcTag
	}
	if card.Details != "" {
		current.Details = card.Details
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return domain.NfcCard{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CardService) DeleteCard(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
