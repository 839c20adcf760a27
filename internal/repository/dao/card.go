package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCardNotFound  = errors.New("nfc card not found")
	ErrCardTagExists = errors.New("a card with this nfc tag already exists")
)

type NfcCard struct {
	ID uint `gorm:"primaryKey"`

	NfcTag  string `gorm:"unique;not null"`
	Details string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CardDAO struct {
	db *gorm.DB
}

func NewCardDAO(db *gorm.DB) *CardDAO {
	return &CardDAO{
		db: db,
	}
}

func (d *CardDAO) Insert(ctx context.Context, card NfcCard) (NfcCard, error) {
	result := d.db.WithContext(ctx).Create(&card)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return NfcCard{}, ErrCardTagExists
		}

		return NfcCard{}, result.Error
	}

	return card, nil
}

func (d *CardDAO) FindByID(ctx context.Context, id uint) (NfcCard, error) {
	var card NfcCard

	result := d.db.WithContext(ctx).First(&card, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return NfcCard{}, ErrCardNotFound
		}

		return NfcCard{}, result.Error
	}

	return card, nil
}

func (d *CardDAO) FindByTag(ctx context.Context, tag string) (NfcCard, error) {
	var card NfcCard

	result := d.db.WithContext(ctx).First(&card, "nfc_tag = ?", tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return NfcCard{}, ErrCardNotFound
		}

		return NfcCard{}, result.Error
	}

	return card, nil
}

func (d *CardDAO) FindAll(ctx context.Context) ([]NfcCard, error) {
	var cards []NfcCard

	result := d.db.WithContext(ctx).Order("id asc").Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}

	return cards, nil
}

func (d *CardDAO) Update(ctx context.Context, card NfcCard) (NfcCard, error) {
	result := d.db.WithContext(ctx).Model(&NfcCard{ID: card.ID}).Updates(map[string]any{
		"nfc_tag": card.NfcTag,
		"details": card.Details,
	})
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return NfcCard{}, ErrCardTagExists
		}

		return NfcCard{}, result.Error
	}
	if result.RowsAffected == 0 {
		return NfcCard{}, ErrCardNotFound
	}

	return d.FindByID(ctx, card.ID)
}

func (d *CardDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&NfcCard{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}

	return nil
}
