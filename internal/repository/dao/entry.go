package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEntryNotFound     = errors.New("event entry not found")
	ErrEntryExistsForDay = errors.New("an entry for this user, event and day already exists")
)

type EventEntry struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"not null;uniqueIndex:idx_event_entries_event_user_day"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_event_entries_event_user_day"`

	EntryTime time.Time `gorm:"not null"`

	// EntryDay is entry_time truncated to the server-local calendar day.
	// The composite unique index enforces the same-day dedup at the store
	// level, backstopping the application-level check.
	EntryDay time.Time `gorm:"type:date;not null;uniqueIndex:idx_event_entries_event_user_day"`

	EntryMethod string `gorm:"not null;default:manual"`
	Notes       string

	Event Event `gorm:"constraint:OnDelete:CASCADE"`
	User  User  `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EntryDAO struct {
	db *gorm.DB
}

func NewEntryDAO(db *gorm.DB) *EntryDAO {
	return &EntryDAO{
		db: db,
	}
}

// Insert persists the entry, deriving entry_day from entry_time. A unique
// violation on the (event, user, day) index is reported as
// ErrEntryExistsForDay.
func (d *EntryDAO) Insert(ctx context.Context, entry EventEntry) (EventEntry, error) {
	entry.EntryDay = DayOf(entry.EntryTime)

	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.Message, `"idx_event_entries_event_user_day"`) {
			return EventEntry{}, ErrEntryExistsForDay
		}

		return EventEntry{}, result.Error
	}

	return d.FindByID(ctx, entry.ID)
}

func (d *EntryDAO) FindByID(ctx context.Context, id uint) (EventEntry, error) {
	var entry EventEntry

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventEntry{}, ErrEntryNotFound
		}

		return EventEntry{}, result.Error
	}

	return entry, nil
}

// FindForDay returns the entry for the given user, event and calendar day,
// with user and event attached.
func (d *EntryDAO) FindForDay(ctx context.Context, eventID, userID uint, day time.Time) (EventEntry, error) {
	var entry EventEntry

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Where("event_id = ? AND user_id = ? AND entry_day = ?", eventID, userID, DayOf(day).Format("2006-01-02")).
		First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventEntry{}, ErrEntryNotFound
		}

		return EventEntry{}, result.Error
	}

	return entry, nil
}

func (d *EntryDAO) FindAll(ctx context.Context) ([]EventEntry, error) {
	var entries []EventEntry

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Order("entry_time desc").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *EntryDAO) FindByEventID(ctx context.Context, eventID uint) ([]EventEntry, error) {
	var entries []EventEntry

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("entry_time desc").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// DayOf truncates t to its calendar day in t's location.
func DayOf(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
