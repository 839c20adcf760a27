package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNoActiveEvent = errors.New("no active event")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Description string
	StartDate   time.Time `gorm:"not null"`
	EndDate     *time.Time
	Location    string
	IsActive    bool `gorm:"not null;default:false"`

	Entries []EventEntry `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

// Insert creates the event. When the event is flagged active, every other
// event is deactivated in the same transaction so that at most one event is
// active at any time.
func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if event.IsActive {
			if err := deactivateOthers(tx, 0); err != nil {
				return err
			}
		}

		return tx.Create(&event).Error
	})
	if err != nil {
		return Event{}, err
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindByIDWithEntries eagerly loads the event's entries and their users,
// newest entry first.
func (d *EventDAO) FindByIDWithEntries(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("event_entries.entry_time desc")
		}).
		Preload("Entries.User").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("event_entries.entry_time desc")
		}).
		Preload("Entries.User").
		Order("start_date desc").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// FindActive returns the currently active event. Ordering by start_date
// breaks ties defensively should more than one row ever be flagged active.
func (d *EventDAO) FindActive(ctx context.Context) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("start_date desc").
		First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrNoActiveEvent
		}

		return Event{}, result.Error
	}

	return event, nil
}

// Update persists the event. Activating an event deactivates all others in
// the same transaction.
func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if event.IsActive {
			if err := deactivateOthers(tx, event.ID); err != nil {
				return err
			}
		}

		result := tx.Model(&Event{ID: event.ID}).Updates(map[string]any{
			"name":        event.Name,
			"description": event.Description,
			"start_date":  event.StartDate,
			"end_date":    event.EndDate,
			"location":    event.Location,
			"is_active":   event.IsActive,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return nil
	})
	if err != nil {
		return Event{}, err
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func deactivateOthers(tx *gorm.DB, exceptID uint) error {
	return tx.Model(&Event{}).
		Where("is_active = ? AND id <> ?", true, exceptID).
		Update("is_active", false).Error
}
