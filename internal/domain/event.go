package domain

import "time"

// EventUpdate carries a partial update of an event. Nil and empty fields are
// left unchanged.
type EventUpdate struct {
	ID          uint
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Location    string
	IsActive    *bool
}

type Event struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     *time.Time   `json:"end_date,omitempty"`
	Location    string       `json:"location,omitempty"`
	IsActive    bool         `json:"is_active"`
	Entries     []EventEntry `json:"entries,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
