package domain

import "time"

// Entry methods accepted by the check-in endpoints.
const (
	EntryMethodQRCode = "qrcode"
	EntryMethodNFC    = "nfc"
	EntryMethodManual = "manual"
)

func IsValidEntryMethod(method string) bool {
	switch method {
	case EntryMethodQRCode, EntryMethodNFC, EntryMethodManual:
		return true
	}

	return false
}

// EventEntry records a single check-in of a user to an event. Entries are
// created once and never updated; at most one entry exists per user, event
// and calendar day.
type EventEntry struct {
	ID          uint      `json:"id"`
	EventID     uint      `json:"event_id"`
	UserID      uint      `json:"user_id"`
	EntryTime   time.Time `json:"entry_time"`
	EntryMethod string    `json:"entry_method"`
	Notes       string    `json:"notes,omitempty"`
	User        *User     `json:"user,omitempty"`
	Event       *Event    `json:"event,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
