package domain

import "time"

type User struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	EntryCode string     `json:"entry_code"`
	EntryTime *time.Time `json:"entry_time,omitempty"` // legacy single-event check-in stamp
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
