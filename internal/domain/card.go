package domain

import "time"

// NfcCard is a registered NFC tag. Cards are only used for tag-presence
// verification; attendance itself is tracked by EventEntry.
type NfcCard struct {
	ID        uint      `json:"id"`
	NfcTag    string    `json:"nfc_tag"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
