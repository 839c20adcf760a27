package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/entrada-events/checkin-api/internal/domain"
)

type CreateEntryRequest struct {
	EventID        uint   `json:"event_id"`
	UserIdentifier string `json:"user_identifier"`
	EntryMethod    string `json:"entry_method"`
	Notes          string `json:"notes,omitempty"`
}

func (req *CreateEntryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.UserIdentifier, validation.Required),
		validation.Field(&req.EntryMethod, validation.Required,
			validation.In(domain.EntryMethodQRCode, domain.EntryMethodNFC, domain.EntryMethodManual)),
	)
}

type CheckInByCodeRequest struct {
	Code        string `json:"code"`
	EntryMethod string `json:"entry_method"`
}

func (req *CheckInByCodeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required),
		validation.Field(&req.EntryMethod, validation.Required,
			validation.In(domain.EntryMethodQRCode, domain.EntryMethodNFC, domain.EntryMethodManual)),
	)
}
