package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCardRequest struct {
	NfcTag  string `json:"nfc_tag"`
	Details string `json:"details,omitempty"`
}

func (req *CreateCardRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.NfcTag, validation.Required, validation.Length(1, 255)),
	)
}

type UpdateCardRequest struct {
	NfcTag  string `json:"nfc_tag,omitempty"`
	Details string `json:"details,omitempty"`
}

func (req *UpdateCardRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.NfcTag, validation.Length(1, 255)),
	)
}

type VerifyNfcRequest struct {
	NfcTag string `json:"nfc_tag"`
}

func (req *VerifyNfcRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.NfcTag, validation.Required, validation.Length(1, 255)),
	)
}
