package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errEndDateBeforeStart = errors.New("end_date must be after start_date")

type CreateEventRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Location    string     `json:"location,omitempty"`
	IsActive    bool       `json:"is_active"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.Location, validation.Length(0, 255)),
	)
	if err != nil {
		return err
	}

	if req.EndDate != nil && !req.EndDate.After(req.StartDate) {
		return errEndDateBeforeStart
	}

	return nil
}

type UpdateEventRequest struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Location    string     `json:"location,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

func (req *UpdateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(1, 255)),
		validation.Field(&req.Location, validation.Length(0, 255)),
	)
	if err != nil {
		return err
	}

	if req.StartDate != nil && req.EndDate != nil && !req.EndDate.After(*req.StartDate) {
		return errEndDateBeforeStart
	}

	return nil
}
