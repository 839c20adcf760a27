package request

import (
	"errors"
	"regexp"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	// Needs lookaheads, which the standard regexp package rejects.
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
)

var (
	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")

	passwordExp  = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	entryCodeExp = regexp.MustCompile(`^[A-Za-z0-9]{4,12}$`)
)

type CreateUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	EntryCode string `json:"entry_code,omitempty"`
}

func (req *CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.EntryCode, validation.Match(entryCodeExp)),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

type UpdateUserRequest struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	EntryCode string `json:"entry_code,omitempty"`
}

func (req *UpdateUserRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(1, 255)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.EntryCode, validation.Match(entryCodeExp)),
	)
	if err != nil {
		return err
	}

	if req.Password != "" {
		return validatePassword(req.Password)
	}

	return nil
}

func validatePassword(password string) error {
	ok, err := passwordExp.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}
