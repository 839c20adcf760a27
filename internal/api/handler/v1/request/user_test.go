package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequestValidate(t *testing.T) {
	t.Parallel()

	valid := CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "passw0rd1",
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("valid request with entry code passes", func(t *testing.T) {
		req := valid
		req.EntryCode = "ab12cd34"
		assert.NoError(t, req.Validate())
	})

	t.Run("bad email fails", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("password without digits fails", func(t *testing.T) {
		req := valid
		req.Password = "passwords"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without letters fails", func(t *testing.T) {
		req := valid
		req.Password = "123456789"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("short password fails", func(t *testing.T) {
		req := valid
		req.Password = "pw1"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("entry code with punctuation fails", func(t *testing.T) {
		req := valid
		req.EntryCode = "AB-12!"
		assert.Error(t, req.Validate())
	})
}

func TestCreateEntryRequestValidate(t *testing.T) {
	t.Parallel()

	valid := CreateEntryRequest{
		EventID:        3,
		UserIdentifier: "alice@example.com",
		EntryMethod:    "qrcode",
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("zero event ID fails", func(t *testing.T) {
		req := valid
		req.EventID = 0
		assert.Error(t, req.Validate())
	})

	t.Run("missing identifier fails", func(t *testing.T) {
		req := valid
		req.UserIdentifier = ""
		assert.Error(t, req.Validate())
	})

	t.Run("unknown entry method fails", func(t *testing.T) {
		req := valid
		req.EntryMethod = "carrier-pigeon"
		assert.Error(t, req.Validate())
	})
}
