package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/entrada-events/checkin-api/internal/domain"
)

type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`

	// Entry is attached on duplicate check-in conflicts so the caller can
	// reconcile against the existing record.
	Entry *domain.EventEntry `json:"entry,omitempty"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.Int("status", err.StatusCode),
			zap.String("error", err.Message),
		)

		// Never leak internals to the client.
		err = &Err{
			StatusCode: err.StatusCode,
			Message:    "something went wrong",
		}
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
	}
}

func ErrUnprocessableEntity(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    err.Error(),
	}
}

func ErrNotFound(resource, key string, value any) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%v with %v (%v) not found", resource, key, value),
	}
}

func ErrNotFoundMessage(message string) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func ErrDuplicateCheckIn(entry domain.EventEntry) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Message:    "User already checked in to this event today",
		Entry:      &entry,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Message:    err.Error(),
	}
}
