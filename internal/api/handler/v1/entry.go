package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/entrada-events/checkin-api/internal/api/handler/v1/request"
	"github.com/entrada-events/checkin-api/internal/api/handler/v1/response"
	"github.com/entrada-events/checkin-api/internal/domain"
	"github.com/entrada-events/checkin-api/internal/service"
)

type EntryService interface {
	CheckIn(ctx context.Context, eventID uint, identifier, method, notes string) (domain.EventEntry, error)
	CheckInByCode(ctx context.Context, code, method string) (domain.EventEntry, error)
	ListEntries(ctx context.Context) ([]domain.EventEntry, error)
	ListEventEntries(ctx context.Context, eventID uint) ([]domain.EventEntry, error)
}

type EntryHandler struct {
	svc EntryService
}

func NewEntryHandler(svc EntryService) *EntryHandler {
	return &EntryHandler{
		svc: svc,
	}
}

// HandleCreateEntry godoc
// @Summary      Check a user in to an event
// @Description  Resolves the user identifier (id, email or entry code) and records an entry for the given event
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEntryRequest  true  "request body"
// @Success      201      {object}  domain.EventEntry
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /entries [post]
func (h *EntryHandler) HandleCreateEntry(ctx *gin.Context) {
	var req request.CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		return
	}

	entry, err := h.svc.CheckIn(ctx.Request.Context(), req.EventID, req.UserIdentifier, req.EntryMethod, req.Notes)
	if err != nil {
		var dup *service.DuplicateCheckInError
		if errors.As(err, &dup) {
			response.RenderErr(ctx, response.ErrDuplicateCheckIn(dup.Entry))
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFoundMessage("User not found"))
			return
		}
		if errors.Is(err, service.ErrEventNotFound) || errors.Is(err, service.ErrInvalidEntryMethod) {
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateEntry -> h.svc.CheckIn -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

// HandleCheckInByCode godoc
// @Summary      Check in by entry code
// @Description  Matches the code case-insensitively and records an entry against the currently active event
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        request  body      request.CheckInByCodeRequest  true  "request body"
// @Success      201      {object}  domain.EventEntry
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /check-in [post]
func (h *EntryHandler) HandleCheckInByCode(ctx *gin.Context) {
	var req request.CheckInByCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		return
	}

	entry, err := h.svc.CheckInByCode(ctx.Request.Context(), req.Code, req.EntryMethod)
	if err != nil {
		var dup *service.DuplicateCheckInError
		if errors.As(err, &dup) {
			response.RenderErr(ctx, response.ErrDuplicateCheckIn(dup.Entry))
			return
		}
		if errors.Is(err, service.ErrInvalidEntryCode) {
			response.RenderErr(ctx, response.ErrNotFoundMessage("Invalid entry code"))
			return
		}
		if errors.Is(err, service.ErrNoActiveEvent) {
			response.RenderErr(ctx, response.ErrNotFoundMessage("No active event"))
			return
		}
		if errors.Is(err, service.ErrInvalidEntryMethod) {
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
			return
		}

		err = fmt.Errorf("v1.HandleCheckInByCode -> h.svc.CheckInByCode -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

// HandleListEntries godoc
// @Summary      List all entries
// @Description  Entries are returned newest first with user and event attached
// @Tags         entries
// @Produce      json
// @Success      200  {array}   domain.EventEntry
// @Failure      500  {object}  response.Err
// @Router       /entries [get]
func (h *EntryHandler) HandleListEntries(ctx *gin.Context) {
	entries, err := h.svc.ListEntries(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEntries -> h.svc.ListEntries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleListEventEntries godoc
// @Summary      List entries for one event
// @Tags         entries
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {array}   domain.EventEntry
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/entries [get]
func (h *EntryHandler) HandleListEventEntries(ctx *gin.Context) {
	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %v", ctx.Param("eventID"))))
		return
	}

	entries, err := h.svc.ListEventEntries(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleListEventEntries -> h.svc.ListEventEntries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
