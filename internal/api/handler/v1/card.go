package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrada-events/checkin-api/internal/api/handler/v1/request"
	"github.com/entrada-events/checkin-api/internal/api/handler/v1/response"
	"github.com/entrada-events/checkin-api/internal/domain"
	"github.com/entrada-events/checkin-api/internal/service"
)

type CardService interface {
	CreateCard(ctx context.Context, card domain.NfcCard) (domain.NfcCard, error)
	GetCard(ctx context.Context, id uint) (domain.NfcCard, error)
	ListCards(ctx context.Context) ([]domain.NfcCard, error)
	VerifyTag(ctx context.Context, tag string) (domain.NfcCard, error)
	UpdateCard(ctx context.Context, card domain.NfcCard) (domain.NfcCard, error)
	DeleteCard(ctx context.Context, id uint) error
}

type CardHandler struct {
	svc CardService
}

func NewCardHandler(svc CardService) *CardHandler {
	return &CardHandler{
		svc: svc,
	}
}

// HandleVerifyNfc godoc
// @Summary      Verify an NFC tag
// @Description  Reports whether the tag string belongs to a registered card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        request  body      request.VerifyNfcRequest  true  "request body"
// @Success      200      {object}  response.VerifyNfcResponse
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /verify-nfc [post]
func (h *CardHandler) HandleVerifyNfc(ctx *gin.Context) {
	var req request.VerifyNfcRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		return
	}

	card, err := h.svc.VerifyTag(ctx.Request.Context(), req.NfcTag)
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			response.RenderErr(ctx, response.ErrNotFoundMessage("NFC card not found or not registered"))
			return
		}

		err = fmt.Errorf("v1.HandleVerifyNfc -> h.svc.VerifyTag -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.VerifyNfcResponse{
		Status:      "success",
		Message:     "NFC card found and verified",
		CardDetails: card,
	})
}

// HandleListCards godoc
// @Summary      List NFC cards
// @Tags         cards
// @Produce      json
// @Success      200  {array}   domain.NfcCard
// @Failure      500  {object}  response.Err
// @Router       /cards [get]
func (h *CardHandler) HandleListCards(ctx *gin.Context) {
	cards, err := h.svc.ListCards(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListCards -> h.svc.ListCards -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, cards)
}

// HandleCreateCard godoc
// @Summary      Register an NFC card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCardRequest  true  "request body"
// @Success      201      {object}  domain.NfcCard
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /cards [post]
func (h *CardHandler) HandleCreateCard(ctx *gin.Context) {
	var req request.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		return
	}

	card, err := h.svc.CreateCard(ctx.Request.Context(), domain.NfcCard{
		NfcTag:  req.NfcTag,
		Details: req.Details,
	})
	if err != nil {
		if errors.Is(err, service.ErrCardTagExists) {
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateCard -> h.svc.CreateCard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, card)
}

// HandleGetCard godoc
// @Summary      Get an NFC card
// @Tags         cards
// @Produce      json
// @Param        cardID  path      int  true  "card ID"
// @Success      200     {object}  domain.NfcCard
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /cards/{cardID} [get]
func (h *CardHandler) HandleGetCard(ctx *gin.Context) {
	cardID, err := parseIDParam(ctx, "cardID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	card, err := h.svc.GetCard(ctx.Request.Context(), cardID)
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("card", "ID", cardID))
			return
		}

		err = fmt.Errorf("v1.HandleGetCard -> h.svc.GetCard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, card)
}

// HandleUpdateCard godoc
// @Summary      Update an NFC card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardID   path      int                        true  "card ID"
// @Param        request  body      request.UpdateCardRequest  true  "request body"
// @Success      200      {object}  domain.NfcCard
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /cards/{cardID} [put]
func (h *CardHandler) HandleUpdateCard(ctx *gin.Context) {
	cardID, err := parseIDParam(ctx, "cardID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		return
	}

	card, err := h.svc.UpdateCard(ctx.Request.Context(), domain.NfcCard{
		ID:      cardID,
		NfcTag:  req.NfcTag,
		Details: req.Details,
	})
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("card", "ID", cardID))
			return
		}
		if errors.Is(err, service.ErrCardTagExists) {
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateCard -> h.svc.UpdateCard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, card)
}

// HandleDeleteCard godoc
// @Summary      Delete an NFC card
// @Tags         cards
// @Produce      json
// @Param        cardID  path  int  true  "card ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /cards/{cardID} [delete]
func (h *CardHandler) HandleDeleteCard(ctx *gin.Context) {
	cardID, err := parseIDParam(ctx, "cardID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteCard(ctx.Request.Context(), cardID); err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("card", "ID", cardID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteCard -> h.svc.DeleteCard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
