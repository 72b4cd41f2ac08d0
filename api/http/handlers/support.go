package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fibear/portal/api/http/presenter"
	"github.com/fibear/portal/pkg/auth"
	"github.com/fibear/portal/pkg/support"
)

type SupportHandler struct {
	useCase support.UseCase
}

func NewSupportHandler(useCase support.UseCase) *SupportHandler {
	return &SupportHandler{useCase: useCase}
}

type submitTicketRequest struct {
	Message string `json:"message"`
}

// Submit files a support ticket for the signed-in user.
// @Summary Submit ticket
// @Tags    support
// @Accept  json
// @Produce json
// @Param   input body submitTicketRequest true "ticket payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /support/tickets [post]
func (h *SupportHandler) Submit(c *fiber.Ctx) error {
	ident := identityFromLocals(c)
	if ident == nil {
		return presenter.Error(c, http.StatusUnauthorized, auth.MessageFor(auth.ErrNoActiveSession))
	}

	var req submitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	t, err := h.useCase.Submit(c.Context(), ident.ID, ident.Email, req.Message)
	if err != nil {
		if errors.Is(err, support.ErrEmptyMessage) {
			return presenter.Error(c, http.StatusBadRequest, "message is required")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to submit ticket")
	}
	return presenter.JSON(c, http.StatusCreated, ticketBody(t))
}

// List returns the signed-in user's tickets, newest first.
// @Summary List tickets
// @Tags    support
// @Produce json
// @Param   limit  query int false "page size"
// @Param   offset query int false "page offset"
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /support/tickets [get]
func (h *SupportHandler) List(c *fiber.Ctx) error {
	ident := identityFromLocals(c)
	if ident == nil {
		return presenter.Error(c, http.StatusUnauthorized, auth.MessageFor(auth.ErrNoActiveSession))
	}

	limit, offset := parseLimitOffset(c, 20)
	items, err := h.useCase.ListForUser(c.Context(), ident.ID, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load tickets")
	}

	out := make([]fiber.Map, 0, len(items))
	for _, t := range items {
		out = append(out, ticketBody(t))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"items": out})
}

func ticketBody(t support.Ticket) fiber.Map {
	return fiber.Map{
		"id":        t.ID.String(),
		"message":   t.Message,
		"status":    string(t.Status),
		"createdAt": t.CreatedAt,
	}
}
