package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fibear/portal/api/http/presenter"
	"github.com/fibear/portal/pkg/auth"
)

type AccountHandler struct {
	flow auth.FlowUseCase
}

func NewAccountHandler(flow auth.FlowUseCase) *AccountHandler {
	return &AccountHandler{flow: flow}
}

// Profile returns the signed-in identity.
// @Summary Current profile
// @Tags    account
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /account [get]
func (h *AccountHandler) Profile(c *fiber.Ctx) error {
	ident := identityFromLocals(c)
	if ident == nil {
		return presenter.Error(c, http.StatusUnauthorized, auth.MessageFor(auth.ErrNoActiveSession))
	}
	return presenter.JSON(c, http.StatusOK, identityBody(*ident))
}

type updateNameRequest struct {
	DisplayName string `json:"displayName"`
}

// UpdateName changes the display name on the account and the cached session.
// @Summary Update display name
// @Tags    account
// @Accept  json
// @Produce json
// @Param   input body updateNameRequest true "new display name"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /account/name [put]
func (h *AccountHandler) UpdateName(c *fiber.Ctx) error {
	var req updateNameRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	res, err := h.flow.SubmitProfileEdit(c.Context(), req.DisplayName)
	if err != nil {
		return flowError(c, res, err)
	}
	return presenter.JSON(c, http.StatusOK, flowBody(res))
}
