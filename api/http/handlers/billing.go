package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fibear/portal/api/http/presenter"
	"github.com/fibear/portal/pkg/billing"
)

type BillingHandler struct {
	useCase billing.UseCase
}

func NewBillingHandler(useCase billing.UseCase) *BillingHandler {
	return &BillingHandler{useCase: useCase}
}

// Current returns the open statement for the active plan.
// @Summary Current statement
// @Tags    billing
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /billing/current [get]
func (h *BillingHandler) Current(c *fiber.Ctx) error {
	s, err := h.useCase.Current(c.Context())
	if err != nil {
		if errors.Is(err, billing.ErrNoOpenStatement) {
			return presenter.Error(c, http.StatusNotFound, "no open statement")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load statement")
	}
	return presenter.JSON(c, http.StatusOK, statementBody(s))
}

// History lists past statements, newest first.
// @Summary Statement history
// @Tags    billing
// @Produce json
// @Param   limit  query int false "page size"
// @Param   offset query int false "page offset"
// @Success 200 {object} map[string]any
// @Router  /billing/history [get]
func (h *BillingHandler) History(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 20)
	items, err := h.useCase.History(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load statements")
	}

	out := make([]fiber.Map, 0, len(items))
	for _, s := range items {
		out = append(out, statementBody(s))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"items": out})
}

func statementBody(s billing.Statement) fiber.Map {
	return fiber.Map{
		"id":             s.ID.String(),
		"plan":           s.Plan,
		"cycleDay":       s.CycleDay,
		"amountCentavos": s.AmountCentavos,
		"currency":       s.Currency,
		"dueDate":        s.DueDate.Format(time.DateOnly),
		"status":         string(s.Status),
	}
}
