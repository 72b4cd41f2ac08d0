package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fibear/portal/api/http/presenter"
	"github.com/fibear/portal/pkg/news"
)

type NewsHandler struct {
	useCase news.UseCase
}

func NewNewsHandler(useCase news.UseCase) *NewsHandler {
	return &NewsHandler{useCase: useCase}
}

// Latest returns the provider-news feed for the home screen.
// @Summary Latest news
// @Tags    news
// @Produce json
// @Param   limit query int false "max items"
// @Success 200 {object} map[string]any
// @Router  /news [get]
func (h *NewsHandler) Latest(c *fiber.Ctx) error {
	limit := 0
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	items, err := h.useCase.Latest(c.Context(), limit)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load news")
	}

	out := make([]fiber.Map, 0, len(items))
	for _, it := range items {
		out = append(out, fiber.Map{
			"id":          it.ID.String(),
			"title":       it.Title,
			"source":      it.Source,
			"url":         it.URL,
			"publishedAt": it.PublishedAt,
		})
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"items": out})
}
