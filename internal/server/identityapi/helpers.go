package identityapi

import (
	"errors"
	"strings"

	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Page-number widgets render the first and last pagesWindowEdge pages plus
// pagesWindowAround pages on each side of the current one.
const (
	pagesWindowEdge   = 2
	pagesWindowAround = 2
)

// parsePage extracts page/per_page query parameters, clamped to the
// configured defaults.
func (s *Server) parsePage(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("per_page", 0)
	return pagination.Clamp(page, pageSize, s.config.PageSizeDefault, s.config.PageSizeMax)
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "targetId" -> "target ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		return strings.ToLower(param[:len(param)-2]) + " ID"
	}
	return param
}

// respondSuccess writes the standard success envelope.
func respondSuccess(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// respondPage writes the success envelope plus pagination metadata,
// including the page numbers a paging widget should render.
func respondPage[T any](c *fiber.Ctx, items []T, page, pageSize int, total int64) error {
	p := pagination.NewPage(items, page, pageSize, total)
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   p.Items,
		"pagination_meta": fiber.Map{
			"page":          p.Meta.Page,
			"pages":         p.Meta.Pages,
			"total":         p.Meta.Total,
			"visible_pages": pagination.VisiblePages(p.Meta.Pages, p.Meta.Page, pagesWindowEdge, pagesWindowAround),
		},
	})
}

// actorID returns the authenticated user's ID; AuthRequired guarantees it.
func actorID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
