// Package server contains the HTTP handlers for the site's pages and actions.
package server

import (
	"errors"

	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 404 response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", c.Params(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePage reads the 1-based `page` query parameter, defaulting to 1.
// Out-of-range values are clamped later by the paginator.
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// paginate resolves the requested page over a counted record set.
func (s *Server) paginate(c *fiber.Ctx, totalCount int64) pagination.Page {
	return pagination.New(totalCount, s.config.PageSize).GetPage(parsePage(c))
}

// respondForError maps repository errors onto the page error taxonomy:
// not-found becomes the 404 page, everything else the 500 page.
func respondForError(c *fiber.Ctx, err error) error {
	if models.IsNotFound(err) {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// emptyForm builds the rendering context of an unbound form.
func emptyForm(fields ...string) fiber.Map {
	values := fiber.Map{}
	for _, f := range fields {
		values[f] = ""
	}
	return fiber.Map{"values": values, "errors": fiber.Map{}}
}

// formWithErrors builds the rendering context of a bound form that failed
// validation, preserving the submitted values.
func formWithErrors(values fiber.Map, formErrors map[string]string) fiber.Map {
	errs := fiber.Map{}
	for k, v := range formErrors {
		errs[k] = v
	}
	return fiber.Map{"values": values, "errors": errs}
}
