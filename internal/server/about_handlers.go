// Package server contains the HTTP handlers for the site's pages and actions.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// AboutAuthor handles GET /about/author/
func (s *Server) AboutAuthor(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title": "About the author",
		"text":  "This site is a personal blogging platform run by its author.",
	})
}

// AboutTech handles GET /about/tech/
func (s *Server) AboutTech(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title": "Technologies",
		"text":  "Built with Go, Fiber, GORM, PostgreSQL and Redis.",
	})
}
