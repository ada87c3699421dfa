// Package server contains the HTTP handlers for the site's pages and actions.
package server

import (
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ProfileFollow handles POST /profile/:username/follow/
//
// Following is idempotent and following yourself is a no-op; both cases end
// with a redirect to the author's profile.
func (s *Server) ProfileFollow(c *fiber.Ctx) error {
	username := c.Params("username")

	author, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return respondForError(c, err)
	}
	if author == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", username))
	}

	userID, _ := s.sessionUserID(c)
	if userID != author.ID {
		if err := s.followRepo.Follow(c.Context(), userID, author.ID); err != nil {
			return respondForError(c, err)
		}
	}

	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusFound)
}

// ProfileUnfollow handles POST /profile/:username/unfollow/
//
// Unlike following, removing a follow that does not exist is a 404.
func (s *Server) ProfileUnfollow(c *fiber.Ctx) error {
	username := c.Params("username")

	author, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return respondForError(c, err)
	}
	if author == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", username))
	}

	userID, _ := s.sessionUserID(c)
	if err := s.followRepo.Unfollow(c.Context(), userID, author.ID); err != nil {
		return respondForError(c, err)
	}

	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusFound)
}
