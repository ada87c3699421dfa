// Package server contains the HTTP handlers for the site's pages and actions.
package server

import (
	"strings"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /posts/:id/comment/
//
// A blank submission is dropped without complaint; either way the client
// lands back on the post's detail page.
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}

	text := strings.TrimSpace(c.FormValue("text"))
	if text != "" {
		userID, _ := s.sessionUserID(c)
		postID := post.ID
		comment := &models.Comment{
			Text:     text,
			PostID:   &postID,
			AuthorID: userID,
		}
		if err := s.commentRepo.Create(c.Context(), comment); err != nil {
			return respondForError(c, err)
		}
	}

	return s.redirectToPost(c, post.ID)
}
