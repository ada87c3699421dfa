// Package server contains the HTTP handlers for the site's pages and actions.
package server

import (
	"quill/internal/cache"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// indexContext is the home page rendering context. It is the unit stored in
// the fragment cache, so the visible post list may lag behind the true data
// for up to the cache window. That staleness is a deliberate trade-off:
// post mutations never touch the cached fragment.
type indexContext struct {
	Posts   []*models.Post  `json:"posts"`
	PageObj pagination.Page `json:"page_obj"`
	Index   bool            `json:"index"`
}

// Index handles GET /
func (s *Server) Index(c *fiber.Ctx) error {
	ctx := c.Context()
	pageNumber := parsePage(c)
	key := cache.FragmentIndexKey(pageNumber)

	var idx indexContext
	found, err := cache.GetJSON(ctx, key, &idx)
	if err == nil && found {
		middleware.FragmentCacheHits.WithLabelValues("hit").Inc()
		return c.JSON(idx)
	}
	middleware.FragmentCacheHits.WithLabelValues("miss").Inc()

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return respondForError(c, err)
	}
	page := s.paginate(c, total)

	posts, err := s.postRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondForError(c, err)
	}

	idx = indexContext{Posts: posts, PageObj: page, Index: true}
	_ = cache.SetJSON(ctx, key, idx, s.config.IndexCacheWindow())

	return c.JSON(idx)
}

// GroupPosts handles GET /group/:slug/
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	slug := c.Params("slug")

	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return respondForError(c, err)
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return respondForError(c, err)
	}
	page := s.paginate(c, total)

	posts, err := s.postRepo.ListByGroup(ctx, group.ID, page.Limit, page.Offset)
	if err != nil {
		return respondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"group":    group,
		"posts":    posts,
		"page_obj": page,
	})
}

// Profile handles GET /profile/:username/
func (s *Server) Profile(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return respondForError(c, err)
	}
	if author == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", username))
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return respondForError(c, err)
	}
	page := s.paginate(c, total)

	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, page.Limit, page.Offset)
	if err != nil {
		return respondForError(c, err)
	}

	// Anonymous viewers are never "following"
	following := false
	if viewerID, ok := s.sessionUserID(c); ok {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return respondForError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"author":    author,
		"posts":     posts,
		"page_obj":  page,
		"following": following,
	})
}

// FollowIndex handles GET /follow/ — posts by authors the user follows.
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, _ := s.sessionUserID(c)

	total, err := s.postRepo.CountFeed(ctx, userID)
	if err != nil {
		return respondForError(c, err)
	}
	page := s.paginate(c, total)

	posts, err := s.postRepo.ListFeed(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return respondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":    posts,
		"page_obj": page,
		"follow":   true,
	})
}
