// Package server contains the HTTP handlers for the site's pages and actions.
package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// formField reads a POST form field and reports whether the field was
// present in the submission at all. Edits treat an absent field as
// "keep the stored value" while an empty present field clears it.
func formField(c *fiber.Ctx, name string) (string, bool) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals, ok := form.Value[name]; ok {
			if len(vals) > 0 {
				return vals[0], true
			}
			return "", true
		}
		return "", false
	}
	args := c.Request().PostArgs()
	if args.Has(name) {
		return string(args.Peek(name)), true
	}
	return "", false
}

// resolveGroup maps the submitted group field onto a group ID. An empty
// value means "no group"; anything else must name an existing group.
func (s *Server) resolveGroup(c *fiber.Ctx, raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.New("Select a valid group")
	}
	var group models.Group
	if err := s.db.WithContext(c.Context()).First(&group, uint(id)).Error; err != nil {
		return nil, errors.New("Select a valid group")
	}
	groupID := uint(id)
	return &groupID, nil
}

// postFormContext builds the rendering context shared by the create and
// edit forms: the bound form plus the group choices.
func (s *Server) postFormContext(c *fiber.Ctx, form fiber.Map, isEdit bool) (fiber.Map, error) {
	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"form":    form,
		"groups":  groups,
		"is_edit": isEdit,
	}, nil
}

// PostDetail handles GET /posts/:id/
func (s *Server) PostDetail(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	ctx := c.Context()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return respondForError(c, err)
	}

	authorPostCount, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return respondForError(c, err)
	}

	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return respondForError(c, err)
	}

	detail := fiber.Map{
		"post":              post,
		"author":            post.Author,
		"author_post_count": authorPostCount,
		"comments":          comments,
	}
	// Only logged-in readers get the comment form
	if _, ok := s.sessionUserID(c); ok {
		detail["form"] = emptyForm("text")
	}
	return c.JSON(detail)
}

// PostCreateForm handles GET /create/
func (s *Server) PostCreateForm(c *fiber.Ctx) error {
	context, err := s.postFormContext(c, emptyForm("text", "group"), false)
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(context)
}

// PostCreate handles POST /create/
func (s *Server) PostCreate(c *fiber.Ctx) error {
	userID, _ := s.sessionUserID(c)
	text := strings.TrimSpace(c.FormValue("text"))
	rawGroup := c.FormValue("group")

	formErrors := map[string]string{}
	if text == "" {
		formErrors["text"] = "This field is required"
	}
	groupID, err := s.resolveGroup(c, rawGroup)
	if err != nil {
		formErrors["group"] = err.Error()
	}

	var imageFile *multipart.FileHeader
	imageExt := ""
	if file, fileErr := c.FormFile("image"); fileErr == nil && file != nil {
		imageFile = file
		imageExt, err = checkUpload(file)
		if err != nil {
			formErrors["image"] = "Upload a valid image"
		}
	}

	if len(formErrors) > 0 {
		form := formWithErrors(fiber.Map{"text": text, "group": rawGroup}, formErrors)
		context, ctxErr := s.postFormContext(c, form, false)
		if ctxErr != nil {
			return respondForError(c, ctxErr)
		}
		return c.JSON(context)
	}

	// The file hits the media directory only once the form is known valid,
	// so a rejected submission never leaves an orphan behind.
	imagePath := ""
	if imageFile != nil {
		imagePath, err = s.saveUpload(imageFile, imageExt)
		if err != nil {
			return respondForError(c, err)
		}
	}

	// The author is always the logged-in user, whatever the payload claims
	post := &models.Post{
		Text:     text,
		AuthorID: userID,
		GroupID:  groupID,
		Image:    imagePath,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return respondForError(c, err)
	}

	author, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondForError(c, err)
	}
	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusFound)
}

// PostEditForm handles GET /posts/:id/edit/
func (s *Server) PostEditForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}

	userID, _ := s.sessionUserID(c)
	if post.AuthorID != userID {
		return s.redirectToPost(c, post.ID)
	}

	group := ""
	if post.GroupID != nil {
		group = strconv.FormatUint(uint64(*post.GroupID), 10)
	}
	form := fiber.Map{
		"values": fiber.Map{"text": post.Text, "group": group},
		"errors": fiber.Map{},
	}
	context, err := s.postFormContext(c, form, true)
	if err != nil {
		return respondForError(c, err)
	}
	context["post"] = post
	return c.JSON(context)
}

// PostEdit handles POST /posts/:id/edit/
func (s *Server) PostEdit(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}

	// Someone else's post is not an error, the client is just sent back
	// to the detail page with nothing changed.
	userID, _ := s.sessionUserID(c)
	if post.AuthorID != userID {
		return s.redirectToPost(c, post.ID)
	}

	formErrors := map[string]string{}

	text := post.Text
	if raw, present := formField(c, "text"); present {
		text = strings.TrimSpace(raw)
		if text == "" {
			formErrors["text"] = "This field is required"
		}
	}

	groupID := post.GroupID
	rawGroup := ""
	if raw, present := formField(c, "group"); present {
		rawGroup = raw
		groupID, err = s.resolveGroup(c, raw)
		if err != nil {
			formErrors["group"] = err.Error()
		}
	} else if post.GroupID != nil {
		rawGroup = strconv.FormatUint(uint64(*post.GroupID), 10)
	}

	var imageFile *multipart.FileHeader
	imageExt := ""
	if file, fileErr := c.FormFile("image"); fileErr == nil && file != nil {
		imageFile = file
		imageExt, err = checkUpload(file)
		if err != nil {
			formErrors["image"] = "Upload a valid image"
		}
	}

	if len(formErrors) > 0 {
		form := formWithErrors(fiber.Map{"text": text, "group": rawGroup}, formErrors)
		context, ctxErr := s.postFormContext(c, form, true)
		if ctxErr != nil {
			return respondForError(c, ctxErr)
		}
		context["post"] = post
		return c.JSON(context)
	}

	image := post.Image
	if imageFile != nil {
		image, err = s.saveUpload(imageFile, imageExt)
		if err != nil {
			return respondForError(c, err)
		}
	}

	post.Text = text
	post.GroupID = groupID
	post.Image = image
	if err := s.postRepo.Update(c.Context(), post); err != nil {
		return respondForError(c, err)
	}
	return s.redirectToPost(c, post.ID)
}

func (s *Server) redirectToPost(c *fiber.Ctx, id uint) error {
	return c.Redirect(fmt.Sprintf("/posts/%d/", id), fiber.StatusFound)
}
