// Package server contains the HTTP handlers for the site's pages and actions.
package server

import (
	"strings"

	"quill/internal/models"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// SignupPage handles GET /auth/signup/
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form": emptyForm("username", "email", "password"),
	})
}

// Signup handles POST /auth/signup/
func (s *Server) Signup(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	formErrors := map[string]string{}
	if err := validation.ValidateUsername(username); err != nil {
		formErrors["username"] = err.Error()
	}
	if err := validation.ValidateEmail(email); err != nil {
		formErrors["email"] = err.Error()
	}
	if err := validation.ValidatePassword(password); err != nil {
		formErrors["password"] = err.Error()
	}
	if len(formErrors) > 0 {
		return c.JSON(fiber.Map{
			"form": formWithErrors(fiber.Map{"username": username, "email": email}, formErrors),
		})
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing == nil {
		existing, err = s.userRepo.GetByUsername(c.Context(), username)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}
	if existing != nil {
		formErrors["username"] = "An account with this username or email already exists"
		return c.JSON(fiber.Map{
			"form": formWithErrors(fiber.Map{"username": username, "email": email}, formErrors),
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	return c.Redirect("/", fiber.StatusFound)
}

// LoginPage handles GET /auth/login/
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form": emptyForm("username", "password"),
		"next": c.Query("next"),
	})
}

// Login handles POST /auth/login/
func (s *Server) Login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	user, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return c.JSON(fiber.Map{
			"form": formWithErrors(fiber.Map{"username": username},
				map[string]string{"__all__": "Invalid username or password"}),
			"next": c.Query("next"),
		})
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	next := sanitizeNext(c.FormValue("next", c.Query("next")))
	return c.Redirect(next, fiber.StatusFound)
}

// Logout handles POST /auth/logout/
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusFound)
}

// sanitizeNext keeps post-login redirects on-site. Anything that is not a
// local absolute path falls back to the index.
func sanitizeNext(next string) string {
	if next == "" || next[0] != '/' || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
