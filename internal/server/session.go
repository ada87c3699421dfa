// Package server contains the HTTP handlers for the site's pages and actions.
package server

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"quill/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionLifetime = 7 * 24 * time.Hour

// generateToken issues a signed session token for the given user.
func (s *Server) generateToken(userID uint, username string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      "quill",
		"jti":      uuid.NewString(),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(sessionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parseSessionToken validates a session token and returns the user ID.
func (s *Server) parseSessionToken(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "quill" {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// setSessionCookie attaches a fresh session cookie to the response.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SessionMiddleware resolves the session cookie into c.Locals("userID")
// without enforcing authentication. Handlers that tolerate anonymous viewers
// read the optional user from locals.
func (s *Server) SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cookie := c.Cookies(s.config.SessionCookie); cookie != "" {
			if userID, ok := s.parseSessionToken(cookie); ok {
				c.Locals("userID", userID)
				// Runs after ContextMiddleware, so the user id has to be
				// pushed into the request context here for the logger.
				c.SetUserContext(context.WithValue(
					c.UserContext(), middleware.UserIDKey, userID))
			}
		}
		return c.Next()
	}
}

// RequireLogin guards a route for authenticated users. Anonymous requests are
// redirected to the login page with a `next` parameter pointing back at the
// original URL, never answered with an error status.
func (s *Server) RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := s.sessionUserID(c); !ok {
			return s.redirectToLogin(c)
		}
		return c.Next()
	}
}

// sessionUserID returns the authenticated user's ID when a session exists.
func (s *Server) sessionUserID(c *fiber.Ctx) (uint, bool) {
	uid, ok := c.Locals("userID").(uint)
	return uid, ok
}

// redirectToLogin sends an anonymous client to the login page, preserving the
// originally requested path in the `next` query parameter.
func (s *Server) redirectToLogin(c *fiber.Ctx) error {
	next := url.QueryEscape(c.Path())
	return c.Redirect("/auth/login/?next="+next, fiber.StatusFound)
}
