package server

import (
	"net/http"
	"net/url"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	s, app := newTestServer(t)

	t.Run("Success", func(t *testing.T) {
		form := url.Values{
			"username": {"firstauthor"},
			"email":    {"first@example.com"},
			"password": {testPassword},
		}
		resp := postForm(t, app, "/auth/signup/", form, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		// A session cookie is issued right away
		var hasSession bool
		for _, c := range resp.Cookies() {
			if c.Name == s.config.SessionCookie && c.Value != "" {
				hasSession = true
			}
		}
		assert.True(t, hasSession)

		var user models.User
		require.NoError(t, s.db.Where("username = ?", "firstauthor").First(&user).Error)
		assert.Equal(t, "first@example.com", user.Email)
		// Never stored in the clear
		assert.NotEqual(t, testPassword, user.Password)
	})

	t.Run("WeakPassword", func(t *testing.T) {
		form := url.Values{
			"username": {"weakpassword"},
			"email":    {"weak@example.com"},
			"password": {"short"},
		}
		resp := postForm(t, app, "/auth/signup/", form, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		formCtx := body["form"].(map[string]any)
		assert.Contains(t, formCtx["errors"], "password")

		var count int64
		s.db.Model(&models.User{}).Where("username = ?", "weakpassword").Count(&count)
		assert.Zero(t, count)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		form := url.Values{
			"username": {"firstauthor"},
			"email":    {"other@example.com"},
			"password": {testPassword},
		}
		resp := postForm(t, app, "/auth/signup/", form, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		formCtx := body["form"].(map[string]any)
		assert.Contains(t, formCtx["errors"], "username")
	})
}

func TestLogin(t *testing.T) {
	s, app := newTestServer(t)
	createTestUser(t, s, "returning")

	t.Run("Success", func(t *testing.T) {
		form := url.Values{
			"username": {"returning"},
			"password": {testPassword},
		}
		resp := postForm(t, app, "/auth/login/", form, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})

	t.Run("NextParameterHonored", func(t *testing.T) {
		form := url.Values{
			"username": {"returning"},
			"password": {testPassword},
			"next":     {"/create/"},
		}
		resp := postForm(t, app, "/auth/login/", form, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/create/", resp.Header.Get("Location"))
	})

	t.Run("OffsiteNextFallsBack", func(t *testing.T) {
		form := url.Values{
			"username": {"returning"},
			"password": {testPassword},
			"next":     {"//evil.example.com/"},
		}
		resp := postForm(t, app, "/auth/login/", form, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		form := url.Values{
			"username": {"returning"},
			"password": {"not-the-password"},
		}
		resp := postForm(t, app, "/auth/login/", form, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		formCtx := body["form"].(map[string]any)
		assert.Contains(t, formCtx["errors"], "__all__")
	})

	t.Run("UnknownUser", func(t *testing.T) {
		form := url.Values{
			"username": {"ghost"},
			"password": {testPassword},
		}
		resp := postForm(t, app, "/auth/login/", form, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		formCtx := body["form"].(map[string]any)
		assert.Contains(t, formCtx["errors"], "__all__")
	})
}

func TestLogout(t *testing.T) {
	s, app := newTestServer(t)
	user := createTestUser(t, s, "leaving")

	resp := postForm(t, app, "/auth/logout/", url.Values{}, sessionCookie(t, s, user))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	for _, c := range resp.Cookies() {
		if c.Name == s.config.SessionCookie {
			assert.Empty(t, c.Value)
		}
	}
}

func TestSanitizeNext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/create/", "/create/"},
		{"//evil.example.com", "/"},
		{"https://evil.example.com", "/"},
		{"create/", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeNext(tt.in), "next=%q", tt.in)
	}
}
