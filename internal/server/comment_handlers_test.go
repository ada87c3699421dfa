package server

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	s, app := newTestServer(t)
	author := createTestUser(t, s, "poster")
	commenter := createTestUser(t, s, "commenter")
	post := createTestPost(t, s, author, nil, "commentable", time.Now())

	commentURL := fmt.Sprintf("/posts/%d/comment/", post.ID)
	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	t.Run("AnonymousRedirectsToLogin", func(t *testing.T) {
		resp := postForm(t, app, commentURL, url.Values{"text": {"hi"}}, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/auth/login/?next="+url.QueryEscape(commentURL),
			resp.Header.Get("Location"))
	})

	t.Run("Success", func(t *testing.T) {
		form := url.Values{"text": {"a considered reply"}}
		resp := postForm(t, app, commentURL, form, sessionCookie(t, s, commenter))
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, detailURL, resp.Header.Get("Location"))

		var comment models.Comment
		require.NoError(t, s.db.Where("text = ?", "a considered reply").First(&comment).Error)
		assert.Equal(t, commenter.ID, comment.AuthorID)
		require.NotNil(t, comment.PostID)
		assert.Equal(t, post.ID, *comment.PostID)
	})

	t.Run("BlankTextIsDroppedSilently", func(t *testing.T) {
		resp := postForm(t, app, commentURL, url.Values{"text": {"   "}}, sessionCookie(t, s, commenter))
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, detailURL, resp.Header.Get("Location"))

		var count int64
		s.db.Model(&models.Comment{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("UnknownPost", func(t *testing.T) {
		resp := postForm(t, app, "/posts/424242/comment/", url.Values{"text": {"hi"}},
			sessionCookie(t, s, commenter))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
