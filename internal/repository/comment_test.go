package repository

import (
	"context"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := mustCreateUser(t, db, "author")
	replier := mustCreateUser(t, db, "replier")

	post := &models.Post{Text: "discuss", AuthorID: author.ID, PubDate: time.Now()}
	require.NoError(t, db.Create(post).Error)
	other := &models.Post{Text: "unrelated", AuthorID: author.ID, PubDate: time.Now()}
	require.NoError(t, db.Create(other).Error)

	addComment := func(user *models.User, p *models.Post, text string) {
		postID := p.ID
		require.NoError(t, repo.Create(ctx, &models.Comment{
			Text:     text,
			PostID:   &postID,
			AuthorID: user.ID,
		}))
	}

	addComment(replier, post, "first")
	addComment(author, post, "second")
	addComment(replier, other, "elsewhere")

	t.Run("ListByPostInInsertionOrder", func(t *testing.T) {
		comments, err := repo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "first", comments[0].Text)
		assert.Equal(t, "second", comments[1].Text)
		assert.Equal(t, "replier", comments[0].Author.Username)
	})

	t.Run("Delete", func(t *testing.T) {
		comments, err := repo.ListByPost(ctx, other.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)

		require.NoError(t, repo.Delete(ctx, comments[0].ID))

		comments, err = repo.ListByPost(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}

func TestGroupRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Group{Title: "Travel notes", Slug: "travel"}))
	require.NoError(t, repo.Create(ctx, &models.Group{Title: "Kitchen table", Slug: "kitchen"}))

	t.Run("DuplicateSlugIsValidationError", func(t *testing.T) {
		err := repo.Create(ctx, &models.Group{Title: "Another", Slug: "travel"})
		require.Error(t, err)
		assert.False(t, models.IsNotFound(err))
	})

	t.Run("MalformedSlugIsValidationError", func(t *testing.T) {
		var appErr *models.AppError
		err := repo.Create(ctx, &models.Group{Title: "Shouting", Slug: "Not A Slug"})
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

		var count int64
		db.Model(&models.Group{}).Count(&count)
		assert.Equal(t, int64(2), count)
	})

	t.Run("GetBySlug", func(t *testing.T) {
		group, err := repo.GetBySlug(ctx, "travel")
		require.NoError(t, err)
		assert.Equal(t, "Travel notes", group.Title)
	})

	t.Run("GetBySlugNotFound", func(t *testing.T) {
		_, err := repo.GetBySlug(ctx, "nowhere")
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("ListOrderedByTitle", func(t *testing.T) {
		groups, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "kitchen", groups[0].Slug)
		assert.Equal(t, "travel", groups[1].Slug)
	})
}
