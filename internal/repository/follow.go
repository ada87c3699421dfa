// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"time"

	"quill/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow-pair operations.
type FollowRepository interface {
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	Follow(ctx context.Context, userID, authorID uint) error
	Unfollow(ctx context.Context, userID, authorID uint) error
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Follow records the pair if absent. INSERT ... ON CONFLICT DO NOTHING keeps
// the operation idempotent under concurrent requests: the unique index wins
// the race and the loser is a silent no-op, never an error.
func (r *followRepository) Follow(ctx context.Context, userID, authorID uint) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (user_id, author_id, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id, author_id) DO NOTHING`,
		userID, authorID, time.Now(),
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	return nil
}

// Unfollow removes the pair and reports not-found when it never existed.
func (r *followRepository) Unfollow(ctx context.Context, userID, authorID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", authorID)
	}
	return nil
}
