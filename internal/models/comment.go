// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment is a reply attached to a post.
//
// PostID is nullable: deleting a post keeps its comments and nulls the
// reference, while deleting the comment's author removes the comment.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PostID   *uint     `gorm:"index" json:"post_id,omitempty"`
	Post     *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:SET NULL" json:"post,omitempty"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Created  time.Time `gorm:"autoCreateTime" json:"created"`
}
