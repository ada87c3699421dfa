// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post is a text entry published by an author, optionally tagged to a group
// and carrying an uploaded image.
//
// PubDate is assigned at insert time and never rebound on edit; the
// repository updates only the mutable columns.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID  *uint     `gorm:"index" json:"group_id,omitempty"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Image    string    `json:"image,omitempty"`
}
