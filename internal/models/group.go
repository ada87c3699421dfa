// Package models contains data structures for the application's domain models.
package models

// Group is a named category a post may optionally belong to.
// Groups are created administratively (see cmd/seed); deleting a group keeps
// its posts and nulls their group reference.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"unique;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Posts       []Post `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"posts,omitempty"`
}
