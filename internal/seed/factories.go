// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune how factories build and persist entities.
type SeedOptions struct {
	// SkipBcrypt stores the demo password in plain text, which is much
	// faster when seeding hundreds of users in development.
	SkipBcrypt bool
	// MaxDays bounds how far back generated publication dates spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateGroup constructs and persists a sample `models.Group` with a slug
// derived from its title.
func (f *Factory) CreateGroup(overrides ...func(*models.Group)) (*models.Group, error) {
	title := gofakeit.BookTitle()
	group := &models.Group{
		Title:       title,
		Slug:        slugify(title) + fmt.Sprintf("-%d", gofakeit.Number(100, 999)),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
	}

	for _, override := range overrides {
		override(group)
	}

	if err := f.db.Create(group).Error; err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

// BuildPost constructs a post for the given author without persisting it.
// Publication dates spread backwards over the configured window so feeds
// look lived-in.
func (f *Factory) BuildPost(author *models.User, group *models.Group, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Text:     gofakeit.Paragraph(1, 3, 6, "\n"),
		AuthorID: author.ID,
	}
	if group != nil {
		groupID := group.ID
		post.GroupID = &groupID
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.PubDate = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a generated comment by the given author on a post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	postID := post.ID
	comment := &models.Comment{
		Text:     gofakeit.Sentence(f.rng.Intn(12) + 3),
		PostID:   &postID,
		AuthorID: author.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// CreateFollow records that user follows author. Duplicate pairs are
// silently ignored so random meshes never trip the unique index.
func (f *Factory) CreateFollow(user, author *models.User) error {
	if user.ID == author.ID {
		return nil
	}
	err := f.db.Exec(
		"INSERT INTO follows (user_id, author_id, created_at) VALUES (?, ?, ?) ON CONFLICT (user_id, author_id) DO NOTHING",
		user.ID, author.ID, time.Now(),
	).Error
	if err != nil {
		log.Printf("create follow %d -> %d: %v", user.ID, author.ID, err)
	}
	return err
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
