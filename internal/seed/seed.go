package seed

import (
	"fmt"
	"log"

	"quill/internal/models"

	"gorm.io/gorm"
)

// starterGroups are the communities every fresh database gets, so that the
// group pages have somewhere to point before any real data exists.
var starterGroups = []models.Group{
	{Title: "Travel notes", Slug: "travel", Description: "Dispatches from the road."},
	{Title: "Kitchen table", Slug: "kitchen", Description: "Recipes, failures and the occasional triumph."},
	{Title: "Reading log", Slug: "reading", Description: "What we are reading and what we think about it."},
	{Title: "Workshop", Slug: "workshop", Description: "Projects in progress, sawdust included."},
}

// Seeder orchestrates database population for development environments.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder builds a Seeder with default factory options.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, SeedOptions{SkipBcrypt: false, MaxDays: 90}),
	}
}

// ClearAll removes every row the seeder may have created. Delete order
// respects the foreign keys: comments and follows first, then posts, then
// groups and users.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"comments", "follows", "posts", "groups", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// StarterGroups inserts the built-in groups, skipping any whose slug is
// already taken.
func StarterGroups(db *gorm.DB) error {
	for i := range starterGroups {
		g := starterGroups[i]
		var count int64
		if err := db.Model(&models.Group{}).Where("slug = ?", g.Slug).Count(&count).Error; err != nil {
			return fmt.Errorf("check group %s: %w", g.Slug, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&g).Error; err != nil {
			return fmt.Errorf("create group %s: %w", g.Slug, err)
		}
	}
	return nil
}

// SeedUsers creates the requested number of demo users.
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	log.Printf("Seeding %d users...", count)
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedPosts spreads the requested number of posts across the given users.
// Roughly two thirds of posts land in a random group, the rest stay
// ungrouped, and about a quarter get comments.
func (s *Seeder) SeedPosts(users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute posts to")
	}

	var groups []models.Group
	if err := s.db.Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}

	log.Printf("Seeding %d posts across %d users and %d groups...",
		count, len(users), len(groups))

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		var group *models.Group
		if len(groups) > 0 && s.factory.rng.Intn(3) != 0 {
			group = &groups[s.factory.rng.Intn(len(groups))]
		}
		posts = append(posts, s.factory.BuildPost(author, group))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}

	for _, post := range posts {
		if s.factory.rng.Intn(4) != 0 {
			continue
		}
		commenters := s.factory.rng.Intn(3) + 1
		for j := 0; j < commenters; j++ {
			author := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, post); err != nil {
				return nil, err
			}
		}
	}
	return posts, nil
}

// SeedFollowMesh wires a random follow graph: every user follows a handful
// of random authors.
func (s *Seeder) SeedFollowMesh(users []*models.User) error {
	log.Printf("Seeding follow mesh for %d users...", len(users))
	for _, user := range users {
		follows := s.factory.rng.Intn(6) + 1
		for j := 0; j < follows; j++ {
			author := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.CreateFollow(user, author); err != nil {
				return err
			}
		}
	}
	return nil
}
