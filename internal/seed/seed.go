// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	slog.Info("starting database seeding", "users", opts.NumUsers, "posts", opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			slog.Warn("could not clear all existing data, continuing anyway", "error", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	slog.Info("test users created", "count", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	slog.Info("posts created", "count", len(posts))

	if err := createEngagement(db, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	slog.Info("database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	sql := `TRUNCATE TABLE comments, likes, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password123!abc"), bcrypt.DefaultCost)

	// A couple of fixed accounts so developers can log in predictably.
	if count >= 2 {
		for _, u := range []string{"alice", "bob"} {
			user := models.User{
				Username:     u,
				Email:        fmt.Sprintf("%s@example.com", u),
				Password:     string(hashedPassword),
				Bio:          gofakeit.Sentence(8),
				ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", u),
			}
			if err := db.Create(&user).Error; err != nil {
				return nil, err
			}
			users = append(users, user)
		}
	}

	for len(users) < count {
		username := strings.ToLower(gofakeit.Username())
		user := models.User{
			Username:     username,
			Email:        fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password:     string(hashedPassword),
			Bio:          gofakeit.Sentence(10),
			ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		}
		if err := db.Create(&user).Error; err != nil {
			// Random usernames can collide, skip and retry.
			continue
		}
		users = append(users, user)
	}

	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			UserID:    author.ID,
			Text:      gofakeit.Paragraph(1, 3, 8, "\n"),
			MediaKind: models.MediaNone,
		}
		// Roughly a quarter of seeded posts carry an image.
		if rand.Intn(4) == 0 {
			post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%d/800/600", i)
			post.MediaKind = models.MediaImage
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func createEngagement(db *gorm.DB, users []models.User, posts []models.Post) error {
	likes := 0
	comments := 0

	for _, post := range posts {
		for _, user := range users {
			if rand.Intn(5) != 0 {
				continue
			}
			like := models.Like{UserID: user.ID, PostID: post.ID}
			if err := db.Create(&like).Error; err != nil {
				return err
			}
			likes++
		}

		n := rand.Intn(4)
		for i := 0; i < n; i++ {
			commenter := users[rand.Intn(len(users))]
			comment := models.Comment{
				PostID: post.ID,
				UserID: commenter.ID,
				Text:   gofakeit.Sentence(12),
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}
			comments++
		}
	}

	slog.Info("engagement created", "likes", likes, "comments", comments)
	return nil
}
