// Package main provides a tool to seed the database with test reading data.
//
// This reads existing books and users from the database and creates realistic
// reading sessions to test streak, summary, and heatmap features.
//
// Usage:
//
//	DATA_PATH=~/leaflog go run ./cmd/seed
//	DATA_PATH=~/leaflog go run ./cmd/seed --create-users  # Also create test users
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/leaflogapp/leaflog-server/internal/auth"
	"github.com/leaflogapp/leaflog-server/internal/color"
	"github.com/leaflogapp/leaflog-server/internal/domain"
	"github.com/leaflogapp/leaflog-server/internal/id"
	"github.com/leaflogapp/leaflog-server/internal/normalize"
	"github.com/leaflogapp/leaflog-server/internal/store"
	"github.com/leaflogapp/leaflog-server/internal/store/sqlite"
)

var createUsers = flag.Bool("create-users", false, "Create test users for seeding")

func main() {
	flag.Parse()

	basePath := os.Getenv("DATA_PATH")
	if basePath == "" {
		basePath = os.ExpandEnv("$HOME/leaflog")
	}

	fmt.Printf("Opening data directory: %s\n", basePath)

	s, err := store.New(filepath.Join(basePath, "db"), nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	history, err := sqlite.Open(filepath.Join(basePath, "history.db"), nil)
	if err != nil {
		log.Fatalf("Failed to open reading history: %v", err)
	}
	defer history.Close()

	ctx := context.Background()

	// Optionally create test users
	if *createUsers {
		createTestUsers(ctx, s)
	}

	users := collectUsers(ctx, s)
	if len(users) == 0 {
		log.Fatal("No users found in database. Create a user first.")
	}

	fmt.Printf("Found %d users\n", len(users))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// For each user, create reading sessions on books from their shelf
	for _, user := range users {
		fmt.Printf("\nSeeding data for user: %s (%s)\n", user.DisplayName, user.ID)

		books, err := s.ListUserBooks(ctx, user.ID, "")
		if err != nil {
			log.Printf("Failed to get books for user %s: %v", user.ID, err)
			continue
		}

		// Give empty shelves something to read
		if len(books) == 0 {
			fmt.Printf("  Shelf is empty, adding sample books...\n")
			books = createSampleBooks(ctx, s, user.ID)
		}

		if len(books) == 0 {
			fmt.Printf("  No books available for this user, skipping\n")
			continue
		}

		fmt.Printf("  User has %d books on their shelf\n", len(books))

		// Pick up to 3 books to read from
		numBooks := min(1+rng.Intn(3), len(books))

		shuffled := make([]*domain.Book, len(books))
		copy(shuffled, books)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		selectedBooks := shuffled[:numBooks]

		// Create reading sessions over the past 14 days
		now := time.Now()
		sessionsCreated := 0

		for day := 13; day >= 0; day-- {
			// Always log today and yesterday so the streak is active.
			// Other days have an 80% chance, for realism.
			if day > 1 && rng.Float32() > 0.8 {
				continue
			}

			book := selectedBooks[rng.Intn(len(selectedBooks))]

			session := &domain.ReadingSession{
				ID:           id.MustGenerate("rs"),
				UserID:       user.ID,
				BookID:       book.ID,
				Date:         domain.Day(now.AddDate(0, 0, -day)),
				PagesRead:    5 + rng.Intn(60),
				DurationMins: 10 + rng.Intn(80),
				LoggedAt:     now.AddDate(0, 0, -day),
			}

			if err := history.LogReadingSession(ctx, session); err != nil {
				log.Printf("Failed to log session: %v", err)
				continue
			}

			sessionsCreated++
		}

		fmt.Printf("  Created %d reading sessions across %d books\n", sessionsCreated, numBooks)
	}

	fmt.Println("\nSeeding complete!")
}

// collectUsers drains the user entity iterator, skipping corrupt entries.
func collectUsers(ctx context.Context, s *store.Store) []*domain.User {
	var users []*domain.User
	for user, err := range s.Users.List(ctx) {
		if err != nil {
			log.Printf("Failed to read user: %v", err)
			continue
		}
		users = append(users, user)
	}
	return users
}

// sampleBooks are titles used when a shelf is empty.
var sampleBooks = []struct {
	title  string
	author string
	pages  int
}{
	{"The Name of the Wind", "Patrick Rothfuss", 662},
	{"A Wizard of Earthsea", "Ursula K. Le Guin", 183},
	{"The Hobbit", "J.R.R. Tolkien", 310},
	{"Piranesi", "Susanna Clarke", 245},
	{"Project Hail Mary", "Andy Weir", 476},
}

// createSampleBooks puts a handful of books on the user's shelf.
func createSampleBooks(ctx context.Context, s *store.Store, userID string) []*domain.Book {
	now := time.Now()
	var books []*domain.Book

	for _, sample := range sampleBooks {
		book := &domain.Book{
			Syncable: domain.Syncable{
				ID:        id.MustGenerate("bk"),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:     userID,
			Title:      sample.title,
			SortTitle:  normalize.SortTitle(sample.title),
			Author:     sample.author,
			TotalPages: sample.pages,
			Status:     domain.BookStatusReading,
			StartedAt:  &now,
		}

		if err := s.CreateBook(ctx, book); err != nil {
			log.Printf("  Failed to create book %q: %v", sample.title, err)
			continue
		}

		books = append(books, book)
	}

	return books
}

// testUserNames are display names for generated test users.
var testUserNames = []string{
	"Alex Rivera",
	"Jordan Chen",
	"Sam Taylor",
	"Casey Morgan",
	"Riley Kim",
}

// createTestUsers creates member accounts with a shared test password.
func createTestUsers(ctx context.Context, s *store.Store) {
	fmt.Println("\n=== Creating Test Users ===")

	passwordHash, err := auth.HashPassword("testpass123")
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return
	}

	now := time.Now()

	for i, name := range testUserNames {
		userID := id.MustGenerate("usr")
		email := fmt.Sprintf("test%d@example.com", i+1)

		// Check if user with this email already exists
		if existing, _ := s.Users.GetByIndex(ctx, "email", email); existing != nil {
			fmt.Printf("  User %s already exists, skipping\n", email)
			continue
		}

		user := &domain.User{
			Syncable: domain.Syncable{
				ID:        userID,
				CreatedAt: now,
				UpdatedAt: now,
			},
			Email:        email,
			PasswordHash: passwordHash,
			Role:         domain.RoleMember,
			DisplayName:  name,
			AvatarColor:  color.ForUser(userID),
		}

		if err := s.Users.Create(ctx, userID, user); err != nil {
			log.Printf("  Failed to create user %s: %v", name, err)
			continue
		}

		fmt.Printf("  Created user: %s (%s)\n", name, email)
	}

	fmt.Println("=== Test Users Created ===")
}
