// Package users provides database operations for user management.
//
// This package implements the UserStore interface defined in internal/http/users.go.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByID(userID)
package users

import (
	"encoding/json"
	"fmt"

	"github.com/mrlokans/lexicology/internal/database"
	"github.com/mrlokans/lexicology/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new users repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// UserInput carries the mutable user fields for create and update calls.
type UserInput struct {
	FirstName  string
	LastName   string
	Email      *string
	BirthDate  string
	Categories []string
}

// Create inserts a new user with a generated id and links it to the catalog
// categories matching the given names. Names unknown to the catalog are
// silently dropped, never created. The row insert and the category links run
// in a single transaction.
func (r *Repository) Create(input UserInput) (*entities.User, error) {
	id := database.GenerateID()

	blob, err := marshalCategories(input.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize categories: %w", err)
	}

	err = r.db.Transaction(func(tx *database.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO users (id, first_name, last_name, email, birth_date, categories, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
			id, input.FirstName, input.LastName, input.Email, input.BirthDate, blob,
		)
		if err != nil {
			return err
		}
		if len(input.Categories) > 0 {
			return linkCategories(tx, id, input.Categories)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a user by id. Returns (nil, nil) when no user exists.
func (r *Repository) GetByID(id string) (*entities.User, error) {
	var user entities.User
	found, err := r.db.FetchOne(&user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	if err := unmarshalCategories(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when no user exists.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	found, err := r.db.FetchOne(&user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	if err := unmarshalCategories(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update overwrites all mutable fields and fully replaces the user's
// category memberships. Membership is delete-all-then-reinsert, not a diff.
func (r *Repository) Update(id string, input UserInput) (*entities.User, error) {
	blob, err := marshalCategories(input.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize categories: %w", err)
	}

	err = r.db.Transaction(func(tx *database.Tx) error {
		_, err := tx.Exec(
			`UPDATE users
			 SET first_name = ?, last_name = ?, email = ?, birth_date = ?, categories = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			input.FirstName, input.LastName, input.Email, input.BirthDate, blob, id,
		)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM user_categories WHERE user_id = ?`, id); err != nil {
			return err
		}
		if len(input.Categories) > 0 {
			return linkCategories(tx, id, input.Categories)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete removes the user row. Words and category memberships cascade.
func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	return err
}

// GetAll returns all users, newest first.
func (r *Repository) GetAll() ([]entities.User, error) {
	var users []entities.User
	err := r.db.FetchAll(&users, `SELECT * FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if err := unmarshalCategories(&users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// GetCategories returns the catalog categories the user is linked to.
func (r *Repository) GetCategories(userID string) ([]entities.CategoryWithIcon, error) {
	var categories []entities.CategoryWithIcon
	err := r.db.FetchAll(&categories,
		`SELECT c.name, c.icon
		 FROM categories c
		 JOIN user_categories uc ON c.id = uc.category_id
		 WHERE uc.user_id = ?`,
		userID,
	)
	return categories, err
}

// GetStats aggregates the user's vocabulary usage. The three aggregate
// queries run concurrently; each reads its own point-in-time view.
func (r *Repository) GetStats(userID string) (*entities.UserStats, error) {
	var stats entities.UserStats

	errs := make(chan error, 3)

	go func() {
		_, err := r.db.FetchOne(&stats.TotalWords,
			`SELECT COUNT(*) FROM words WHERE user_id = ?`, userID)
		errs <- err
	}()
	go func() {
		_, err := r.db.FetchOne(&stats.UniqueCategories,
			`SELECT COUNT(DISTINCT category) FROM words WHERE user_id = ? AND category IS NOT NULL`, userID)
		errs <- err
	}()
	go func() {
		_, err := r.db.FetchOne(&stats.RecentWords,
			`SELECT COUNT(*) FROM words WHERE user_id = ? AND creation_date >= datetime('now', '-7 days')`, userID)
		errs <- err
	}()

	for i := 0; i < 3; i++ {
		if err := <-errs; err != nil {
			return nil, err
		}
	}

	return &stats, nil
}

// linkCategories resolves category names to catalog ids and inserts the
// membership rows, ignoring duplicates.
func linkCategories(tx *database.Tx, userID string, names []string) error {
	var rows []entities.Category
	if err := tx.FetchAll(&rows, `SELECT id FROM categories WHERE name IN ?`, names); err != nil {
		return err
	}
	for _, category := range rows {
		_, err := tx.Exec(
			`INSERT OR IGNORE INTO user_categories (user_id, category_id) VALUES (?, ?)`,
			userID, category.ID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func marshalCategories(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	blob, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(blob), nil
}

func unmarshalCategories(user *entities.User) error {
	raw := user.Categories
	if raw == "" {
		raw = "[]"
	}
	if err := json.Unmarshal([]byte(raw), &user.CategoryNames); err != nil {
		return fmt.Errorf("failed to parse categories for user %s: %w", user.ID, err)
	}
	return nil
}
