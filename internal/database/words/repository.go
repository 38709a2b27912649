// Package words provides database operations for vocabulary word management.
//
// This package implements the WordStore interface defined in internal/http/words.go.
//
// # Usage
//
//	repo := words.NewRepository(db)
//	words, err := repo.FindByUser(userID, words.FindOptions{Search: "serend"})
package words

import (
	"strings"

	"github.com/mrlokans/lexicology/internal/database"
	"github.com/mrlokans/lexicology/internal/entities"
)

const (
	defaultFindLimit   = 50
	defaultSearchLimit = 20
	defaultRecentLimit = 10
)

// orderClauses is the closed set of ORDER BY fragments FindByUser may emit.
// Sort field and direction are the only dynamic statement fragments anywhere
// in the repository; everything else is a bound parameter.
var orderClauses = map[string]map[string]string{
	"word":          {"asc": "word ASC", "desc": "word DESC"},
	"creation_date": {"asc": "creation_date ASC", "desc": "creation_date DESC"},
	"updated_at":    {"asc": "updated_at ASC", "desc": "updated_at DESC"},
}

// orderClause picks the fragment for the requested sort, falling back to
// creation_date for unknown fields and descending for unknown directions.
func orderClause(sortBy, sortOrder string) string {
	directions, ok := orderClauses[sortBy]
	if !ok {
		directions = orderClauses["creation_date"]
	}
	clause, ok := directions[strings.ToLower(sortOrder)]
	if !ok {
		clause = directions["desc"]
	}
	return clause
}

// Repository handles all word database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new words repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// WordInput carries the word fields for create and update calls.
type WordInput struct {
	UserID   string
	Word     string
	Meaning  string
	Sentence string
	Category *string
	Source   string
}

// FindOptions controls filtering, sorting and pagination for FindByUser.
type FindOptions struct {
	Search    string
	Category  string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// SearchOptions controls pagination for SearchGlobal.
type SearchOptions struct {
	Limit  int
	Offset int
}

// Create inserts a new word with a generated id. The owning user is not
// verified to exist; that check belongs to the caller.
func (r *Repository) Create(input WordInput) (*entities.WordWithOwner, error) {
	id := database.GenerateID()

	source := input.Source
	if source == "" {
		source = entities.DefaultWordSource
	}

	_, err := r.db.Exec(
		`INSERT INTO words (id, user_id, word, meaning, sentence, category, source, creation_date, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		id, input.UserID, input.Word, input.Meaning, input.Sentence, input.Category, source,
	)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a word joined with its owner's denormalized fields.
// Returns (nil, nil) when no word exists; a word whose owner is gone comes
// back with null owner fields.
func (r *Repository) GetByID(id string) (*entities.WordWithOwner, error) {
	var word entities.WordWithOwner
	found, err := r.db.FetchOne(&word,
		`SELECT w.*, u.first_name, u.last_name, u.email
		 FROM words w
		 LEFT JOIN users u ON w.user_id = u.id
		 WHERE w.id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &word, nil
}

// FindByUser returns the user's words with optional substring search over
// word/meaning/sentence, optional exact category filter, whitelisted sorting
// and bound limit/offset pagination.
func (r *Repository) FindByUser(userID string, opts FindOptions) ([]entities.Word, error) {
	query := `SELECT * FROM words WHERE user_id = ?`
	args := []any{userID}

	if opts.Search != "" {
		query += ` AND (LOWER(word) LIKE LOWER(?) OR LOWER(meaning) LIKE LOWER(?) OR LOWER(sentence) LIKE LOWER(?))`
		term := "%" + opts.Search + "%"
		args = append(args, term, term, term)
	}

	if opts.Category != "" {
		query += ` AND category = ?`
		args = append(args, opts.Category)
	}

	query += ` ORDER BY ` + orderClause(opts.SortBy, opts.SortOrder)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultFindLimit
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, opts.Offset)

	var results []entities.Word
	err := r.db.FetchAll(&results, query, args...)
	return results, err
}

// Update overwrites the word's content fields. Ownership never changes here.
func (r *Repository) Update(id string, input WordInput) (*entities.WordWithOwner, error) {
	_, err := r.db.Exec(
		`UPDATE words
		 SET word = ?, meaning = ?, sentence = ?, category = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		input.Word, input.Meaning, input.Sentence, input.Category, id,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// Delete removes a word by id. Ownership checks belong to the caller.
func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM words WHERE id = ?`, id)
	return err
}

// CountForUser returns the user's total word count.
func (r *Repository) CountForUser(userID string) (int64, error) {
	var count int64
	_, err := r.db.FetchOne(&count, `SELECT COUNT(*) FROM words WHERE user_id = ?`, userID)
	return count, err
}

// GetUserCategories returns the user's word counts per free-text category,
// most used first.
func (r *Repository) GetUserCategories(userID string) ([]entities.CategoryCount, error) {
	var categories []entities.CategoryCount
	err := r.db.FetchAll(&categories,
		`SELECT category, COUNT(*) AS count
		 FROM words
		 WHERE user_id = ? AND category IS NOT NULL
		 GROUP BY category
		 ORDER BY count DESC`,
		userID,
	)
	return categories, err
}

// GetRecent returns the user's newest words, bounded by limit.
func (r *Repository) GetRecent(userID string, limit int) ([]entities.Word, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	var results []entities.Word
	err := r.db.FetchAll(&results,
		`SELECT * FROM words WHERE user_id = ? ORDER BY creation_date DESC LIMIT ?`,
		userID, limit,
	)
	return results, err
}

// SearchGlobal searches word and meaning across all users, newest first.
// Callers must apply their own access policy before exposing the results.
func (r *Repository) SearchGlobal(term string, opts SearchOptions) ([]entities.WordWithOwner, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	pattern := "%" + term + "%"
	var results []entities.WordWithOwner
	err := r.db.FetchAll(&results,
		`SELECT w.*, u.first_name, u.last_name, u.email
		 FROM words w
		 LEFT JOIN users u ON w.user_id = u.id
		 WHERE LOWER(w.word) LIKE LOWER(?) OR LOWER(w.meaning) LIKE LOWER(?)
		 ORDER BY w.creation_date DESC
		 LIMIT ? OFFSET ?`,
		pattern, pattern, limit, opts.Offset,
	)
	return results, err
}

// GetCategories returns the full catalog with the number of words whose
// free-text category matches each name. There is no foreign key between the
// two, so counts can be zero or stale when names drift.
func (r *Repository) GetCategories() ([]entities.CatalogCategory, error) {
	var categories []entities.CatalogCategory
	err := r.db.FetchAll(&categories,
		`SELECT name, icon,
		        (SELECT COUNT(*) FROM words WHERE category = categories.name) AS word_count
		 FROM categories
		 ORDER BY name`,
	)
	return categories, err
}

// GetStats aggregates activity across all users. The four aggregate queries
// run concurrently; each reads its own point-in-time view.
func (r *Repository) GetStats() (*entities.GlobalStats, error) {
	var stats entities.GlobalStats

	errs := make(chan error, 4)

	go func() {
		_, err := r.db.FetchOne(&stats.TotalWords, `SELECT COUNT(*) FROM words`)
		errs <- err
	}()
	go func() {
		_, err := r.db.FetchOne(&stats.TotalUsers, `SELECT COUNT(*) FROM users`)
		errs <- err
	}()
	go func() {
		_, err := r.db.FetchOne(&stats.RecentActivity,
			`SELECT COUNT(*) FROM words WHERE creation_date >= datetime('now', '-24 hours')`)
		errs <- err
	}()
	go func() {
		errs <- r.db.FetchAll(&stats.PopularCategories,
			`SELECT category, COUNT(*) AS count
			 FROM words
			 WHERE category IS NOT NULL
			 GROUP BY category
			 ORDER BY count DESC
			 LIMIT 5`)
	}()

	for i := 0; i < 4; i++ {
		if err := <-errs; err != nil {
			return nil, err
		}
	}

	if stats.PopularCategories == nil {
		stats.PopularCategories = []entities.CategoryCount{}
	}

	return &stats, nil
}
