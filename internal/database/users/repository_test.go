package users

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/lexicology/internal/database"
)

func setupTestDB(t *testing.T) (*database.Database, *Repository, func()) {
	dbPath := "./test_users_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func ptr(s string) *string {
	return &s
}

func createTestUser(t *testing.T, repo *Repository, firstName string, categories []string) string {
	user, err := repo.Create(UserInput{
		FirstName:  firstName,
		LastName:   "Lee",
		BirthDate:  "1990-01-01",
		Categories: categories,
	})
	require.NoError(t, err)
	return user.ID
}

func TestRepository_Create(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.Create(UserInput{
		FirstName:  "Ann",
		LastName:   "Lee",
		BirthDate:  "1990-01-01",
		Categories: []string{"Programming"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ann", user.FirstName)
	assert.Equal(t, []string{"Programming"}, user.CategoryNames)
	assert.Nil(t, user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	categories, err := repo.GetCategories(user.ID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Programming", categories[0].Name)
}

func TestRepository_Create_UnknownCategoriesDropped(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.Create(UserInput{
		FirstName:  "Bea",
		LastName:   "Stone",
		BirthDate:  "1985-03-14",
		Categories: []string{"Science", "Astrology", "Cooking"},
	})
	require.NoError(t, err)

	// The serialized cache keeps the requested list as-is.
	assert.Equal(t, []string{"Science", "Astrology", "Cooking"}, user.CategoryNames)

	// The normalized membership only keeps catalog matches.
	categories, err := repo.GetCategories(user.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Science", "Cooking"}, names)
}

func TestRepository_Create_DuplicateEmail(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Create(UserInput{
		FirstName: "First",
		LastName:  "User",
		Email:     ptr("a@x.com"),
		BirthDate: "1990-01-01",
	})
	require.NoError(t, err)

	_, err = repo.Create(UserInput{
		FirstName: "Second",
		LastName:  "User",
		Email:     ptr("a@x.com"),
		BirthDate: "1991-01-01",
	})
	assert.Error(t, err)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.GetByID("does-not-exist")

	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRepository_GetByEmail(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.Create(UserInput{
		FirstName: "Eve",
		LastName:  "Miller",
		Email:     ptr("eve@example.com"),
		BirthDate: "1992-07-07",
	})
	require.NoError(t, err)

	user, err := repo.GetByEmail("eve@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	missing, err := repo.GetByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_Update_ReplacesMembership(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	userID := createTestUser(t, repo, "Ann", []string{"Science", "Cooking"})

	updated, err := repo.Update(userID, UserInput{
		FirstName:  "Ann",
		LastName:   "Lee",
		BirthDate:  "1990-01-01",
		Categories: []string{"Cooking", "History"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cooking", "History"}, updated.CategoryNames)

	// Full replacement: Science must be gone, never {Science, Cooking, History}.
	categories, err := repo.GetCategories(userID)
	require.NoError(t, err)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Cooking", "History"}, names)
}

func TestRepository_Update_OverwritesFields(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	userID := createTestUser(t, repo, "Ann", nil)

	updated, err := repo.Update(userID, UserInput{
		FirstName: "Anna",
		LastName:  "Lem",
		Email:     ptr("anna@example.com"),
		BirthDate: "1990-01-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.Equal(t, "Lem", updated.LastName)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "anna@example.com", *updated.Email)
	assert.Equal(t, "1990-01-02", updated.BirthDate)
	assert.Equal(t, []string{}, updated.CategoryNames)
}

func TestRepository_Delete_Cascades(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	userID := createTestUser(t, repo, "Ann", []string{"Programming"})
	otherID := createTestUser(t, repo, "Bob", []string{"Science"})

	_, err := db.Exec(
		`INSERT INTO words (id, user_id, word, meaning, sentence, creation_date, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		database.GenerateID(), userID, "ephemeral", "short-lived", "An ephemeral joy.",
	)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(userID))

	gone, err := repo.GetByID(userID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var wordCount int64
	_, err = db.FetchOne(&wordCount, `SELECT COUNT(*) FROM words WHERE user_id = ?`, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), wordCount)

	var linkCount int64
	_, err = db.FetchOne(&linkCount, `SELECT COUNT(*) FROM user_categories WHERE user_id = ?`, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), linkCount)

	// The catalog and other users are untouched.
	var categoryCount int64
	_, err = db.FetchOne(&categoryCount, `SELECT COUNT(*) FROM categories`)
	require.NoError(t, err)
	assert.Equal(t, int64(15), categoryCount)

	other, err := repo.GetByID(otherID)
	require.NoError(t, err)
	require.NotNil(t, other)
	otherCategories, err := repo.GetCategories(otherID)
	require.NoError(t, err)
	assert.Len(t, otherCategories, 1)
}

func TestRepository_GetAll(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestUser(t, repo, "Ann", []string{"Programming"})
	createTestUser(t, repo, "Bob", nil)

	all, err := repo.GetAll()

	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, user := range all {
		assert.NotNil(t, user.CategoryNames)
	}
}

func TestRepository_GetStats(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	userID := createTestUser(t, repo, "Ann", nil)

	insertWord := func(word string, category *string) string {
		id := database.GenerateID()
		_, err := db.Exec(
			`INSERT INTO words (id, user_id, word, meaning, sentence, category, creation_date, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
			id, userID, word, "meaning", "sentence", category,
		)
		require.NoError(t, err)
		return id
	}

	insertWord("alpha", ptr("Science"))
	insertWord("beta", ptr("Science"))
	oldID := insertWord("gamma", nil)

	// Push one word out of the trailing 7-day window.
	_, err := db.Exec(`UPDATE words SET creation_date = datetime('now', '-30 days') WHERE id = ?`, oldID)
	require.NoError(t, err)

	stats, err := repo.GetStats(userID)

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalWords)
	assert.Equal(t, int64(1), stats.UniqueCategories)
	assert.Equal(t, int64(2), stats.RecentWords)
}

func TestRepository_GetStats_EmptyUser(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	stats, err := repo.GetStats("no-such-user")

	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalWords)
	assert.Equal(t, int64(0), stats.UniqueCategories)
	assert.Equal(t, int64(0), stats.RecentWords)
}
