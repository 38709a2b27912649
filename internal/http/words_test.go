package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestWord(t *testing.T, router *gin.Engine, userID, word string) string {
	t.Helper()

	w := doJSON(t, router, "POST", "/api/words",
		`{"userId": "`+userID+`", "word": "`+word+`", "meaning": "meaning of `+word+`", "sentence": "A sentence using `+word+`."}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	created := response["word"].(map[string]interface{})
	return created["id"].(string)
}

func TestWordsController_CreateWord(t *testing.T) {
	t.Run("creates word for existing user", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		userID := signupTestUser(t, router, "Ann", "ann@example.com")

		w := doJSON(t, router, "POST", "/api/words",
			`{"userId": "`+userID+`", "word": "ubiquitous", "meaning": "everywhere", "sentence": "It is ubiquitous.", "category": "Academic"}`)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, true, response["success"])

		word := response["word"].(map[string]interface{})
		assert.Equal(t, "ubiquitous", word["word"])
		assert.Equal(t, "User", word["source"])
		assert.Equal(t, "Ann", word["first_name"])
	})

	t.Run("returns 404 for unknown owner", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		w := doJSON(t, router, "POST", "/api/words",
			`{"userId": "nope", "word": "x", "meaning": "y", "sentence": "z"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "user not found")
	})

	t.Run("returns 400 when required fields are missing", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		w := doJSON(t, router, "POST", "/api/words", `{"word": "lonely"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "missing required fields")
	})
}

func TestWordsController_GetWord(t *testing.T) {
	t.Run("returns word with owner fields", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		userID := signupTestUser(t, router, "Ann", "ann@example.com")
		wordID := createTestWord(t, router, userID, "serendipity")

		w := doJSON(t, router, "GET", "/api/words/"+wordID, "")

		assert.Equal(t, http.StatusOK, w.Code)

		var word map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &word))
		assert.Equal(t, "serendipity", word["word"])
		assert.Equal(t, "Ann", word["first_name"])
	})

	t.Run("returns 404 for unknown word", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		w := doJSON(t, router, "GET", "/api/words/nope", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "word not found")
	})
}

func TestWordsController_UpdateWord(t *testing.T) {
	t.Run("overwrites content fields", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		userID := signupTestUser(t, router, "Ann", "ann@example.com")
		wordID := createTestWord(t, router, userID, "ephemeral")

		w := doJSON(t, router, "PUT", "/api/words/"+wordID,
			`{"word": "ephemeral", "meaning": "lasting a very short time", "sentence": "Fame is ephemeral.", "category": "Philosophy"}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		word := response["word"].(map[string]interface{})
		assert.Equal(t, "lasting a very short time", word["meaning"])
		assert.Equal(t, "Philosophy", word["category"])
		assert.Equal(t, userID, word["user_id"])
	})

	t.Run("returns 404 for unknown word", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		w := doJSON(t, router, "PUT", "/api/words/nope",
			`{"word": "x", "meaning": "y", "sentence": "z"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestWordsController_DeleteWord(t *testing.T) {
	t.Run("deletes and then 404s", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		userID := signupTestUser(t, router, "Ann", "ann@example.com")
		wordID := createTestWord(t, router, userID, "transient")

		w := doJSON(t, router, "DELETE", "/api/words/"+wordID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "word deleted successfully")

		w = doJSON(t, router, "GET", "/api/words/"+wordID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestWordsController_ListWords(t *testing.T) {
	t.Run("scopes to user when userId is given", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		annID := signupTestUser(t, router, "Ann", "ann@example.com")
		bobID := signupTestUser(t, router, "Bob", "bob@example.com")
		createTestWord(t, router, annID, "mine")
		createTestWord(t, router, bobID, "theirs")

		w := doJSON(t, router, "GET", "/api/words?userId="+annID, "")

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		results := response["words"].([]interface{})
		require.Len(t, results, 1)
		first := results[0].(map[string]interface{})
		assert.Equal(t, "mine", first["word"])

		pagination := response["pagination"].(map[string]interface{})
		assert.Equal(t, float64(1), pagination["total"])
	})

	t.Run("falls back to global search without userId", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		annID := signupTestUser(t, router, "Ann", "ann@example.com")
		bobID := signupTestUser(t, router, "Bob", "bob@example.com")
		createTestWord(t, router, annID, "luminous")
		createTestWord(t, router, bobID, "luminary")

		w := doJSON(t, router, "GET", "/api/words?search=lumin", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response["words"].([]interface{}), 2)
	})
}

func TestWordsController_SearchGlobalWords(t *testing.T) {
	t.Run("searches across users", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		annID := signupTestUser(t, router, "Ann", "ann@example.com")
		bobID := signupTestUser(t, router, "Bob", "bob@example.com")
		createTestWord(t, router, annID, "luminous")
		createTestWord(t, router, bobID, "luminary")

		w := doJSON(t, router, "GET", "/api/words/search/global?q=lumin", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var results []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
		assert.Len(t, results, 2)
	})

	t.Run("rejects short terms", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		w := doJSON(t, router, "GET", "/api/words/search/global?q=%20a%20", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "at least 2 characters")
	})
}

func TestWordsController_StatsOverview(t *testing.T) {
	t.Run("aggregates across users", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		annID := signupTestUser(t, router, "Ann", "ann@example.com")
		bobID := signupTestUser(t, router, "Bob", "bob@example.com")
		createTestWord(t, router, annID, "alpha")
		createTestWord(t, router, annID, "beta")
		createTestWord(t, router, bobID, "gamma")

		w := doJSON(t, router, "GET", "/api/words/stats/overview", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var stats map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, float64(3), stats["total_words"])
		assert.Equal(t, float64(2), stats["total_users"])
		assert.Equal(t, float64(3), stats["recent_activity"])
	})
}

func TestWordsController_ListCategories(t *testing.T) {
	t.Run("returns catalog with counts", func(t *testing.T) {
		_, router, cleanup := setupRouterTest(t)
		defer cleanup()

		userID := signupTestUser(t, router, "Ann", "ann@example.com")
		w := doJSON(t, router, "POST", "/api/words",
			`{"userId": "`+userID+`", "word": "alpha", "meaning": "m", "sentence": "s", "category": "Science"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, router, "GET", "/api/words/categories/list", "")

		assert.Equal(t, http.StatusOK, w.Code)

		var categories []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
		require.Len(t, categories, 15)

		for _, c := range categories {
			if c["name"] == "Science" {
				assert.Equal(t, float64(1), c["word_count"])
			}
		}
	})
}
