package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexicology/internal/database/words"
	"github.com/mrlokans/lexicology/internal/entities"
)

// WordStore defines database operations for word management.
type WordStore interface {
	Create(input words.WordInput) (*entities.WordWithOwner, error)
	GetByID(id string) (*entities.WordWithOwner, error)
	FindByUser(userID string, opts words.FindOptions) ([]entities.Word, error)
	Update(id string, input words.WordInput) (*entities.WordWithOwner, error)
	Delete(id string) error
	CountForUser(userID string) (int64, error)
	GetUserCategories(userID string) ([]entities.CategoryCount, error)
	GetRecent(userID string, limit int) ([]entities.Word, error)
	SearchGlobal(term string, opts words.SearchOptions) ([]entities.WordWithOwner, error)
	GetCategories() ([]entities.CatalogCategory, error)
	GetStats() (*entities.GlobalStats, error)
}

type WordsController struct {
	store     WordStore
	userStore UserStore
}

func NewWordsController(store WordStore, userStore UserStore) *WordsController {
	return &WordsController{
		store:     store,
		userStore: userStore,
	}
}

// CreateWordRequest is the request body for adding a word.
type CreateWordRequest struct {
	UserID   string  `json:"userId" binding:"required"`
	Word     string  `json:"word" binding:"required"`
	Meaning  string  `json:"meaning" binding:"required"`
	Sentence string  `json:"sentence" binding:"required"`
	Category *string `json:"category"`
	Source   string  `json:"source"`
}

// UpdateWordRequest is the request body for updating a word. Ownership is
// not part of it; words never move between users.
type UpdateWordRequest struct {
	Word     string  `json:"word" binding:"required"`
	Meaning  string  `json:"meaning" binding:"required"`
	Sentence string  `json:"sentence" binding:"required"`
	Category *string `json:"category"`
}

// CreateWord records a new word for an existing user.
// POST /api/words
func (wc *WordsController) CreateWord(c *gin.Context) {
	var req CreateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing required fields: userId, word, meaning, sentence")
		return
	}

	// The repository trusts its caller on cross-entity validity, so the
	// owner existence check happens here.
	owner, err := wc.userStore.GetByID(req.UserID)
	if err != nil {
		respondInternalError(c, err, "get user")
		return
	}
	if owner == nil {
		respondNotFound(c, "user")
		return
	}

	word, err := wc.store.Create(words.WordInput{
		UserID:   req.UserID,
		Word:     req.Word,
		Meaning:  req.Meaning,
		Sentence: req.Sentence,
		Category: req.Category,
		Source:   req.Source,
	})
	if err != nil {
		respondInternalError(c, err, "create word")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "word created successfully",
		"word":    word,
	})
}

// ListWords returns a user's words when userId is given, or the global
// admin view otherwise.
// GET /api/words
func (wc *WordsController) ListWords(c *gin.Context) {
	page, limit, offset := parsePage(c, 50)

	if userID := c.Query("userId"); userID != "" {
		sort := parseListSort(c)

		results, err := wc.store.FindByUser(userID, words.FindOptions{
			Search:    c.Query("search"),
			Category:  c.Query("category"),
			SortBy:    sort.SortBy,
			SortOrder: sort.SortOrder,
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			respondInternalError(c, err, "list words")
			return
		}

		total, err := wc.store.CountForUser(userID)
		if err != nil {
			respondInternalError(c, err, "count words")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"words":      results,
			"pagination": newPagination(page, limit, total),
		})
		return
	}

	results, err := wc.store.SearchGlobal(c.Query("search"), words.SearchOptions{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondInternalError(c, err, "search words")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"words":      results,
		"pagination": newPagination(page, limit, int64(len(results))),
	})
}

// GetWord returns a single word with its owner's fields.
// GET /api/words/:wordId
func (wc *WordsController) GetWord(c *gin.Context) {
	word, err := wc.store.GetByID(c.Param("wordId"))
	if err != nil {
		respondInternalError(c, err, "get word")
		return
	}
	if word == nil {
		respondNotFound(c, "word")
		return
	}

	c.JSON(http.StatusOK, word)
}

// UpdateWord overwrites a word's content fields.
// PUT /api/words/:wordId
func (wc *WordsController) UpdateWord(c *gin.Context) {
	wordID := c.Param("wordId")

	existing, err := wc.store.GetByID(wordID)
	if err != nil {
		respondInternalError(c, err, "get word")
		return
	}
	if existing == nil {
		respondNotFound(c, "word")
		return
	}

	var req UpdateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing required fields: word, meaning, sentence")
		return
	}

	word, err := wc.store.Update(wordID, words.WordInput{
		Word:     req.Word,
		Meaning:  req.Meaning,
		Sentence: req.Sentence,
		Category: req.Category,
	})
	if err != nil {
		respondInternalError(c, err, "update word")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "word updated successfully",
		"word":    word,
	})
}

// DeleteWord removes a word.
// DELETE /api/words/:wordId
func (wc *WordsController) DeleteWord(c *gin.Context) {
	wordID := c.Param("wordId")

	existing, err := wc.store.GetByID(wordID)
	if err != nil {
		respondInternalError(c, err, "get word")
		return
	}
	if existing == nil {
		respondNotFound(c, "word")
		return
	}

	if err := wc.store.Delete(wordID); err != nil {
		respondInternalError(c, err, "delete word")
		return
	}

	respondSuccess(c, "word deleted successfully")
}

// StatsOverview returns global word statistics.
// GET /api/words/stats/overview
func (wc *WordsController) StatsOverview(c *gin.Context) {
	stats, err := wc.store.GetStats()
	if err != nil {
		respondInternalError(c, err, "get stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListCategories returns the category catalog with word counts.
// GET /api/words/categories/list
func (wc *WordsController) ListCategories(c *gin.Context) {
	categories, err := wc.store.GetCategories()
	if err != nil {
		respondInternalError(c, err, "get categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// SearchGlobalWords searches words across all users.
// GET /api/words/search/global
func (wc *WordsController) SearchGlobalWords(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if len(term) < 2 {
		respondBadRequest(c, "search term must be at least 2 characters")
		return
	}

	limit := parsePositiveInt(c, "limit", 20)

	results, err := wc.store.SearchGlobal(term, words.SearchOptions{Limit: limit})
	if err != nil {
		respondInternalError(c, err, "search words")
		return
	}

	c.JSON(http.StatusOK, results)
}
