package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexicology/internal/database/users"
	"github.com/mrlokans/lexicology/internal/database/words"
	"github.com/mrlokans/lexicology/internal/entities"
)

// UserStore defines database operations for user management.
type UserStore interface {
	Create(input users.UserInput) (*entities.User, error)
	GetByID(id string) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
	Update(id string, input users.UserInput) (*entities.User, error)
	Delete(id string) error
	GetAll() ([]entities.User, error)
	GetCategories(userID string) ([]entities.CategoryWithIcon, error)
	GetStats(userID string) (*entities.UserStats, error)
}

type UsersController struct {
	store     UserStore
	wordStore WordStore
}

func NewUsersController(store UserStore, wordStore WordStore) *UsersController {
	return &UsersController{
		store:     store,
		wordStore: wordStore,
	}
}

// UserRequest is the request body for creating and updating users.
type UserRequest struct {
	FirstName  string   `json:"firstName" binding:"required"`
	LastName   string   `json:"lastName" binding:"required"`
	Email      *string  `json:"email"`
	BirthDate  string   `json:"birthDate" binding:"required"`
	Categories []string `json:"categories"`
}

func (req UserRequest) toInput() users.UserInput {
	email := req.Email
	if email != nil && *email == "" {
		email = nil
	}
	return users.UserInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      email,
		BirthDate:  req.BirthDate,
		Categories: req.Categories,
	}
}

// Signup creates a new user.
// POST /api/users/signup
func (uc *UsersController) Signup(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing required fields: firstName, lastName, birthDate")
		return
	}

	input := req.toInput()

	// The unique index would reject the insert anyway; checking first gives
	// the client a friendlier conflict response.
	if input.Email != nil {
		existing, err := uc.store.GetByEmail(*input.Email)
		if err != nil {
			respondInternalError(c, err, "check email")
			return
		}
		if existing != nil {
			respondConflict(c, "email already registered")
			return
		}
	}

	user, err := uc.store.Create(input)
	if err != nil {
		respondInternalError(c, err, "create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "user created successfully",
		"user":    user,
	})
}

// GetUser returns a user's profile with linked categories and usage stats.
// GET /api/users/:userId
func (uc *UsersController) GetUser(c *gin.Context) {
	userID := c.Param("userId")

	user, err := uc.store.GetByID(userID)
	if err != nil {
		respondInternalError(c, err, "get user")
		return
	}
	if user == nil {
		respondNotFound(c, "user")
		return
	}

	categories, err := uc.store.GetCategories(userID)
	if err != nil {
		respondInternalError(c, err, "get user categories")
		return
	}

	stats, err := uc.store.GetStats(userID)
	if err != nil {
		respondInternalError(c, err, "get user stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"categories": categories,
		"stats":      stats,
	})
}

// UpdateUser overwrites a user's profile and category memberships.
// PUT /api/users/:userId
func (uc *UsersController) UpdateUser(c *gin.Context) {
	userID := c.Param("userId")

	existing, err := uc.store.GetByID(userID)
	if err != nil {
		respondInternalError(c, err, "get user")
		return
	}
	if existing == nil {
		respondNotFound(c, "user")
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "missing required fields: firstName, lastName, birthDate")
		return
	}

	input := req.toInput()

	if input.Email != nil && (existing.Email == nil || *existing.Email != *input.Email) {
		withEmail, err := uc.store.GetByEmail(*input.Email)
		if err != nil {
			respondInternalError(c, err, "check email")
			return
		}
		if withEmail != nil && withEmail.ID != userID {
			respondConflict(c, "email already in use")
			return
		}
	}

	user, err := uc.store.Update(userID, input)
	if err != nil {
		respondInternalError(c, err, "update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "user updated successfully",
		"user":    user,
	})
}

// DeleteUser removes a user. Their words and memberships cascade away.
// DELETE /api/users/:userId
func (uc *UsersController) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")

	existing, err := uc.store.GetByID(userID)
	if err != nil {
		respondInternalError(c, err, "get user")
		return
	}
	if existing == nil {
		respondNotFound(c, "user")
		return
	}

	if err := uc.store.Delete(userID); err != nil {
		respondInternalError(c, err, "delete user")
		return
	}

	respondSuccess(c, "user deleted successfully")
}

// ListUsers returns all users, newest first.
// GET /api/users
func (uc *UsersController) ListUsers(c *gin.Context) {
	all, err := uc.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": all})
}

// GetUserWords returns the user's words with search, filtering, sorting and
// pagination, plus per-category counts.
// GET /api/users/:userId/words
func (uc *UsersController) GetUserWords(c *gin.Context) {
	userID := c.Param("userId")
	sort := parseListSort(c)
	page, limit, offset := parsePage(c, 20)

	results, err := uc.wordStore.FindByUser(userID, words.FindOptions{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		SortBy:    sort.SortBy,
		SortOrder: sort.SortOrder,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respondInternalError(c, err, "list user words")
		return
	}

	total, err := uc.wordStore.CountForUser(userID)
	if err != nil {
		respondInternalError(c, err, "count user words")
		return
	}

	categories, err := uc.wordStore.GetUserCategories(userID)
	if err != nil {
		respondInternalError(c, err, "get user word categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"words":      results,
		"pagination": newPagination(page, limit, total),
		"categories": categories,
	})
}

// GetUserStats returns the user's aggregate stats, category counts and the
// five most recent words.
// GET /api/users/:userId/stats
func (uc *UsersController) GetUserStats(c *gin.Context) {
	userID := c.Param("userId")

	stats, err := uc.store.GetStats(userID)
	if err != nil {
		respondInternalError(c, err, "get user stats")
		return
	}

	categories, err := uc.wordStore.GetUserCategories(userID)
	if err != nil {
		respondInternalError(c, err, "get user word categories")
		return
	}

	recent, err := uc.wordStore.GetRecent(userID, 5)
	if err != nil {
		respondInternalError(c, err, "get recent words")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":       stats,
		"categories":  categories,
		"recentWords": recent,
	})
}

// GetAllCategories returns the category catalog with word counts.
// GET /api/users/categories/all
func (uc *UsersController) GetAllCategories(c *gin.Context) {
	categories, err := uc.wordStore.GetCategories()
	if err != nil {
		respondInternalError(c, err, "get categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}
