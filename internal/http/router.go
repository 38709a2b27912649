package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexicology/internal/database"
)

// RouterConfig carries every dependency the router needs, improving
// testability and reducing parameter count.
type RouterConfig struct {
	UserStore UserStore
	WordStore WordStore
	Database  *database.Database
	Version   string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	usersController := NewUsersController(cfg.UserStore, cfg.WordStore)
	wordsController := NewWordsController(cfg.WordStore, cfg.UserStore)
	healthController := NewHealthController(cfg.Database, cfg.Version)

	router.GET("/health", healthController.Status)

	api := router.Group("/api")

	userRoutes := api.Group("/users")
	{
		userRoutes.POST("/signup", usersController.Signup)
		userRoutes.GET("", usersController.ListUsers)
		userRoutes.GET("/categories/all", usersController.GetAllCategories)
		userRoutes.GET("/:userId", usersController.GetUser)
		userRoutes.PUT("/:userId", usersController.UpdateUser)
		userRoutes.DELETE("/:userId", usersController.DeleteUser)
		userRoutes.GET("/:userId/words", usersController.GetUserWords)
		userRoutes.GET("/:userId/stats", usersController.GetUserStats)
	}

	wordRoutes := api.Group("/words")
	{
		wordRoutes.POST("", wordsController.CreateWord)
		wordRoutes.GET("", wordsController.ListWords)
		wordRoutes.GET("/stats/overview", wordsController.StatsOverview)
		wordRoutes.GET("/categories/list", wordsController.ListCategories)
		wordRoutes.GET("/search/global", wordsController.SearchGlobalWords)
		wordRoutes.GET("/:wordId", wordsController.GetWord)
		wordRoutes.PUT("/:wordId", wordsController.UpdateWord)
		wordRoutes.DELETE("/:wordId", wordsController.DeleteWord)
	}

	return router
}
