package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is a standard success response with an optional message.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Pagination is the metadata envelope returned with paginated listings.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func newPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: message})
}

// --- Parameter Parsing ---

// parsePositiveInt parses a query parameter as a positive integer, falling
// back to def when missing or invalid.
func parsePositiveInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return def
	}
	return value
}

// parsePage returns the page/limit pair with the offset computed from them.
func parsePage(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page = parsePositiveInt(c, "page", 1)
	limit = parsePositiveInt(c, "limit", defaultLimit)
	offset = (page - 1) * limit
	return page, limit, offset
}

// sortOptions maps the API-level sort keys to repository sort parameters.
type sortOptions struct {
	SortBy    string
	SortOrder string
}

var listSortKeys = map[string]sortOptions{
	"newest": {SortBy: "creation_date", SortOrder: "desc"},
	"oldest": {SortBy: "creation_date", SortOrder: "asc"},
	"aToZ":   {SortBy: "word", SortOrder: "asc"},
	"zToA":   {SortBy: "word", SortOrder: "desc"},
}

// parseListSort maps the sort query parameter to repository sort options,
// defaulting to newest-first.
func parseListSort(c *gin.Context) sortOptions {
	opts, ok := listSortKeys[c.Query("sort")]
	if !ok {
		return listSortKeys["newest"]
	}
	return opts
}
