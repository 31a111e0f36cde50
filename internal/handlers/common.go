package handlers

import (
	"net/http"
	"strconv"

	"gestion_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// parseIDParam reads a positive int64 path parameter. On failure it writes a
// 400 response and returns ok=false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	idStr := c.Param(name)
	id, err := utils.StrToInt64(idStr)
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", idStr))
		return 0, false
	}
	return id, true
}

// parsePagination reads page/page_size query parameters with defaults. On
// failure it writes a 400 response and returns ok=false.
func parsePagination(c *gin.Context) (page, pageSize int, ok bool) {
	page = defaultPage
	pageSize = defaultPageSize

	if pageStr := c.Query("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p <= 0 {
			utils.RespondValidationFailed(c, "page must be a positive integer")
			return 0, 0, false
		}
		page = p
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps <= 0 {
			utils.RespondValidationFailed(c, "page_size must be a positive integer")
			return 0, 0, false
		}
		pageSize = ps
	}
	return page, pageSize, true
}

// currentUserID returns the authenticated user's ID when the auth middleware
// has populated the context, nil otherwise.
func currentUserID(c *gin.Context) *int64 {
	value, exists := c.Get("userID")
	if !exists {
		return nil
	}
	userID, ok := value.(int64)
	if !ok {
		return nil
	}
	return &userID
}

// paginatedResponse is the standard list envelope.
func paginatedResponse(c *gin.Context, data interface{}, total, page, pageSize int) {
	c.JSON(http.StatusOK, gin.H{
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
