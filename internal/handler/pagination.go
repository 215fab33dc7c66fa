package handler

import (
	"math"
	"strconv"

	"tokobagus/internal/domain"

	"github.com/gin-gonic/gin"
)

type pagination struct {
	Page   int
	Limit  int
	Offset int
}

// parsePagination reads page and limit. Missing, unparsable or non-positive
// values fall back to the defaults; limit is capped at maxLimit when positive
// and page is capped so the offset cannot overflow.
func parsePagination(c *gin.Context, maxLimit int) pagination {
	page := positiveInt(c.Query("page"), domain.DefaultPage)
	limit := positiveInt(c.Query("limit"), domain.DefaultLimit)
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// parseID reads a numeric path id. Anything else matches no row.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
