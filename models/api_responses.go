package models

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitKey is the gin context key the rate limiter stores its state under.
const RateLimitKey = "rateLimiter"

type ApiResponse struct {
	Message         string       `json:"message"`
	Data            any          `json:"data,omitempty"`
	Error           bool         `json:"error,omitempty"`
	Meta            *CursorMeta  `json:"meta,omitempty"`
	Rate            *RateLimiter `json:"rate_limit,omitempty"`
	RequestedEntity string       `json:"requested_entity,omitempty"`
}

// CursorMeta describes one page of a cursor-paginated listing. Pass
// EndCursor back as ?after to fetch the next page.
type CursorMeta struct {
	PageSize    int    `json:"page_size" example:"48"`
	Count       int    `json:"count" example:"12"`
	HasNextPage bool   `json:"has_next_page" example:"true"`
	EndCursor   string `json:"end_cursor,omitempty" example:"eyJsYXN0X2lkIjo3fQ=="`
}

func NewCursorMeta(pageSize, count int, page PageInfo) *CursorMeta {
	return &CursorMeta{
		PageSize:    pageSize,
		Count:       count,
		HasNextPage: page.HasNextPage,
		EndCursor:   page.EndCursor,
	}
}

type RateLimiter struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

func getRateFromContext(c *gin.Context) *RateLimiter {
	if c == nil {
		return nil
	}
	if rate, exists := c.Get(RateLimitKey); exists {
		if rl, ok := rate.(*RateLimiter); ok {
			return rl
		}
	}
	return nil
}

func requestedEntity(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return ""
	}
	return c.Request.Method + " " + c.FullPath()
}

func SuccessResponse(c *gin.Context, message string, data any) ApiResponse {
	return ApiResponse{
		Message:         message,
		Data:            data,
		Rate:            getRateFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}

// PaginatedResponse is SuccessResponse plus the cursor of the page.
func PaginatedResponse(c *gin.Context, message string, data any, meta *CursorMeta) ApiResponse {
	resp := SuccessResponse(c, message, data)
	resp.Meta = meta
	return resp
}

func ErrorResponse(c *gin.Context, message string) ApiResponse {
	return ApiResponse{
		Message:         message,
		Error:           true,
		Rate:            getRateFromContext(c),
		RequestedEntity: requestedEntity(c),
	}
}
