package server

import "github.com/gin-gonic/gin"

// envelope is the uniform response body. List endpoints attach Meta.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Meta    *meta  `json:"meta,omitempty"`
}

type meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	PrevPage   *int  `json:"prev_page"`
	NextPage   *int  `json:"next_page"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func newMeta(page, limit int, total int64) *meta {
	m := &meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		m.TotalPages = (total + int64(limit) - 1) / int64(limit)
	}
	if page > 1 {
		prev := page - 1
		m.PrevPage = &prev
	}
	if int64(page) < m.TotalPages {
		next := page + 1
		m.NextPage = &next
	}
	return m
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: status < 400, Message: message, Data: data})
}

func respondList(c *gin.Context, status int, message string, data any, m *meta) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data, Meta: m})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message, Data: nil})
}
