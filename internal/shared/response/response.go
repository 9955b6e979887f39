package response

import (
	"out-of-office/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

// NewPaginationMeta rounds the page count up; a zero page size yields none.
func NewPaginationMeta(total int64, page, pageSize int) PaginationMeta {
	meta := PaginationMeta{Total: total, Page: page, PageSize: pageSize}
	if pageSize > 0 {
		meta.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return meta
}

// ListMeta describes an unpaged list as a single page.
func ListMeta(n int) *PaginationMeta {
	meta := NewPaginationMeta(int64(n), 1, n)
	return &meta
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type Envelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error *ErrorBody      `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, Envelope{Ok: true, Data: data, Meta: meta})
}

func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{Error: &ErrorBody{Code: code, Message: message, Details: details}})
}

// Fail writes an error already mapped to its HTTP form.
func Fail(c *gin.Context, e apperror.HTTPError) {
	Error(c, e.Status, e.Code, e.Message, e.Details)
}
