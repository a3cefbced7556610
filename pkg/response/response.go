package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// Success writes a 200 with the payload wrapped in "data".
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 with the payload wrapped in "data".
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// Paginated writes a 200 list response with paging metadata.
func Paginated(c *gin.Context, data any, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Error maps a domain error to its HTTP status. Anything unclassified is a
// 500 with a generic body; the cause stays server-side.
func Error(c *gin.Context, err error) {
	code, ok := domain.CodeOf(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var status int
	switch code {
	case domain.CodeValidation, domain.CodeRange:
		status = http.StatusBadRequest
	case domain.CodeNotFound:
		status = http.StatusNotFound
	case domain.CodeConflict:
		status = http.StatusConflict
	case domain.CodePolicy:
		status = http.StatusUnprocessableEntity
	case domain.CodeUnauthorized:
		status = http.StatusForbidden
	default:
		status = http.StatusInternalServerError
	}

	message := "internal server error"
	var de *domain.DomainError
	if errors.As(err, &de) {
		message = de.Message
	}
	c.JSON(status, gin.H{"error": message, "code": string(code)})
}
