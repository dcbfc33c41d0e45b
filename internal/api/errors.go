package api

import (
	"errors"
	"log"
	"net/http"

	"partnerhub/internal/service"
	wire "partnerhub/pkg/models"

	"github.com/gin-gonic/gin"
)

// classify maps a service error to its HTTP status and error code.
func classify(err error) (int, wire.ErrorCode) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, wire.CodeNotFound
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict, wire.CodeAlreadyExists
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, wire.CodeUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, wire.CodeForbidden
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, wire.CodeInvalidInput
	case errors.Is(err, service.ErrRecipientNotApproved):
		return http.StatusUnprocessableEntity, wire.CodeRecipientNotApproved
	case errors.Is(err, service.ErrNotConfigured):
		return http.StatusPreconditionFailed, wire.CodeNotConfigured
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, wire.CodeUpstream
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, wire.CodeRateLimited
	default:
		return http.StatusInternalServerError, wire.CodeInternal
	}
}

func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		log.Printf("Error handling %s: %v", c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": code})
}

// bindJSON decodes the request body into req, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": wire.CodeInvalidInput})
		return false
	}
	return true
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
