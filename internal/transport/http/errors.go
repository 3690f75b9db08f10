package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// writeError maps domain errors onto status codes. Anything else is a 500.
func writeError(c *gin.Context, err error) {
	var domainErr domain.Error
	if !errors.As(err, &domainErr) {
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := http.StatusBadRequest
	switch domainErr {
	case domain.ErrGameNotFound:
		status = http.StatusNotFound
	case domain.ErrGameOver, domain.ErrNotYourTurn, domain.ErrColumnFull:
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": domainErr.Error()})
}
