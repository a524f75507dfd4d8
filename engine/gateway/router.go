package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msbuild-skills/msbuild-expert/pkg/logger"
)

// Route is the chat extension endpoint.
const Route = "/api/copilot"

// Processor defines the minimal interface required by the HTTP router.
// It is implemented by Orchestrator.
type Processor interface {
	Process(ctx context.Context, r *http.Request) (Result, error)
}

// Register adds the chat extension endpoint to r.
func Register(r gin.IRoutes, p Processor) {
	r.POST(Route, func(c *gin.Context) {
		res, err := p.Process(c.Request.Context(), c.Request)
		if err != nil {
			writeError(c, res, err)
			return
		}
		c.PureJSON(res.Status, res.Payload)
	})
}

func writeError(c *gin.Context, res Result, err error) {
	switch {
	case errors.Is(err, ErrAbandoned):
		// net/http closes the connection without writing a response
		c.Abort()
		panic(http.ErrAbortHandler)
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
	case errors.Is(err, ErrInvalidJSON):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
	case errors.Is(err, ErrNoUserMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No user message found"})
	case errors.Is(err, ErrPayloadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Payload too large"})
	default:
		logger.FromContext(c.Request.Context()).Error("Request processing failed", "error", err, "status", res.Status)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
