package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msbuild-skills/msbuild-expert/engine/gateway"
)

// HealthPath is the liveness endpoint.
const HealthPath = "/health"

func registerRoutes(r *gin.Engine, s *Server, p gateway.Processor) {
	r.GET(HealthPath, healthHandler(s))
	gateway.Register(r, p)
	if s.monitoring.IsInitialized() {
		r.GET(s.monitoring.Path(), gin.WrapH(s.monitoring.ExporterHandler()))
	}
	r.NoRoute(notFound)
	r.NoMethod(notFound)
}

func healthHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"knowledgeAreas": s.store.Names(),
		})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}
