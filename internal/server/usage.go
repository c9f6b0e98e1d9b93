package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	usagedomain "github.com/smallbiznis/pictora/internal/usage/domain"
)

func windowFromQuery(c *gin.Context) usagedomain.Window {
	return usagedomain.Window{
		Start: c.Query("start_date"),
		End:   c.Query("end_date"),
	}
}

func limitFromQuery(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func (s *Server) UsageStats(c *gin.Context) {
	stats := s.usage.Stats(c.Request.Context(), windowFromQuery(c))
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (s *Server) SessionStats(c *gin.Context) {
	stats := s.usage.SessionStats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (s *Server) UsageByModel(c *gin.Context) {
	stats := s.usage.StatsByModel(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (s *Server) RecentUsage(c *gin.Context) {
	records := s.usage.Recent(c.Request.Context(), limitFromQuery(c, 0))
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (s *Server) ExportUsage(c *gin.Context) {
	rows := s.usage.Export(c.Request.Context(), windowFromQuery(c), limitFromQuery(c, 0))
	c.JSON(http.StatusOK, gin.H{"data": rows})
}
