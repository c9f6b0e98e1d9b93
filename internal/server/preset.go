package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	presetdomain "github.com/smallbiznis/pictora/internal/preset/domain"
)

func (s *Server) ListPresets(c *gin.Context) {
	presets, err := s.presets.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": presets})
}

func (s *Server) ListPresetCategories(c *gin.Context) {
	categories, err := s.presets.Categories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (s *Server) ListPresetsByCategory(c *gin.Context) {
	presets, err := s.presets.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": presets})
}

func (s *Server) CreatePreset(c *gin.Context) {
	var req presetdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	preset, err := s.presets.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": preset})
}

func (s *Server) UpdatePreset(c *gin.Context) {
	var req presetdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	// The id comes from the route, never from the payload.
	req.ID = c.Param("id")

	preset, err := s.presets.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": preset})
}

func (s *Server) DeletePreset(c *gin.Context) {
	if err := s.presets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) UsePreset(c *gin.Context) {
	if err := s.presets.IncrementUsage(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"recorded": true}})
}
