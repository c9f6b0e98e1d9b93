package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListImages(c *gin.Context) {
	entries, err := s.gallery.List()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (s *Server) DeleteImage(c *gin.Context) {
	if err := s.gallery.Delete(c.Param("filename")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
