package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/pictora/internal/pricing"
)

type estimateRequest struct {
	Model   string `json:"model"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	N       int    `json:"n"`
}

func (s *Server) PricingForModel(c *gin.Context) {
	model := c.Param("model")
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"model":   model,
		"pricing": s.pricing.ForModel(model),
	}})
}

func (s *Server) EstimateCost(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.N <= 0 {
		req.N = 1
	}

	cost := s.pricing.Calculate(req.Model, req.Size, req.Quality, req.N)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"cost":      cost,
		"formatted": pricing.Format(cost),
	}})
}
