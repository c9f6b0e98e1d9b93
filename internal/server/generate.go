package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/pictora/internal/gallery"
	"github.com/smallbiznis/pictora/internal/imageapi"
	"github.com/smallbiznis/pictora/internal/pricing"
	usagedomain "github.com/smallbiznis/pictora/internal/usage/domain"
	"go.uber.org/zap"
)

const maxImagesPerRequest = 10

type generateRequest struct {
	Model    string `json:"model"`
	Prompt   string `json:"prompt"`
	Size     string `json:"size"`
	Quality  string `json:"quality"`
	Style    string `json:"style"`
	N        int    `json:"n"`
	PresetID string `json:"preset_id"`
}

type editRequest struct {
	Filename string `json:"filename"`
	Prompt   string `json:"prompt"`
	Model    string `json:"model"`
	Size     string `json:"size"`
	N        int    `json:"n"`
}

type savedImage struct {
	Filename      string `json:"filename"`
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

func (s *Server) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	presetName := ""
	if req.PresetID != "" {
		preset, err := s.presets.GetByID(ctx, req.PresetID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		presetName = preset.Name
		if req.Model == "" {
			req.Model = preset.Model
		}
		if req.Prompt == "" {
			req.Prompt = preset.Prompt
		}
		if req.Size == "" {
			req.Size = preset.Size
		}
		if req.Quality == "" {
			req.Quality = preset.Quality
		}
		if req.Style == "" {
			req.Style = preset.Style
		}
		if err := s.presets.IncrementUsage(ctx, req.PresetID); err != nil {
			s.log.Warn("increment preset usage", zap.String("preset_id", req.PresetID), zap.Error(err))
		}
	}

	if req.Model == "" {
		req.Model = pricing.ModelDallE3
	}
	if req.Size == "" {
		req.Size = "1024x1024"
	}
	if req.Quality == "" {
		req.Quality = pricing.QualityStandard
	}
	if req.N <= 0 {
		req.N = 1
	}
	if req.N > maxImagesPerRequest {
		req.N = maxImagesPerRequest
	}
	if req.Prompt == "" {
		AbortWithError(c, newValidationError("prompt", "invalid_prompt", "prompt is required"))
		return
	}

	style := ""
	if req.Model == pricing.ModelDallE3 {
		style = req.Style
	}

	result, err := s.images.Generate(ctx, imageapi.GenerateRequest{
		Model:   req.Model,
		Prompt:  req.Prompt,
		Size:    req.Size,
		Quality: req.Quality,
		Style:   style,
		N:       req.N,
	})
	if err != nil {
		s.usage.Track(ctx, usagedomain.TrackRequest{
			Model:        req.Model,
			Operation:    usagedomain.OperationGeneration,
			Size:         req.Size,
			Quality:      req.Quality,
			Style:        style,
			N:            req.N,
			Prompt:       req.Prompt,
			PresetName:   presetName,
			Success:      false,
			ErrorMessage: err.Error(),
		})
		AbortWithError(c, err)
		return
	}

	count := len(result.Images)
	cost := s.pricing.Calculate(req.Model, req.Size, req.Quality, count)
	s.metrics.ObserveGeneration(req.Model, count, cost)
	s.usage.Track(ctx, usagedomain.TrackRequest{
		Model:      req.Model,
		Operation:  usagedomain.OperationGeneration,
		Size:       req.Size,
		Quality:    req.Quality,
		Style:      style,
		N:          count,
		Cost:       cost,
		Prompt:     req.Prompt,
		PresetName: presetName,
		Success:    true,
	})

	saved := s.saveAll(result.Images, gallery.Metadata{
		Model:      req.Model,
		Prompt:     req.Prompt,
		Size:       req.Size,
		Quality:    req.Quality,
		Style:      style,
		Operation:  usagedomain.OperationGeneration,
		PresetName: presetName,
	})

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"images":         saved,
		"count":          count,
		"cost":           cost,
		"formatted_cost": pricing.Format(cost),
	}})
}

func (s *Server) EditImage(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Model == "" {
		req.Model = pricing.ModelDallE2
	}
	if req.Size == "" {
		req.Size = "1024x1024"
	}
	if req.N <= 0 {
		req.N = 1
	}
	if req.N > maxImagesPerRequest {
		req.N = maxImagesPerRequest
	}
	if req.Prompt == "" {
		AbortWithError(c, newValidationError("prompt", "invalid_prompt", "prompt is required"))
		return
	}

	ctx := c.Request.Context()
	source, err := s.gallery.Read(req.Filename)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.images.Edit(ctx, imageapi.EditRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Size:   req.Size,
		Image:  source,
		N:      req.N,
	})
	if err != nil {
		s.usage.Track(ctx, usagedomain.TrackRequest{
			Model:        req.Model,
			Operation:    usagedomain.OperationEdit,
			Size:         req.Size,
			N:            req.N,
			Prompt:       req.Prompt,
			Success:      false,
			ErrorMessage: err.Error(),
		})
		AbortWithError(c, err)
		return
	}

	count := len(result.Images)
	cost := s.pricing.Calculate(req.Model, req.Size, "", count)
	s.metrics.ObserveGeneration(req.Model, count, cost)
	s.usage.Track(ctx, usagedomain.TrackRequest{
		Model:     req.Model,
		Operation: usagedomain.OperationEdit,
		Size:      req.Size,
		N:         count,
		Cost:      cost,
		Prompt:    req.Prompt,
		Success:   true,
	})

	saved := s.saveAll(result.Images, gallery.Metadata{
		Model:     req.Model,
		Prompt:    req.Prompt,
		Size:      req.Size,
		Operation: usagedomain.OperationEdit,
	})

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"images":         saved,
		"count":          count,
		"cost":           cost,
		"formatted_cost": pricing.Format(cost),
	}})
}

// saveAll persists each returned image. A failed save is logged and the
// response carries whatever did land on disk.
func (s *Server) saveAll(images []imageapi.Image, meta gallery.Metadata) []savedImage {
	saved := make([]savedImage, 0, len(images))
	for _, img := range images {
		m := meta
		m.RevisedPrompt = img.RevisedPrompt
		stored, err := s.gallery.Save(img.Data, m)
		if err != nil {
			s.log.Warn("save generated image", zap.Error(err))
			continue
		}
		saved = append(saved, savedImage{
			Filename:      stored.Filename,
			URL:           "/images/" + stored.Filename,
			RevisedPrompt: img.RevisedPrompt,
		})
	}
	return saved
}
