package imageapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/smallbiznis/pictora/internal/config"
	"go.uber.org/zap"
)

const (
	requestTimeout   = 2 * time.Minute
	maxImagesPerCall = 10
)

type openAIClient struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     *zap.Logger
}

// NewOpenAI builds the OpenAI-backed client.
func NewOpenAI(cfg config.Config, log *zap.Logger) Client {
	return &openAIClient{
		baseURL: cfg.OpenAIBaseURL,
		apiKey:  cfg.OpenAIAPIKey,
		httpc:   &http.Client{Timeout: requestTimeout},
		log:     log.Named("imageapi"),
	}
}

type generationPayload struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size,omitempty"`
	Quality        string `json:"quality,omitempty"`
	Style          string `json:"style,omitempty"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type imagesResponse struct {
	Data []struct {
		B64JSON       string `json:"b64_json"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	n := req.N
	if n <= 0 {
		n = 1
	}
	if n > maxImagesPerCall {
		n = maxImagesPerCall
	}
	// dall-e-3 only accepts a single image per request.
	if req.Model == "dall-e-3" {
		n = 1
	}

	payload := generationPayload{
		Model:  req.Model,
		Prompt: req.Prompt,
		Size:   req.Size,
		N:      n,
	}
	switch req.Model {
	case "dall-e-3":
		payload.Quality = req.Quality
		payload.Style = req.Style
		payload.ResponseFormat = "b64_json"
	case "gpt-image-1":
		payload.Quality = req.Quality
	default:
		payload.ResponseFormat = "b64_json"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq)
}

func (c *openAIClient) Edit(ctx context.Context, req EditRequest) (*Result, error) {
	n := req.N
	if n <= 0 {
		n = 1
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "image.png")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(req.Image); err != nil {
		return nil, err
	}
	_ = mw.WriteField("model", req.Model)
	_ = mw.WriteField("prompt", req.Prompt)
	if req.Size != "" {
		_ = mw.WriteField("size", req.Size)
	}
	_ = mw.WriteField("n", fmt.Sprintf("%d", n))
	if err := mw.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/edits", &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(httpReq)
}

func (c *openAIClient) do(httpReq *http.Request) (*Result, error) {
	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed imagesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("decode image response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		message := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			message = parsed.Error.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	result := &Result{Images: make([]Image, 0, len(parsed.Data))}
	for _, item := range parsed.Data {
		data, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode image payload: %w", err)
		}
		result.Images = append(result.Images, Image{
			Data:          data,
			RevisedPrompt: item.RevisedPrompt,
		})
	}
	return result, nil
}
