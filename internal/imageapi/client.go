// Package imageapi calls the external image-generation service.
package imageapi

import (
	"context"
	"errors"
)

// GenerateRequest describes one generation call.
type GenerateRequest struct {
	Model   string
	Prompt  string
	Size    string
	Quality string
	Style   string
	N       int
}

// EditRequest describes one edit call against an existing image.
type EditRequest struct {
	Model  string
	Prompt string
	Size   string
	Image  []byte
	N      int
}

// Image is a single returned image, already transport-decoded to raw bytes.
type Image struct {
	Data          []byte
	RevisedPrompt string
}

// Result is the outcome of a generation or edit call.
type Result struct {
	Images []Image
}

// Client is the outbound boundary to the image service. One attempt per
// call; retry policy belongs to the caller's collaborators, not here.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (*Result, error)
	Edit(ctx context.Context, req EditRequest) (*Result, error)
}

// APIError carries the upstream status and message so handlers can relay
// them.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// AsAPIError unwraps err into an APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
