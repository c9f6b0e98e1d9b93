package domain

import (
	"context"
	"errors"
)

type Service interface {
	List(ctx context.Context) ([]Preset, error)
	Categories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]Preset, error)
	Create(ctx context.Context, req CreateRequest) (*Preset, error)
	Update(ctx context.Context, req UpdateRequest) (*Preset, error)
	Delete(ctx context.Context, id string) error
	IncrementUsage(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Preset, error)
}

type CreateRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Model    string `json:"model"`
	Prompt   string `json:"prompt"`
	Size     string `json:"size"`
	Quality  string `json:"quality"`
	Style    string `json:"style"`
	Notes    string `json:"notes"`
}

// UpdateRequest carries a partial update. Nil fields are left untouched;
// id and createdAt are not part of the payload, so they can never change.
type UpdateRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Model    *string `json:"model,omitempty"`
	Prompt   *string `json:"prompt,omitempty"`
	Size     *string `json:"size,omitempty"`
	Quality  *string `json:"quality,omitempty"`
	Style    *string `json:"style,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

const DefaultCategory = "General"

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidModel  = errors.New("invalid_model")
	ErrInvalidPrompt = errors.New("invalid_prompt")
	ErrInvalidID     = errors.New("invalid_id")
	ErrDuplicateName = errors.New("duplicate_name")
	ErrNotFound      = errors.New("not_found")
)
