package domain

import "time"

// Preset is a reusable template of generation parameters, grouped by
// category. Field names match the on-disk collection format.
type Preset struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Model      string     `json:"model"`
	Prompt     string     `json:"prompt"`
	Size       string     `json:"size,omitempty"`
	Quality    string     `json:"quality,omitempty"`
	Style      string     `json:"style,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	UsageCount int        `json:"usageCount"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
}
