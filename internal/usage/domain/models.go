package domain

// Operation labels on a usage record.
const (
	OperationGeneration = "generation"
	OperationEdit       = "edit"
	OperationVariation  = "variation"
)

// Record is one immutable ledger entry describing a generation or edit
// attempt. Timestamps are ISO-8601 strings so window filters can compare
// them lexically, exactly as they sit on disk.
type Record struct {
	ID            string  `json:"id"`
	Timestamp     string  `json:"timestamp"`
	Model         *string `json:"model"`
	Operation     string  `json:"operation"`
	Size          *string `json:"size"`
	Quality       *string `json:"quality"`
	Style         *string `json:"style"`
	N             int     `json:"n"`
	Cost          float64 `json:"cost"`
	PromptPreview *string `json:"prompt_preview"`
	PresetName    *string `json:"preset_name"`
	Success       bool    `json:"success"`
	ErrorMessage  *string `json:"error_message,omitempty"`
}

// Stats aggregates successful records.
type Stats struct {
	TotalImages    int     `json:"total_images"`
	TotalGenerated int     `json:"total_generated"`
	TotalCost      float64 `json:"total_cost"`
	AvgCost        float64 `json:"avg_cost"`
}

// ModelStats aggregates successful records for one model.
type ModelStats struct {
	Model           string  `json:"model"`
	Count           int     `json:"count"`
	ImagesGenerated int     `json:"images_generated"`
	TotalCost       float64 `json:"total_cost"`
	AvgCost         float64 `json:"avg_cost"`
}

// SessionStats covers the current calendar day.
type SessionStats struct {
	TotalRequests   int     `json:"total_requests"`
	ImagesGenerated int     `json:"images_generated"`
	TotalCost       float64 `json:"total_cost"`
}

// Window bounds a query by inclusive ISO-8601 timestamps. Empty bounds are
// open.
type Window struct {
	Start string
	End   string
}

// Contains reports whether ts falls inside the window. ISO-8601 sorts
// lexically, so plain string comparison is correct.
func (w Window) Contains(ts string) bool {
	if w.Start != "" && ts < w.Start {
		return false
	}
	if w.End != "" && ts > w.End {
		return false
	}
	return true
}

// ExportRow is a ledger record reshaped for tabular presentation.
type ExportRow struct {
	DateTime      string  `json:"date_time"`
	Model         string  `json:"model"`
	Operation     string  `json:"operation"`
	Size          string  `json:"size"`
	Quality       string  `json:"quality"`
	NumImages     int     `json:"num_images"`
	Cost          float64 `json:"cost"`
	PromptPreview string  `json:"prompt_preview"`
	PresetName    string  `json:"preset_name"`
	Success       string  `json:"success"`
}
