// Package pricing computes image generation cost from published unit rates.
package pricing

import (
	"fmt"
	"math"
)

const (
	ModelGPTImage1 = "gpt-image-1"
	ModelDallE3    = "dall-e-3"
	ModelDallE2    = "dall-e-2"

	QualityStandard = "standard"
	QualityHigh     = "high"

	baselineSize = "1024x1024"
)

// Tables holds the per-model unit rates. Each model family is priced
// differently: gpt-image-1 by quality tier, dall-e-3 by (size, quality),
// dall-e-2 by size alone.
type Tables struct {
	GPTImage1 map[string]float64            `mapstructure:"gpt_image_1" yaml:"gpt_image_1"`
	DallE3    map[string]map[string]float64 `mapstructure:"dall_e_3" yaml:"dall_e_3"`
	DallE2    map[string]float64            `mapstructure:"dall_e_2" yaml:"dall_e_2"`

	// UnknownModelUnit is the conservative flat rate for models outside the
	// tables.
	UnknownModelUnit float64 `mapstructure:"unknown_model_unit" yaml:"unknown_model_unit"`
}

// Default returns the compiled-in rate tables.
func Default() Tables {
	return Tables{
		GPTImage1: map[string]float64{
			"low":    0.02,
			"medium": 0.07,
			"high":   0.19,
		},
		DallE3: map[string]map[string]float64{
			"1024x1024": {"standard": 0.04, "hd": 0.08},
			"1024x1792": {"standard": 0.08, "hd": 0.12},
			"1792x1024": {"standard": 0.08, "hd": 0.12},
		},
		DallE2: map[string]float64{
			"256x256":   0.016,
			"512x512":   0.018,
			"1024x1024": 0.020,
		},
		UnknownModelUnit: 0.10,
	}
}

// Calculate returns the total cost for n images, rounded to 4 decimal
// places. It is total: unknown sizes, qualities and models fall back to
// conservative defaults instead of failing.
func (t Tables) Calculate(model, size, quality string, n int) float64 {
	if quality == "" {
		quality = QualityStandard
	}
	if n <= 0 {
		n = 1
	}

	var unit float64
	switch model {
	case ModelGPTImage1:
		var ok bool
		if unit, ok = t.GPTImage1[quality]; !ok {
			unit = t.GPTImage1[QualityHigh]
		}
	case ModelDallE3:
		if bySize, ok := t.DallE3[size]; ok {
			if unit, ok = bySize[quality]; !ok {
				unit = bySize[QualityStandard]
			}
		} else {
			unit = t.DallE3[baselineSize][QualityStandard]
		}
	case ModelDallE2:
		var ok bool
		if unit, ok = t.DallE2[size]; !ok {
			unit = t.DallE2[baselineSize]
		}
	default:
		unit = t.UnknownModelUnit
	}

	return math.Round(unit*float64(n)*10000) / 10000
}

// ForModel exposes the raw rate table for one model. Unknown models map to
// an empty table.
func (t Tables) ForModel(model string) map[string]any {
	switch model {
	case ModelGPTImage1:
		out := make(map[string]any, len(t.GPTImage1))
		for quality, unit := range t.GPTImage1 {
			out[quality] = unit
		}
		return out
	case ModelDallE3:
		out := make(map[string]any, len(t.DallE3))
		for size, bySize := range t.DallE3 {
			out[size] = bySize
		}
		return out
	case ModelDallE2:
		out := make(map[string]any, len(t.DallE2))
		for size, unit := range t.DallE2 {
			out[size] = unit
		}
		return out
	default:
		return map[string]any{}
	}
}

// Format renders a cost with the currency prefix, e.g. "$0.040".
func Format(cost float64) string {
	return fmt.Sprintf("$%.3f", cost)
}
