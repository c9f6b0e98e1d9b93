package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smallbiznis/pictora/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCalculatePerQualityFamily(t *testing.T) {
	tables := Default()

	assert.Equal(t, 0.02, tables.Calculate(ModelGPTImage1, "1024x1024", "low", 1))
	assert.Equal(t, 0.07, tables.Calculate(ModelGPTImage1, "", "medium", 1))
	assert.Equal(t, 0.57, tables.Calculate(ModelGPTImage1, "", "high", 3))

	// Unknown quality falls back to the highest tier.
	assert.Equal(t, 0.19, tables.Calculate(ModelGPTImage1, "", "ultra", 1))
}

func TestCalculateSizeQualityFamily(t *testing.T) {
	tables := Default()

	assert.Equal(t, 0.04, tables.Calculate(ModelDallE3, "1024x1024", "standard", 1))
	assert.Equal(t, 0.08, tables.Calculate(ModelDallE3, "1024x1024", "hd", 1))
	assert.Equal(t, 0.12, tables.Calculate(ModelDallE3, "1792x1024", "hd", 1))

	// Unknown size falls back to the baseline standard unit.
	assert.Equal(t, 0.04, tables.Calculate(ModelDallE3, "4096x4096", "hd", 1))

	// Known size with unknown quality falls back to that size's standard.
	assert.Equal(t, 0.08, tables.Calculate(ModelDallE3, "1024x1792", "cinematic", 1))
}

func TestCalculatePerSizeFamily(t *testing.T) {
	tables := Default()

	assert.Equal(t, 0.016, tables.Calculate(ModelDallE2, "256x256", "", 1))
	assert.Equal(t, 0.036, tables.Calculate(ModelDallE2, "512x512", "", 2))
	assert.Equal(t, 0.02, tables.Calculate(ModelDallE2, "2048x2048", "", 1))
}

func TestCalculateUnknownModel(t *testing.T) {
	tables := Default()

	assert.Equal(t, 0.10, tables.Calculate("midjourney-v7", "1024x1024", "standard", 1))
	assert.Equal(t, 0.50, tables.Calculate("midjourney-v7", "", "", 5))
}

func TestCalculateDefaultsAndRounding(t *testing.T) {
	tables := Default()

	// Missing quality defaults to standard, n <= 0 defaults to 1.
	assert.Equal(t, 0.04, tables.Calculate(ModelDallE3, "1024x1024", "", 0))

	tables.DallE2["256x256"] = 0.0123456
	assert.Equal(t, 0.037, tables.Calculate(ModelDallE2, "256x256", "", 3))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$0.040", Format(0.04))
	assert.Equal(t, "$0.000", Format(0))
	assert.Equal(t, "$1.235", Format(1.2345))
}

func TestForModel(t *testing.T) {
	tables := Default()

	perQuality := tables.ForModel(ModelGPTImage1)
	assert.Equal(t, 0.19, perQuality["high"])

	perSize := tables.ForModel(ModelDallE2)
	assert.Len(t, perSize, 3)

	assert.Empty(t, tables.ForModel("no-such-model"))
}

func TestHolderDefaultsWithoutOverrideFile(t *testing.T) {
	cfg := config.Config{DataDir: t.TempDir()}

	h, err := NewHolder(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, Default(), h.Current())
	assert.Equal(t, 0.19, h.Calculate(ModelGPTImage1, "", "high", 1))
}

func TestHolderLoadsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	override := `pricing:
  gpt_image_1:
    low: 0.01
    medium: 0.05
    high: 0.15
  unknown_model_unit: 0.25
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pricing.yml"), []byte(override), 0o644))

	h, err := NewHolder(config.Config{DataDir: dir}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 0.15, h.Calculate(ModelGPTImage1, "", "high", 1))
	assert.Equal(t, 0.25, h.Calculate("something-else", "", "", 1))
	// Sections absent from the override keep their defaults.
	assert.Equal(t, 0.04, h.Calculate(ModelDallE3, "1024x1024", "standard", 1))
}

func TestHolderRejectsInvalidOverride(t *testing.T) {
	dir := t.TempDir()
	override := `pricing:
  unknown_model_unit: -1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pricing.yml"), []byte(override), 0o644))

	_, err := NewHolder(config.Config{DataDir: dir}, zap.NewNop())
	assert.Error(t, err)
}
