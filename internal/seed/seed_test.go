package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/pictora/internal/clock"
	presetdomain "github.com/smallbiznis/pictora/internal/preset/domain"
	presetrepo "github.com/smallbiznis/pictora/internal/preset/repository"
	presetservice "github.com/smallbiznis/pictora/internal/preset/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPresetService(t *testing.T) presetdomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo, err := presetrepo.Provide(filepath.Join(t.TempDir(), "presets.json"))
	require.NoError(t, err)

	return presetservice.New(presetservice.Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)),
		Repo:  repo,
	})
}

func TestSeedEmptyStoreInsertsFullCatalog(t *testing.T) {
	svc := newPresetService(t)
	ctx := context.Background()

	require.NoError(t, EnsureDefaultPresets(ctx, svc, zap.NewNop()))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(DefaultPresets()))

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Choice Boards", "Educational", "Emotion Cards", "Social Stories", "Visual Schedule"}, categories)
}

func TestSeedNonEmptyStoreInsertsNothing(t *testing.T) {
	svc := newPresetService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, presetdomain.CreateRequest{
		Name:   "My Own",
		Model:  "dall-e-3",
		Prompt: "something",
	})
	require.NoError(t, err)

	require.NoError(t, EnsureDefaultPresets(ctx, svc, zap.NewNop()))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc := newPresetService(t)
	ctx := context.Background()

	require.NoError(t, EnsureDefaultPresets(ctx, svc, zap.NewNop()))
	require.NoError(t, EnsureDefaultPresets(ctx, svc, zap.NewNop()))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(DefaultPresets()))
}
