package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/pictora/internal/clock"
	usagedomain "github.com/smallbiznis/pictora/internal/usage/domain"
	"github.com/smallbiznis/pictora/internal/usage/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brokenRepo struct {
	err error
}

func (r *brokenRepo) List(ctx context.Context) ([]usagedomain.Record, error) {
	return nil, r.err
}

func (r *brokenRepo) Append(ctx context.Context, record *usagedomain.Record) error {
	return r.err
}

func setupLedger(t *testing.T) (usagedomain.Service, *clock.FakeClock) {
	t.Helper()

	repo, err := repository.Provide(filepath.Join(t.TempDir(), "usage.json"))
	require.NoError(t, err)
	return setupLedgerWithRepo(t, repo)
}

func setupLedgerWithRepo(t *testing.T, repo usagedomain.Repository) (usagedomain.Service, *clock.FakeClock) {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC))
	return New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  repo,
	}), fake
}

func track(svc usagedomain.Service, model string, n int, cost float64, success bool) string {
	return svc.Track(context.Background(), usagedomain.TrackRequest{
		Model:   model,
		Size:    "1024x1024",
		Quality: "standard",
		N:       n,
		Cost:    cost,
		Prompt:  "a friendly cartoon face",
		Success: success,
	})
}

func TestStatsCountsSuccessfulOnly(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	track(svc, "dall-e-3", 1, 0.04, true)
	track(svc, "dall-e-3", 2, 0.08, true)
	track(svc, "dall-e-3", 1, 0, false)
	svc.Track(ctx, usagedomain.TrackRequest{
		Model:        "gpt-image-1",
		N:            1,
		Success:      false,
		ErrorMessage: "content policy violation",
	})

	stats := svc.Stats(ctx, usagedomain.Window{})
	assert.Equal(t, 2, stats.TotalImages)
	assert.Equal(t, 3, stats.TotalGenerated)
	assert.InDelta(t, 0.12, stats.TotalCost, 1e-9)
	assert.InDelta(t, 0.06, stats.AvgCost, 1e-9)
}

func TestStatsEmptyLedger(t *testing.T) {
	svc, _ := setupLedger(t)

	stats := svc.Stats(context.Background(), usagedomain.Window{})
	assert.Zero(t, stats.TotalImages)
	assert.Zero(t, stats.AvgCost)
}

func TestStatsWindowBoundsInclusive(t *testing.T) {
	svc, fake := setupLedger(t)
	ctx := context.Background()

	track(svc, "dall-e-3", 1, 0.04, true) // 2026-08-30T14:30:00Z
	fake.Advance(24 * time.Hour)
	track(svc, "dall-e-3", 1, 0.08, true) // 2026-08-31T14:30:00Z
	fake.Advance(24 * time.Hour)
	track(svc, "dall-e-3", 1, 0.12, true) // 2026-09-01T14:30:00Z

	stats := svc.Stats(ctx, usagedomain.Window{Start: "2026-08-31", End: "2026-09-01T00:00:00Z"})
	assert.Equal(t, 1, stats.TotalImages)
	assert.InDelta(t, 0.08, stats.TotalCost, 1e-9)

	// Inclusive bound: a record timestamped exactly at the end is in.
	stats = svc.Stats(ctx, usagedomain.Window{End: "2026-08-30T14:30:00Z"})
	assert.Equal(t, 1, stats.TotalImages)
}

func TestStatsByModel(t *testing.T) {
	svc, _ := setupLedger(t)

	track(svc, "dall-e-3", 1, 0.04, true)
	track(svc, "dall-e-3", 2, 0.08, true)
	track(svc, "gpt-image-1", 1, 0.19, true)
	track(svc, "gpt-image-1", 1, 0, false)

	byModel := svc.StatsByModel(context.Background())
	require.Len(t, byModel, 2)

	assert.Equal(t, "dall-e-3", byModel[0].Model)
	assert.Equal(t, 2, byModel[0].Count)
	assert.Equal(t, 3, byModel[0].ImagesGenerated)
	assert.InDelta(t, 0.06, byModel[0].AvgCost, 1e-9)

	assert.Equal(t, "gpt-image-1", byModel[1].Model)
	assert.Equal(t, 1, byModel[1].Count)
}

func TestRecentOrderAndLimit(t *testing.T) {
	svc, fake := setupLedger(t)

	for i := 0; i < 5; i++ {
		track(svc, "dall-e-3", 1, 0.04, true)
		fake.Advance(time.Minute)
	}

	recent := svc.Recent(context.Background(), 3)
	require.Len(t, recent, 3)
	assert.Equal(t, "2026-08-30T14:34:00Z", recent[0].Timestamp)
	assert.Equal(t, "2026-08-30T14:33:00Z", recent[1].Timestamp)
	assert.Equal(t, "2026-08-30T14:32:00Z", recent[2].Timestamp)
}

func TestSessionStatsExcludesYesterday(t *testing.T) {
	svc, fake := setupLedger(t)
	ctx := context.Background()

	track(svc, "dall-e-3", 2, 0.08, true) // yesterday once the clock moves on
	fake.Advance(24 * time.Hour)
	track(svc, "dall-e-3", 1, 0.04, true)
	track(svc, "dall-e-3", 1, 0, false)

	stats := svc.SessionStats(ctx)
	assert.Equal(t, 1, stats.TotalRequests)
	assert.Equal(t, 1, stats.ImagesGenerated)
	assert.InDelta(t, 0.04, stats.TotalCost, 1e-9)
}

func TestExportRowsLimitAndShape(t *testing.T) {
	svc, fake := setupLedger(t)

	for i := 0; i < 5; i++ {
		track(svc, "dall-e-3", 1, 0.04, true)
		fake.Advance(time.Hour)
	}

	rows := svc.Export(context.Background(), usagedomain.Window{}, 2)
	require.Len(t, rows, 2)

	assert.Equal(t, "8/30/2026, 6:30:00 PM", rows[0].DateTime)
	assert.Equal(t, "8/30/2026, 5:30:00 PM", rows[1].DateTime)
	assert.Equal(t, "Yes", rows[0].Success)
	assert.Equal(t, "dall-e-3", rows[0].Model)
	assert.Equal(t, 1, rows[0].NumImages)
}

func TestExportRendersFailuresWithNoToken(t *testing.T) {
	svc, _ := setupLedger(t)

	svc.Track(context.Background(), usagedomain.TrackRequest{
		Model:        "dall-e-3",
		Success:      false,
		ErrorMessage: "rate limited",
	})

	rows := svc.Export(context.Background(), usagedomain.Window{}, 0)
	require.Len(t, rows, 1)
	assert.Equal(t, "No", rows[0].Success)
}

func TestTrackDefaultsAndPreview(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	long := ""
	for i := 0; i < 30; i++ {
		long += "0123456789"
	}
	svc.Track(ctx, usagedomain.TrackRequest{Model: "dall-e-3", Prompt: long, Success: true})

	recent := svc.Recent(ctx, 1)
	require.Len(t, recent, 1)
	assert.Equal(t, usagedomain.OperationGeneration, recent[0].Operation)
	assert.Equal(t, 1, recent[0].N)
	require.NotNil(t, recent[0].PromptPreview)
	assert.Len(t, *recent[0].PromptPreview, 200)
	assert.Nil(t, recent[0].Style)
	assert.Nil(t, recent[0].PresetName)
}

func TestTrackSwallowsWriteFailure(t *testing.T) {
	svc, _ := setupLedgerWithRepo(t, &brokenRepo{err: errors.New("disk full")})

	id := svc.Track(context.Background(), usagedomain.TrackRequest{Model: "dall-e-3", Success: true})
	assert.NotEmpty(t, id)
}

func TestReadsDegradeToEmptyOnStorageFailure(t *testing.T) {
	svc, _ := setupLedgerWithRepo(t, &brokenRepo{err: errors.New("corrupt file")})
	ctx := context.Background()

	assert.Zero(t, svc.Stats(ctx, usagedomain.Window{}).TotalImages)
	assert.Empty(t, svc.StatsByModel(ctx))
	assert.Empty(t, svc.Recent(ctx, 10))
	assert.Zero(t, svc.SessionStats(ctx).TotalRequests)
	assert.Empty(t, svc.Export(ctx, usagedomain.Window{}, 10))
}
