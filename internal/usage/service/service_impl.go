package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/pictora/internal/clock"
	usagedomain "github.com/smallbiznis/pictora/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	promptPreviewLimit = 200
	defaultRecentLimit = 50
	defaultExportLimit = 1000
	exportTimeLayout   = "1/2/2006, 3:04:05 PM"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  usagedomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  usagedomain.Repository
}

func New(p Params) usagedomain.Service {
	return &Service{
		log:   p.Log.Named("usage.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Track(ctx context.Context, req usagedomain.TrackRequest) string {
	operation := strings.TrimSpace(req.Operation)
	if operation == "" {
		operation = usagedomain.OperationGeneration
	}

	n := req.N
	if n <= 0 {
		n = 1
	}

	record := &usagedomain.Record{
		ID:            s.genID.Generate().String(),
		Timestamp:     s.clock.Now().UTC().Format(time.RFC3339),
		Model:         optional(req.Model),
		Operation:     operation,
		Size:          optional(req.Size),
		Quality:       optional(req.Quality),
		Style:         optional(req.Style),
		N:             n,
		Cost:          req.Cost,
		PromptPreview: preview(req.Prompt),
		PresetName:    optional(req.PresetName),
		Success:       req.Success,
		ErrorMessage:  optional(req.ErrorMessage),
	}

	if err := s.repo.Append(ctx, record); err != nil {
		s.log.Warn("usage tracking failed", zap.String("record_id", record.ID), zap.Error(err))
	}

	return record.ID
}

func (s *Service) Stats(ctx context.Context, window usagedomain.Window) usagedomain.Stats {
	var stats usagedomain.Stats
	for _, r := range s.loadAll(ctx) {
		if !r.Success || !window.Contains(r.Timestamp) {
			continue
		}
		stats.TotalImages++
		stats.TotalGenerated += r.N
		stats.TotalCost += r.Cost
	}
	if stats.TotalImages > 0 {
		stats.AvgCost = stats.TotalCost / float64(stats.TotalImages)
	}
	return stats
}

func (s *Service) StatsByModel(ctx context.Context) []usagedomain.ModelStats {
	grouped := make(map[string]*usagedomain.ModelStats)
	order := make([]string, 0)

	for _, r := range s.loadAll(ctx) {
		if !r.Success {
			continue
		}
		model := ""
		if r.Model != nil {
			model = *r.Model
		}
		entry, ok := grouped[model]
		if !ok {
			entry = &usagedomain.ModelStats{Model: model}
			grouped[model] = entry
			order = append(order, model)
		}
		entry.Count++
		entry.ImagesGenerated += r.N
		entry.TotalCost += r.Cost
	}

	out := make([]usagedomain.ModelStats, 0, len(order))
	for _, model := range order {
		entry := grouped[model]
		if entry.Count > 0 {
			entry.AvgCost = entry.TotalCost / float64(entry.Count)
		}
		out = append(out, *entry)
	}
	return out
}

func (s *Service) Recent(ctx context.Context, limit int) []usagedomain.Record {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	records := s.loadAll(ctx)
	sortByTimestampDesc(records)
	if len(records) > limit {
		records = records[:limit]
	}
	return records
}

func (s *Service) SessionStats(ctx context.Context) usagedomain.SessionStats {
	today := s.clock.Now().UTC().Format("2006-01-02")

	var stats usagedomain.SessionStats
	for _, r := range s.loadAll(ctx) {
		if !r.Success || !strings.HasPrefix(r.Timestamp, today) {
			continue
		}
		stats.TotalRequests++
		stats.ImagesGenerated += r.N
		stats.TotalCost += r.Cost
	}
	return stats
}

func (s *Service) Export(ctx context.Context, window usagedomain.Window, limit int) []usagedomain.ExportRow {
	if limit <= 0 {
		limit = defaultExportLimit
	}

	records := s.loadAll(ctx)
	filtered := records[:0]
	for _, r := range records {
		if window.Contains(r.Timestamp) {
			filtered = append(filtered, r)
		}
	}
	sortByTimestampDesc(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	rows := make([]usagedomain.ExportRow, 0, len(filtered))
	for _, r := range filtered {
		success := "No"
		if r.Success {
			success = "Yes"
		}
		rows = append(rows, usagedomain.ExportRow{
			DateTime:      formatExportTime(r.Timestamp),
			Model:         deref(r.Model),
			Operation:     r.Operation,
			Size:          deref(r.Size),
			Quality:       deref(r.Quality),
			NumImages:     r.N,
			Cost:          r.Cost,
			PromptPreview: deref(r.PromptPreview),
			PresetName:    deref(r.PresetName),
			Success:       success,
		})
	}
	return rows
}

// loadAll degrades to an empty collection on read failure; usage stats are
// informational and must never take the dashboard down.
func (s *Service) loadAll(ctx context.Context) []usagedomain.Record {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn("usage ledger unreadable, serving empty", zap.Error(err))
		return nil
	}
	return records
}

func sortByTimestampDesc(records []usagedomain.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
}

func formatExportTime(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return parsed.UTC().Format(exportTimeLayout)
}

func preview(prompt string) *string {
	if prompt == "" {
		return nil
	}
	runes := []rune(prompt)
	if len(runes) > promptPreviewLimit {
		prompt = string(runes[:promptPreviewLimit])
	}
	return &prompt
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
