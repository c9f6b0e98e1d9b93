package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/pictora/internal/clock"
	presetdomain "github.com/smallbiznis/pictora/internal/preset/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  presetdomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  presetdomain.Repository
}

func New(p Params) presetdomain.Service {
	return &Service{
		log:   p.Log.Named("preset.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]presetdomain.Preset, error) {
	return s.repo.List(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(items))
	categories := make([]string, 0, len(items))
	for i := range items {
		if _, ok := seen[items[i].Category]; ok {
			continue
		}
		seen[items[i].Category] = struct{}{}
		categories = append(categories, items[i].Category)
	}
	sort.Strings(categories)

	return categories, nil
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]presetdomain.Preset, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]presetdomain.Preset, 0, len(items))
	for i := range items {
		if items[i].Category == category {
			filtered = append(filtered, items[i])
		}
	}

	return filtered, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*presetdomain.Preset, error) {
	if strings.TrimSpace(id) == "" {
		return nil, presetdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, presetdomain.ErrNotFound
	}

	return item, nil
}

func (s *Service) Create(ctx context.Context, req presetdomain.CreateRequest) (*presetdomain.Preset, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, presetdomain.ErrInvalidName
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		return nil, presetdomain.ErrInvalidModel
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, presetdomain.ErrInvalidPrompt
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = presetdomain.DefaultCategory
	}

	p := &presetdomain.Preset{
		ID:         s.genID.Generate().String(),
		Name:       name,
		Category:   category,
		Model:      model,
		Prompt:     prompt,
		Size:       strings.TrimSpace(req.Size),
		Quality:    strings.TrimSpace(req.Quality),
		Style:      strings.TrimSpace(req.Style),
		Notes:      req.Notes,
		CreatedAt:  s.clock.Now().UTC(),
		UsageCount: 0,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Update(ctx context.Context, req presetdomain.UpdateRequest) (*presetdomain.Preset, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, presetdomain.ErrInvalidID
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, presetdomain.ErrInvalidName
	}
	if req.Model != nil && strings.TrimSpace(*req.Model) == "" {
		return nil, presetdomain.ErrInvalidModel
	}
	if req.Prompt != nil && strings.TrimSpace(*req.Prompt) == "" {
		return nil, presetdomain.ErrInvalidPrompt
	}

	now := s.clock.Now().UTC()
	return s.repo.Mutate(ctx, id, func(p *presetdomain.Preset) {
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.Category != nil {
			category := strings.TrimSpace(*req.Category)
			if category == "" {
				category = presetdomain.DefaultCategory
			}
			p.Category = category
		}
		if req.Model != nil {
			p.Model = strings.TrimSpace(*req.Model)
		}
		if req.Prompt != nil {
			p.Prompt = strings.TrimSpace(*req.Prompt)
		}
		if req.Size != nil {
			p.Size = strings.TrimSpace(*req.Size)
		}
		if req.Quality != nil {
			p.Quality = strings.TrimSpace(*req.Quality)
		}
		if req.Style != nil {
			p.Style = strings.TrimSpace(*req.Style)
		}
		if req.Notes != nil {
			p.Notes = *req.Notes
		}
		p.UpdatedAt = &now
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return presetdomain.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

// IncrementUsage bumps the usage counter. Unknown ids are a no-op so a
// stale preset reference never fails a generation.
func (s *Service) IncrementUsage(ctx context.Context, id string) error {
	now := s.clock.Now().UTC()
	_, err := s.repo.Mutate(ctx, id, func(p *presetdomain.Preset) {
		p.UsageCount++
		p.LastUsedAt = &now
	})
	if errors.Is(err, presetdomain.ErrNotFound) {
		return nil
	}
	return err
}
