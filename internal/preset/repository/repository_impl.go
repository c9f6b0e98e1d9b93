package repository

import (
	"context"

	presetdomain "github.com/smallbiznis/pictora/internal/preset/domain"
	"github.com/smallbiznis/pictora/pkg/jsonstore"
)

type repo struct {
	col *jsonstore.Collection[presetdomain.Preset]
}

// Provide opens the preset collection file at path.
func Provide(path string) (presetdomain.Repository, error) {
	col, err := jsonstore.Open[presetdomain.Preset](path)
	if err != nil {
		return nil, err
	}
	return &repo{col: col}, nil
}

func (r *repo) List(ctx context.Context) ([]presetdomain.Preset, error) {
	return r.col.Load()
}

func (r *repo) FindByID(ctx context.Context, id string) (*presetdomain.Preset, error) {
	items, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *repo) Insert(ctx context.Context, preset *presetdomain.Preset) error {
	return r.col.Update(func(items []presetdomain.Preset) ([]presetdomain.Preset, error) {
		for i := range items {
			if items[i].Name == preset.Name && items[i].Category == preset.Category {
				return nil, presetdomain.ErrDuplicateName
			}
		}
		return append(items, *preset), nil
	})
}

func (r *repo) Mutate(ctx context.Context, id string, fn func(*presetdomain.Preset)) (*presetdomain.Preset, error) {
	var updated presetdomain.Preset
	err := r.col.Update(func(items []presetdomain.Preset) ([]presetdomain.Preset, error) {
		for i := range items {
			if items[i].ID == id {
				fn(&items[i])
				updated = items[i]
				return items, nil
			}
		}
		return nil, presetdomain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	return r.col.Update(func(items []presetdomain.Preset) ([]presetdomain.Preset, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, presetdomain.ErrNotFound
	})
}
