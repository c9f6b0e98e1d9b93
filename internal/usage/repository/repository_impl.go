package repository

import (
	"context"

	usagedomain "github.com/smallbiznis/pictora/internal/usage/domain"
	"github.com/smallbiznis/pictora/pkg/jsonstore"
)

type repo struct {
	col *jsonstore.Collection[usagedomain.Record]
}

// Provide opens the usage collection file at path.
func Provide(path string) (usagedomain.Repository, error) {
	col, err := jsonstore.Open[usagedomain.Record](path)
	if err != nil {
		return nil, err
	}
	return &repo{col: col}, nil
}

func (r *repo) List(ctx context.Context) ([]usagedomain.Record, error) {
	return r.col.Load()
}

func (r *repo) Append(ctx context.Context, record *usagedomain.Record) error {
	return r.col.Update(func(items []usagedomain.Record) ([]usagedomain.Record, error) {
		return append(items, *record), nil
	})
}
