package domain

import "context"

// Repository persists the preset collection. Mutations run as a single
// read-modify-write unit over the whole collection.
type Repository interface {
	List(ctx context.Context) ([]Preset, error)
	FindByID(ctx context.Context, id string) (*Preset, error)

	// Insert appends preset, failing with ErrDuplicateName when another
	// live preset already claims the same (name, category) pair.
	Insert(ctx context.Context, preset *Preset) error

	// Mutate applies fn to the preset with the given id under the store
	// lock and persists the result. Returns ErrNotFound for unknown ids.
	Mutate(ctx context.Context, id string, fn func(*Preset)) (*Preset, error)

	// Delete removes the preset with the given id, ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
