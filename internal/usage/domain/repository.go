package domain

import "context"

// Repository persists ledger records. The collection is append-only:
// records are never edited or removed.
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	Append(ctx context.Context, record *Record) error
}
