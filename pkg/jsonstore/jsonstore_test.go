package jsonstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func TestOpenCreatesEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.json")

	col, err := Open[record](path)
	require.NoError(t, err)

	items, err := col.Load()
	require.NoError(t, err)
	assert.Empty(t, items)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestUpdateAbortLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	col, err := Open[record](path)
	require.NoError(t, err)

	require.NoError(t, col.Replace([]record{{ID: "a", Value: 1}}))

	err = col.Update(func(items []record) ([]record, error) {
		return nil, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	items, err := col.Load()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	col, err := Open[record](path)
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			err := col.Update(func(items []record) ([]record, error) {
				return append(items, record{ID: string(rune('a' + n)), Value: n}), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	items, err := col.Load()
	require.NoError(t, err)
	assert.Len(t, items, writers)
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	col, err := Open[record](path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err = col.Load()
	assert.Error(t, err)
}
