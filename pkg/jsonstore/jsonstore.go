// Package jsonstore persists a collection as a single JSON array file.
//
// Every mutation follows read-all, modify in memory, rewrite-all. A
// per-collection mutex serializes read-modify-write sequences so concurrent
// writers cannot lose updates, and the rewrite goes through a temp file plus
// rename so a reader observes either the pre- or post-mutation snapshot.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

// Open prepares a collection at path, creating the parent directory and an
// empty array file when absent.
func Open[T any](path string) (*Collection[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeFile(path, []byte("[]\n")); err != nil {
			return nil, fmt.Errorf("init collection %s: %w", path, err)
		}
	} else if err != nil {
		return nil, err
	}
	return &Collection[T]{path: path}, nil
}

// Path returns the backing file location.
func (c *Collection[T]) Path() string {
	return c.path
}

// Load reads the full collection snapshot.
func (c *Collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Replace overwrites the collection with items.
func (c *Collection[T]) Replace(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(items)
}

// Update runs fn over the current snapshot and persists its result. fn
// returning an error aborts the write and leaves the file untouched.
func (c *Collection[T]) Update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.save(next)
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", c.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", c.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.path, err)
	}
	if err := writeFile(c.path, append(data, '\n')); err != nil {
		return fmt.Errorf("write collection %s: %w", c.path, err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
