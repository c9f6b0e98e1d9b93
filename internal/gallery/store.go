// Package gallery stores generated images with a JSON metadata sidecar per
// file.
package gallery

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/pictora/internal/clock"
	"github.com/smallbiznis/pictora/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const imageExt = ".png"

var ErrNotFound = errors.New("image_not_found")

// Metadata is the sidecar written next to each image.
type Metadata struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	Model         string    `json:"model"`
	Prompt        string    `json:"prompt"`
	RevisedPrompt string    `json:"revisedPrompt,omitempty"`
	Size          string    `json:"size,omitempty"`
	Quality       string    `json:"quality,omitempty"`
	Style         string    `json:"style,omitempty"`
	Operation     string    `json:"operation"`
	PresetName    string    `json:"presetName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Entry is one gallery listing item.
type Entry struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	SizeBytes int64     `json:"sizeBytes"`
}

type Params struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Store struct {
	dir   string
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

func New(p Params) (*Store, error) {
	if err := os.MkdirAll(p.Cfg.ImagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &Store{
		dir:   p.Cfg.ImagesDir,
		log:   p.Log.Named("gallery"),
		genID: p.GenID,
		clock: p.Clock,
	}, nil
}

// Dir returns the directory served as static image content.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes image bytes plus the metadata sidecar and returns the filled
// metadata. Bytes are written as received; encoding is the upstream
// service's concern.
func (s *Store) Save(data []byte, meta Metadata) (*Metadata, error) {
	meta.ID = s.genID.Generate().String()
	meta.Filename = meta.ID + imageExt
	meta.CreatedAt = s.clock.Now().UTC()

	imagePath := filepath.Join(s.dir, meta.Filename)
	if err := os.WriteFile(imagePath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	sidecar, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(sidecarPath(imagePath), append(sidecar, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("write metadata sidecar: %w", err)
	}

	return &meta, nil
}

// List returns all stored images, newest first. Images whose sidecar is
// missing or unreadable are still listed, with nil metadata.
func (s *Store) List() ([]Entry, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(strings.ToLower(f.Name()), imageExt) {
			continue
		}

		info, err := f.Info()
		if err != nil {
			continue
		}

		entry := Entry{
			Filename:  f.Name(),
			URL:       "/images/" + f.Name(),
			CreatedAt: info.ModTime().UTC(),
			SizeBytes: info.Size(),
		}
		if meta, err := s.readSidecar(f.Name()); err == nil {
			entry.Metadata = meta
			entry.CreatedAt = meta.CreatedAt
		} else if !os.IsNotExist(err) {
			s.log.Warn("unreadable metadata sidecar", zap.String("filename", f.Name()), zap.Error(err))
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Read returns the raw bytes of a stored image.
func (s *Store) Read(filename string) ([]byte, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

// Delete removes an image and its sidecar.
func (s *Store) Delete(filename string) error {
	path, err := s.resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	if err := os.Remove(sidecarPath(path)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("sidecar removal failed", zap.String("filename", filename), zap.Error(err))
	}
	return nil
}

// resolve rejects anything that is not a bare image filename inside the
// gallery directory.
func (s *Store) resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || !strings.HasSuffix(filename, imageExt) {
		return "", ErrNotFound
	}
	return filepath.Join(s.dir, filename), nil
}

func (s *Store) readSidecar(filename string) (*Metadata, error) {
	data, err := os.ReadFile(sidecarPath(filepath.Join(s.dir, filename)))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func sidecarPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, imageExt) + ".json"
}

// Module wires the gallery store.
var Module = fx.Module("gallery",
	fx.Provide(New),
)
