package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/bnema/mst-orders/internal/domain"
	"github.com/bnema/mst-orders/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	ManifestPathKey     = "manifest.path"
	DefaultManifestFile = "mst-manifest.toml"
	manifestFileMode    = 0o644
	manifestDirMode     = 0o755
	tempFilePattern     = ".mst-manifest-*.toml.tmp"
)

type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ManifestRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(ManifestPathKey)
	if path == "" {
		path = DefaultManifestFile
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

// Record upserts entries keyed by lag set and order number.
func (r *Repository) Record(ctx context.Context, entries []domain.OrderEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("manifest entry %s/%d: %w", entry.LagSet, entry.Order, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		encoded := toSchema(entry)
		updated := false
		for i := range file.Orders {
			if file.Orders[i].LagSet == encoded.LagSet && file.Orders[i].Order == encoded.Order {
				file.Orders[i] = encoded
				updated = true
				break
			}
		}
		if !updated {
			file.Orders = append(file.Orders, encoded)
		}
	}

	sort.SliceStable(file.Orders, func(i, j int) bool {
		if file.Orders[i].LagSet == file.Orders[j].LagSet {
			return file.Orders[i].Order < file.Orders[j].Order
		}
		return file.Orders[i].LagSet < file.Orders[j].LagSet
	})

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) List(ctx context.Context) ([]domain.OrderEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.OrderEntry, 0, len(file.Orders))
	for _, order := range file.Orders {
		entry, err := fromSchema(order)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read manifest file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode manifest file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve manifest path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), manifestDirMode); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode manifest file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp manifest file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp manifest file: %w", err)
	}

	if err := tempFile.Chmod(manifestFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp manifest file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp manifest file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace manifest file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(entry domain.OrderEntry) orderSchema {
	return orderSchema{
		RunID:       string(entry.RunID),
		LagSet:      entry.LagSet,
		Order:       entry.Order,
		Schedule:    entry.Schedule,
		Seed:        strconv.FormatUint(entry.Seed, 10),
		Attempt:     entry.Attempt,
		Path:        entry.Path,
		DebugPath:   entry.DebugPath,
		TotalTrials: entry.TotalTrials,
		CreatedAt:   formatTime(entry.CreatedAt),
	}
}

func fromSchema(order orderSchema) (domain.OrderEntry, error) {
	seed, err := strconv.ParseUint(order.Seed, 10, 64)
	if err != nil {
		return domain.OrderEntry{}, fmt.Errorf("manifest order %s/%d: invalid seed %q: %w", order.LagSet, order.Order, order.Seed, err)
	}

	return domain.OrderEntry{
		RunID:       domain.RunID(order.RunID),
		LagSet:      order.LagSet,
		Order:       order.Order,
		Schedule:    order.Schedule,
		Seed:        seed,
		Attempt:     order.Attempt,
		Path:        order.Path,
		DebugPath:   order.DebugPath,
		TotalTrials: order.TotalTrials,
		CreatedAt:   parseTime(order.CreatedAt),
	}, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
