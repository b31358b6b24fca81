package collector

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"

	"mpsd/internal/collector/interfaces"
	"mpsd/internal/providers"
	"mpsd/internal/structures"
)

const documentExtension = ".bin"

// FileRepository keeps each document as a zstd-compressed JSON file in
// the data directory. Writes go through a temp file and rename so a
// crash mid-write never corrupts the previous document.
//
// The first failed save latches the repository into memory-only mode:
// later saves become no-ops instead of spamming the log every cycle.
type FileRepository struct {
	dir        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	degraded   *atomic.Bool
}

func NewFileRepository(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) (interfaces.RepositoryInterface, error) {
	if err := os.MkdirAll(conf.Persistence.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileRepository{
		dir:        conf.Persistence.Dir,
		compressor: compressor,
		logger:     logger,
		degraded:   atomic.NewBool(false),
	}, nil
}

func (r *FileRepository) Save(name string, v any) error {
	if r.degraded.Load() {
		return nil
	}

	jsonData, err := json.Marshal(v)
	if err != nil {
		return r.degrade(name, err)
	}
	data, err := r.compressor.Compress(jsonData)
	if err != nil {
		return r.degrade(name, err)
	}

	fileName := r.path(name)
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return r.degrade(name, err)
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return r.degrade(name, err)
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return r.degrade(name, err)
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return r.degrade(name, err)
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return r.degrade(name, err)
	}
	return nil
}

func (r *FileRepository) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.compressor.Decompress(data)
}

func (r *FileRepository) Close() {
	r.compressor.Close()
}

func (r *FileRepository) path(name string) string {
	return filepath.Join(r.dir, name+documentExtension)
}

func (r *FileRepository) degrade(name string, err error) error {
	if r.degraded.CompareAndSwap(false, true) {
		r.logger.Errorf(providers.TypeApp, "Persistence failed for document %s, continuing in memory-only mode: %s", name, err)
	}
	return err
}
