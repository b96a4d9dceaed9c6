package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/bnema/emergent-chefs/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	reportFileMode  = 0o600
	reportDirMode   = 0o700
	tempFilePattern = ".chefs-report-*.toml.tmp"
)

// ReportStore writes the final snapshot of a run as a TOML report. Each
// save replaces the file atomically.
type ReportStore struct {
	path string
	mu   sync.Mutex
}

var _ ports.SnapshotStore = (*ReportStore)(nil)

func NewReportStore(path string) (*ReportStore, error) {
	if path == "" {
		return nil, errors.New("report path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve report path: %w", err)
	}

	return &ReportStore{path: filepath.Clean(absPath)}, nil
}

func (s *ReportStore) Path() string {
	return s.path
}

func (s *ReportStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeSchema(toSchema(snapshot))
}

func (s *ReportStore) writeSchema(report reportSchema) error {
	if err := os.MkdirAll(filepath.Dir(s.path), reportDirMode); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	data, err := toml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp report file: %w", err)
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
		return fmt.Errorf("write temp report file: %w", err)
	}

	if err := tempFile.Chmod(reportFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp report file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp report file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}

	cleanup = false

	return nil
}
