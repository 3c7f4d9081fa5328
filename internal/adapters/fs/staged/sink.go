package staged

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/mst-orders/internal/ports"
)

const (
	outputDirMode  = 0o755
	outputFileMode = 0o644
	tempPattern    = ".mst-*.tmp"
	backupSuffix   = ".mst-bak"
)

// Sink writes every artifact of a batch to a temp file next to its target
// and renames them only once all writes succeeded. Existing targets are moved
// aside first and restored if any rename of the batch fails.
type Sink struct {
	mu     sync.Mutex
	rename func(oldpath, newpath string) error
}

var _ ports.ArtifactSink = (*Sink)(nil)

func NewSink() *Sink {
	return &Sink{rename: os.Rename}
}

type stagedFile struct {
	temp   string
	target string
	backup string
}

func (s *Sink) Commit(ctx context.Context, artifacts []ports.Artifact) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkTargets(artifacts); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make([]stagedFile, 0, len(artifacts))
	defer func() {
		if err == nil {
			return
		}
		for _, file := range staged {
			if removeErr := os.Remove(file.temp); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
				err = errors.Join(err, fmt.Errorf("remove staged file: %w", removeErr))
			}
		}
	}()

	for _, artifact := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}

		temp, err := stage(artifact)
		if err != nil {
			return err
		}
		staged = append(staged, stagedFile{temp: temp, target: artifact.Path})
	}

	return s.publish(staged)
}

// publish swaps every staged file into place. On failure the files already
// published are rolled back to their previous content.
func (s *Sink) publish(files []stagedFile) error {
	for i := range files {
		backup, err := s.moveAside(files[i].target)
		if err != nil {
			return errors.Join(err, s.rollback(files[:i]))
		}
		files[i].backup = backup

		if err := s.rename(files[i].temp, files[i].target); err != nil {
			err = fmt.Errorf("finalize %s: %w", files[i].target, err)
			return errors.Join(err, s.rollback(files[:i+1]))
		}
	}

	for _, file := range files {
		if file.backup != "" {
			_ = os.Remove(file.backup)
		}
	}
	return nil
}

func (s *Sink) moveAside(target string) (string, error) {
	if _, err := os.Lstat(target); errors.Is(err, os.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("inspect %s: %w", target, err)
	}

	backup := filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+backupSuffix)
	if err := s.rename(target, backup); err != nil {
		return "", fmt.Errorf("back up %s: %w", target, err)
	}
	return backup, nil
}

func (s *Sink) rollback(files []stagedFile) error {
	var errs []error
	for i := len(files) - 1; i >= 0; i-- {
		file := files[i]
		if file.backup == "" {
			if err := os.Remove(file.target); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, fmt.Errorf("remove %s: %w", file.target, err))
			}
			continue
		}
		if err := s.rename(file.backup, file.target); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", file.target, err))
		}
	}
	return errors.Join(errs...)
}

func stage(artifact ports.Artifact) (string, error) {
	dir := filepath.Dir(artifact.Path)
	if err := os.MkdirAll(dir, outputDirMode); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("create temp file for %s: %w", artifact.Path, err)
	}
	tempName := tempFile.Name()

	if _, err := tempFile.Write(artifact.Data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempName)
		return "", fmt.Errorf("write temp file for %s: %w", artifact.Path, err)
	}
	if err := tempFile.Chmod(outputFileMode); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempName)
		return "", fmt.Errorf("chmod temp file for %s: %w", artifact.Path, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempName)
		return "", fmt.Errorf("close temp file for %s: %w", artifact.Path, err)
	}

	return tempName, nil
}

func checkTargets(artifacts []ports.Artifact) error {
	seen := make(map[string]struct{}, len(artifacts))
	for _, artifact := range artifacts {
		trimmed := strings.TrimSpace(artifact.Path)
		if trimmed == "" {
			return errors.New("artifact path is empty")
		}

		cleaned := filepath.Clean(trimmed)
		if _, ok := seen[cleaned]; ok {
			return fmt.Errorf("artifact %q appears twice in one batch", artifact.Path)
		}
		seen[cleaned] = struct{}{}

		if info, err := os.Stat(cleaned); err == nil && info.IsDir() {
			return fmt.Errorf("artifact %q is a directory", artifact.Path)
		}
	}
	return nil
}
