package eventlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"powerevents/internal/models"
	"powerevents/internal/providers"
	"powerevents/internal/structures"

	"github.com/spf13/afero"
)

// MaxActiveSize is the byte ceiling checked before each append.
const MaxActiveSize = 4096

type RotatorInterface interface {
	AppendWithRotation(line models.LogLine) error
	ActivePath() string
	BackupPath() string
}

// Rotator appends power event lines to the active file and keeps a single
// backup generation.
type Rotator struct {
	fs         afero.Fs
	activePath string
	backupPath string
	mode       os.FileMode
	metrics    providers.MetricsProviderInterface
}

func (r *Rotator) ActivePath() string {
	return r.activePath
}

func (r *Rotator) BackupPath() string {
	return r.backupPath
}

func (r *Rotator) AppendWithRotation(line models.LogLine) error {
	return r.AppendWithRotationTo(r.activePath, r.backupPath, line)
}

// AppendWithRotationTo rotates active into backup when appending line would
// push active over MaxActiveSize, then appends line and syncs it.
// A failed rotation does not block the append; the size check is retried on
// the next call.
func (r *Rotator) AppendWithRotationTo(activePath, backupPath string, line models.LogLine) error {
	var rotateErr error
	rotated, err := r.rotateIfNeeded(activePath, backupPath, line.Len())
	switch {
	case err != nil:
		rotateErr = fmt.Errorf("rotate %s: %w", activePath, err)
	case rotated:
		r.metrics.IncRotations()
	}

	var appendErr error
	if err := r.append(activePath, line.Bytes()); err != nil {
		appendErr = fmt.Errorf("append to %s: %w", activePath, err)
	}

	if err := errors.Join(rotateErr, appendErr); err != nil {
		r.metrics.IncAppendErrors()
		return err
	}
	return nil
}

func (r *Rotator) rotateIfNeeded(activePath, backupPath string, pending int64) (bool, error) {
	size, err := fileSize(r.fs, activePath)
	if err != nil {
		return false, err
	}
	if size+pending <= MaxActiveSize {
		return false, nil
	}

	// An oversized line with no active file has nothing to rotate; keep the backup.
	activeExists, err := afero.Exists(r.fs, activePath)
	if err != nil {
		return false, err
	}
	if !activeExists {
		return false, nil
	}

	backupExists, err := afero.Exists(r.fs, backupPath)
	if err != nil {
		return false, err
	}
	if backupExists {
		if err := r.fs.Remove(backupPath); err != nil {
			return false, err
		}
	}
	if err := r.fs.Rename(activePath, backupPath); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Rotator) append(path string, data []byte) error {
	if err := r.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := r.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, r.mode)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// fileSize reports 0 for a missing file.
func fileSize(fs afero.Fs, path string) (int64, error) {
	info, err := fs.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func NewRotator(fs afero.Fs, activePath, backupPath string, mode os.FileMode, metrics providers.MetricsProviderInterface) *Rotator {
	return &Rotator{
		fs:         fs,
		activePath: activePath,
		backupPath: backupPath,
		mode:       mode,
		metrics:    metrics,
	}
}

func NewEventLogRotator(conf *structures.Config, fs afero.Fs, metrics providers.MetricsProviderInterface) RotatorInterface {
	return NewRotator(fs,
		filepath.Join(conf.EventLog.Dir, conf.EventLog.ActiveName),
		filepath.Join(conf.EventLog.Dir, conf.EventLog.BackupName),
		os.FileMode(conf.EventLog.FileMode),
		metrics,
	)
}
