package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"powerevents/internal/structures"

	"github.com/spf13/afero"
)

// MediumInterface is a storage slot holding a single fixed-size record.
// Load returns an error satisfying errors.Is(err, os.ErrNotExist) when the slot is empty.
// Store must replace the slot contents atomically.
type MediumInterface interface {
	Load() ([]byte, error)
	Store(data []byte) error
	Path() string
}

// FileMedium keeps the record in one file and replaces it via temp file + rename.
type FileMedium struct {
	fs   afero.Fs
	path string
	mode os.FileMode
}

func (m *FileMedium) Path() string {
	return m.path
}

func (m *FileMedium) Load() ([]byte, error) {
	return afero.ReadFile(m.fs, m.path)
}

func (m *FileMedium) Store(data []byte) error {
	dir := filepath.Dir(m.path)
	if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpFile := m.path + ".tmp"
	file, err := m.fs.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, m.mode)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		m.fs.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		m.fs.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		m.fs.Remove(tmpFile)
		return err
	}

	if err = m.fs.Rename(tmpFile, m.path); err != nil {
		m.fs.Remove(tmpFile)
		return err
	}

	syncDir(m.fs, dir)
	return nil
}

// syncDir flushes the directory entry after a rename. Some filesystems
// reject fsync on directories, so failures are ignored.
func syncDir(fs afero.Fs, dir string) {
	d, err := fs.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}

func NewFileMedium(fs afero.Fs, path string) *FileMedium {
	return &FileMedium{fs: fs, path: path, mode: 0644}
}

// RecordFileName is the on-disk name of a named record.
func RecordFileName(name string) string {
	return fmt.Sprintf("%s.rec", name)
}

func NewRecordMedium(conf *structures.Config, fs afero.Fs) MediumInterface {
	return NewFileMedium(fs, filepath.Join(conf.State.Dir, RecordFileName(conf.State.RecordName)))
}
