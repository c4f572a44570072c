package providers

import "github.com/spf13/afero"

// NewFsProvider returns the filesystem backing the record and the event log.
func NewFsProvider() afero.Fs {
	return afero.NewOsFs()
}
