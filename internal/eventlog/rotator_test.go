package eventlog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"powerevents/internal/models"
	"powerevents/internal/structures"
	"powerevents/internal/testutil"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRotator(t *testing.T) (*Rotator, *testutil.MockMetrics) {
	t.Helper()
	dir := t.TempDir()
	metrics := &testutil.MockMetrics{}
	r := NewRotator(afero.NewOsFs(),
		filepath.Join(dir, "powerevents.log"),
		filepath.Join(dir, "powerevents.log.bak"),
		0644, metrics)
	return r, metrics
}

func lineOf(n int) models.LogLine {
	return models.NewLogLine(strings.Repeat("x", n-2) + "\r\n")
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestAppendWithRotation_CreatesActive(t *testing.T) {
	r, metrics := newTestRotator(t)

	require.NoError(t, r.AppendWithRotation(models.NewLogLine("First Time Running...\r\n")))

	assert.Equal(t, "First Time Running...\r\n", string(readFile(t, r.ActivePath())))
	_, err := os.Stat(r.BackupPath())
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 0, metrics.Rotations)
}

func TestAppendWithRotation_Appends(t *testing.T) {
	r, _ := newTestRotator(t)

	require.NoError(t, r.AppendWithRotation(models.NewLogLine("a\r\n")))
	require.NoError(t, r.AppendWithRotation(models.NewLogLine("b\r\n")))

	assert.Equal(t, "a\r\nb\r\n", string(readFile(t, r.ActivePath())))
}

func TestAppendWithRotation_BoundaryRotates(t *testing.T) {
	r, metrics := newTestRotator(t)
	prior := bytes.Repeat([]byte{'p'}, 4090)
	require.NoError(t, os.WriteFile(r.ActivePath(), prior, 0644))

	require.NoError(t, r.AppendWithRotation(lineOf(10)))

	assert.Equal(t, prior, readFile(t, r.BackupPath()))
	assert.Equal(t, lineOf(10).Bytes(), readFile(t, r.ActivePath()))
	assert.Equal(t, 1, metrics.Rotations)
}

func TestAppendWithRotation_BoundaryExactFitDoesNotRotate(t *testing.T) {
	r, metrics := newTestRotator(t)
	require.NoError(t, os.WriteFile(r.ActivePath(), bytes.Repeat([]byte{'p'}, 4086), 0644))

	require.NoError(t, r.AppendWithRotation(lineOf(10)))

	assert.Len(t, readFile(t, r.ActivePath()), 4096)
	_, err := os.Stat(r.BackupPath())
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 0, metrics.Rotations)
}

func TestAppendWithRotation_NoBackupScenario(t *testing.T) {
	r, _ := newTestRotator(t)
	prior := bytes.Repeat([]byte{'q'}, 4090)
	require.NoError(t, os.WriteFile(r.ActivePath(), prior, 0644))

	line := lineOf(50)
	require.NoError(t, r.AppendWithRotation(line))

	assert.Equal(t, prior, readFile(t, r.BackupPath()))
	assert.Equal(t, line.Bytes(), readFile(t, r.ActivePath()))
}

func TestAppendWithRotation_ReplacesExistingBackup(t *testing.T) {
	r, metrics := newTestRotator(t)
	require.NoError(t, os.WriteFile(r.BackupPath(), []byte("oldest generation"), 0644))
	first := bytes.Repeat([]byte{'1'}, 4090)
	require.NoError(t, os.WriteFile(r.ActivePath(), first, 0644))

	require.NoError(t, r.AppendWithRotation(lineOf(50)))
	assert.Equal(t, first, readFile(t, r.BackupPath()))

	// fill the new active file and rotate again
	for i := 0; i < 80; i++ {
		require.NoError(t, r.AppendWithRotation(lineOf(50)))
	}
	beforeSecond := readFile(t, r.ActivePath())
	require.Len(t, beforeSecond, 4100-50)

	require.NoError(t, r.AppendWithRotation(lineOf(50)))

	assert.Equal(t, beforeSecond, readFile(t, r.BackupPath()))
	assert.Equal(t, lineOf(50).Bytes(), readFile(t, r.ActivePath()))
	assert.Equal(t, 2, metrics.Rotations)
}

func TestAppendWithRotation_AtMostTwoFiles(t *testing.T) {
	r, _ := newTestRotator(t)
	dir := filepath.Dir(r.ActivePath())

	rotations := 0
	var lastBackup []byte
	for i := 0; i < 500; i++ {
		line := lineOf(20 + i%180)
		require.NoError(t, r.AppendWithRotation(line))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.LessOrEqual(t, len(entries), 2)

		active := readFile(t, r.ActivePath())
		require.LessOrEqual(t, len(active), MaxActiveSize)

		if backup, err := os.ReadFile(r.BackupPath()); err == nil {
			if !bytes.Equal(backup, lastBackup) {
				rotations++
				// a backup is always a whole former active file
				require.Greater(t, len(backup), MaxActiveSize-200)
				require.True(t, bytes.HasSuffix(backup, []byte("\r\n")))
			}
			lastBackup = backup
		}
	}
	assert.Greater(t, rotations, 1)
}

func TestAppendWithRotation_MemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := NewRotator(fs, "/events/powerevents.log", "/events/powerevents.log.bak", 0644, &testutil.MockMetrics{})

	require.NoError(t, afero.WriteFile(fs, "/events/powerevents.log", bytes.Repeat([]byte{'m'}, 4090), 0644))
	require.NoError(t, r.AppendWithRotation(lineOf(10)))

	backup, err := afero.ReadFile(fs, "/events/powerevents.log.bak")
	require.NoError(t, err)
	assert.Len(t, backup, 4090)
}

func TestAppendWithRotation_ReadOnlyFs(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	r := NewRotator(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/events/powerevents.log", "/events/powerevents.log.bak", 0644, metrics)

	err := r.AppendWithRotation(lineOf(10))
	assert.Error(t, err)
	assert.Equal(t, 1, metrics.AppendErrors)
}

type renameFailFs struct {
	afero.Fs
}

func (f renameFailFs) Rename(_, _ string) error {
	return errors.New("rename refused")
}

func TestAppendWithRotation_RotateFailureStillAppends(t *testing.T) {
	base := afero.NewMemMapFs()
	metrics := &testutil.MockMetrics{}
	r := NewRotator(renameFailFs{base}, "/events/powerevents.log", "/events/powerevents.log.bak", 0644, metrics)
	require.NoError(t, afero.WriteFile(base, "/events/powerevents.log", bytes.Repeat([]byte{'m'}, 4090), 0644))

	err := r.AppendWithRotation(lineOf(10))
	assert.ErrorContains(t, err, "rename refused")
	assert.Equal(t, 1, metrics.AppendErrors)
	assert.Equal(t, 0, metrics.Rotations)

	active, err := afero.ReadFile(base, "/events/powerevents.log")
	require.NoError(t, err)
	assert.Len(t, active, 4100)
}

func TestAppendWithRotation_OversizedLineKeepsBackup(t *testing.T) {
	r, metrics := newTestRotator(t)
	require.NoError(t, os.WriteFile(r.BackupPath(), []byte("previous generation\r\n"), 0644))

	require.NoError(t, r.AppendWithRotation(lineOf(5000)))

	assert.Equal(t, "previous generation\r\n", string(readFile(t, r.BackupPath())))
	assert.Len(t, readFile(t, r.ActivePath()), 5000)
	assert.Equal(t, 0, metrics.Rotations)
	assert.Equal(t, 0, metrics.AppendErrors)
}

func TestAppendWithRotationTo_ExplicitPaths(t *testing.T) {
	r, _ := newTestRotator(t)
	dir := t.TempDir()
	active := filepath.Join(dir, "other.log")
	backup := filepath.Join(dir, "other.log.bak")

	require.NoError(t, r.AppendWithRotationTo(active, backup, models.NewLogLine("x\r\n")))
	assert.Equal(t, "x\r\n", string(readFile(t, active)))
}

func TestNewEventLogRotator_Paths(t *testing.T) {
	conf := &structures.Config{
		EventLog: structures.EventLogConfig{
			Dir:        "/var/lib/powerevents",
			FileMode:   0644,
			ActiveName: "powerevents.log",
			BackupName: "powerevents.log.bak",
		},
	}
	r := NewEventLogRotator(conf, afero.NewMemMapFs(), &testutil.MockMetrics{})
	assert.Equal(t, "/var/lib/powerevents/powerevents.log", r.ActivePath())
	assert.Equal(t, "/var/lib/powerevents/powerevents.log.bak", r.BackupPath())
}
