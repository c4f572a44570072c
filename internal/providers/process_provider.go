package providers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ProcessGuardInterface reports how many instances of this program are running.
type ProcessGuardInterface interface {
	Count() (int, error)
	IsDuplicate() (bool, error)
}

type ProcessGuard struct {
	name      string
	processes func() ([]ps.Process, error)
}

// Count returns the number of running processes whose executable matches this one,
// including the current process.
func (g *ProcessGuard) Count() (int, error) {
	procs, err := g.processes()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, p := range procs {
		if g.matches(p.Executable()) {
			count++
		}
	}
	return count, nil
}

// Linux truncates the process command name to 15 bytes.
const commLen = 15

func (g *ProcessGuard) matches(exe string) bool {
	if strings.EqualFold(exe, g.name) {
		return true
	}
	return len(exe) == commLen && len(g.name) > commLen && strings.EqualFold(exe, g.name[:commLen])
}

func (g *ProcessGuard) IsDuplicate() (bool, error) {
	n, err := g.Count()
	if err != nil {
		return false, err
	}
	return n > 1, nil
}

func executableName() string {
	name := filepath.Base(os.Args[0])
	if exe, err := os.Executable(); err == nil {
		name = filepath.Base(exe)
	}
	return name
}

func NewProcessGuard() ProcessGuardInterface {
	return &ProcessGuard{
		name:      executableName(),
		processes: ps.Processes,
	}
}
