package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"powerevents/internal/eventlog"
	"powerevents/internal/persistence"
	"powerevents/internal/providers"
	"powerevents/internal/recorder"
	"powerevents/internal/structures"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	numBoots     = 2000
	maxUptime    = 72 * time.Hour
	maxDowntime  = 14 * 24 * time.Hour
	ticksPerBoot = 5
)

// simClock is advanced by the harness between simulated boots.
type simClock struct {
	boot time.Time
	now  time.Time
}

func (c *simClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func (c *simClock) BootInstant(_ context.Context) (time.Time, error) {
	return c.boot, nil
}

// quietLogger drops everything but errors.
type quietLogger struct {
	errors int
}

func (l *quietLogger) Errorf(_ providers.TypeEnum, format string, args ...interface{}) {
	l.errors++
	fmt.Printf("  ERROR "+format+"\n", args...)
}
func (l *quietLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (l *quietLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (l *quietLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (l *quietLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (l *quietLogger) Close()                                                  {}

func main() {
	dir, err := os.MkdirTemp("", "powercycle")
	if err != nil {
		fmt.Println("FAILED:", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	fmt.Println("=== Power Cycle Simulation ===")
	fmt.Printf("Boots: %d | Ticks per boot: %d | Dir: %s\n\n", numBoots, ticksPerBoot, dir)

	conf := &structures.Config{
		EventLog: structures.EventLogConfig{Dir: dir, FileMode: 0644, ActiveName: "powerevents.log", BackupName: "powerevents.log.bak"},
		State:    structures.StateConfig{Dir: dir, RecordName: "StartandLast"},
		Recorder: structures.RecorderConfig{Interval: time.Second, Timezone: "UTC"},
	}
	fs := afero.NewOsFs()
	metrics := providers.NewMetricsProvider(conf)
	logger := &quietLogger{}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	clock := &simClock{boot: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	var bootLatencies []time.Duration
	violations := 0

	for i := 0; i < numBoots; i++ {
		clock.now = clock.boot.Add(time.Duration(rng.Int63n(int64(time.Minute))))

		// every boot is a fresh process reading the same files
		state := persistence.NewPersistentState(persistence.NewRecordMedium(conf, fs), metrics)
		rotator := eventlog.NewEventLogRotator(conf, fs, metrics)
		rec := recorder.NewRecorder(conf, logger, state, rotator, clock, metrics)

		start := time.Now()
		line := rec.Boot(context.Background())
		bootLatencies = append(bootLatencies, time.Since(start))

		if i > 0 && !strings.Contains(line.Text, "Up: ") {
			violations++
			fmt.Printf("  boot %d logged %q\n", i, line.Text)
		}

		for t := 0; t < ticksPerBoot; t++ {
			_, _ = state.UpdateLastAlive(clock.Now())
		}

		violations += checkFiles(dir)

		uptime := time.Duration(rng.Int63n(int64(maxUptime)))
		downtime := time.Duration(rng.Int63n(int64(maxDowntime)))
		clock.boot = clock.now.Add(uptime).Add(downtime)
	}

	sort.Slice(bootLatencies, func(i, j int) bool { return bootLatencies[i] < bootLatencies[j] })
	fmt.Printf("  Boot latency  avg %s | p50 %s | p95 %s | p99 %s\n",
		fmtDur(avgDuration(bootLatencies)),
		fmtDur(percentile(bootLatencies, 0.50)),
		fmtDur(percentile(bootLatencies, 0.95)),
		fmtDur(percentile(bootLatencies, 0.99)))
	fmt.Printf("  Errors: %d | Violations: %d\n", logger.errors, violations)

	if logger.errors > 0 || violations > 0 {
		os.Exit(1)
	}
	fmt.Println("OK")
}

// checkFiles verifies that only the log pair and the record exist and that
// the active log stays within one line of the ceiling.
func checkFiles(dir string) int {
	violations := 0
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Println("  readdir:", err)
		return 1
	}
	if len(entries) > 3 {
		violations++
		fmt.Printf("  unexpected files: %d\n", len(entries))
	}
	info, err := os.Stat(filepath.Join(dir, "powerevents.log"))
	if err == nil && info.Size() > eventlog.MaxActiveSize {
		violations++
		fmt.Printf("  active log too large: %d\n", info.Size())
	}
	return violations
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
