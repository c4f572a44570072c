package recorder

import (
	"context"
	"errors"
	"powerevents/internal/eventlog"
	"powerevents/internal/models"
	"powerevents/internal/persistence"
	"powerevents/internal/providers"
	"powerevents/internal/recorder/interfaces"
	"powerevents/internal/services"
	"powerevents/internal/structures"
	"strings"
	"time"
)

// Recorder logs the previous power interval once per boot and then keeps the
// alive field of the persistent record fresh until the context is cancelled.
type Recorder struct {
	logger   providers.Logger
	state    persistence.PersistentStateInterface
	rotator  eventlog.RotatorInterface
	clock    providers.ClockProviderInterface
	metrics  providers.MetricsProviderInterface
	interval time.Duration
	loc      *time.Location
	sleep    func(ctx context.Context, d time.Duration) bool
}

// Boot runs the startup sequence and returns the line it logged.
// Failures are reported and never stop the sequence.
func (r *Recorder) Boot(ctx context.Context) models.LogLine {
	rec, err := r.state.GetOrCreate()
	if err != nil {
		r.logger.Warnf(providers.TypeRecord, "Record unavailable, treating as first run: %s", err)
	}

	boot, err := r.clock.BootInstant(ctx)
	if err != nil {
		r.logger.Warnf(providers.TypeApp, "Boot instant falls back to current time: %s", err)
	}

	if services.IsClockSkewed(rec, boot) {
		r.logger.Warnf(providers.TypeRecord, "Clock skew detected (boot=%d alive=%d now=%d), negative intervals clamped to zero",
			rec.LastBootTime, rec.LastAliveTime, models.Millis(boot))
	}

	line := services.FormatUptime(rec, boot, r.loc)
	if err := r.rotator.AppendWithRotation(line); err != nil {
		r.logger.Errorf(providers.TypeRotate, "Unable to log power event to %s: %s", r.rotator.ActivePath(), err)
	} else {
		r.logger.Infof(providers.TypeRotate, "Power event: %s", strings.TrimRight(line.Text, "\r\n"))
	}

	if _, err := r.state.UpdateStart(boot); err != nil {
		r.logger.Errorf(providers.TypeRecord, "Unable to persist boot instant: %s", err)
	}
	r.metrics.SetLastBoot(models.Millis(boot))

	return line
}

// Run writes the current time into the alive field, then sleeps for the
// interval, until ctx is cancelled.
func (r *Recorder) Run(ctx context.Context) {
	for {
		r.tick()
		if !r.sleep(ctx, r.interval) {
			return
		}
	}
}

func (r *Recorder) Start(ctx context.Context) {
	r.Boot(ctx)
	r.Run(ctx)
}

func (r *Recorder) tick() {
	rec, err := r.state.UpdateLastAlive(r.clock.Now())
	if err != nil {
		r.metrics.IncTickErrors()
		if errors.Is(err, persistence.ErrNonMonotonic) {
			r.logger.Warnf(providers.TypeRecord, "Alive tick skipped: %s", err)
			return
		}
		r.logger.Errorf(providers.TypeRecord, "Alive tick failed: %s", err)
		return
	}
	r.metrics.IncTicks()
	r.metrics.SetLastAlive(rec.LastAliveTime)
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func location(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

func NewRecorder(config *structures.Config, logger providers.Logger, state persistence.PersistentStateInterface, rotator eventlog.RotatorInterface, clock providers.ClockProviderInterface, metrics providers.MetricsProviderInterface) interfaces.RecorderInterface {
	interval := config.Recorder.Interval
	if interval <= 0 {
		interval = time.Second
	}
	return &Recorder{
		logger:   logger,
		state:    state,
		rotator:  rotator,
		clock:    clock,
		metrics:  metrics,
		interval: interval,
		loc:      location(config.Recorder.Timezone),
		sleep:    sleepContext,
	}
}
