package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// ClockProviderInterface supplies wall-clock time and the boot instant of the current run.
type ClockProviderInterface interface {
	Now() time.Time
	BootInstant(ctx context.Context) (time.Time, error)
}

type ClockProvider struct {
	uptime func(ctx context.Context) (uint64, error)
	now    func() time.Time
}

func (c *ClockProvider) Now() time.Time {
	return c.now()
}

// BootInstant derives the start of the current run as now minus system uptime.
func (c *ClockProvider) BootInstant(ctx context.Context) (time.Time, error) {
	now := c.now()
	secs, err := c.uptime(ctx)
	if err != nil {
		return now, fmt.Errorf("read system uptime: %w", err)
	}
	return now.Add(-time.Duration(secs) * time.Second), nil
}

func NewClockProvider() ClockProviderInterface {
	return &ClockProvider{
		uptime: host.UptimeWithContext,
		now:    time.Now,
	}
}
