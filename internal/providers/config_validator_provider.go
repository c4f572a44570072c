package providers

import (
	"errors"
	"fmt"
	"powerevents/internal/structures"
	"time"

	"github.com/gookit/validate"
)

const AliveInterval = time.Second

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.String())
	}

	if c.conf.EventLog.ActiveName == "" || c.conf.EventLog.BackupName == "" {
		return errors.New("invalid config: eventLog active and backup names are required")
	}
	if c.conf.EventLog.ActiveName == c.conf.EventLog.BackupName {
		return errors.New("invalid config: eventLog active and backup names must differ")
	}
	if c.conf.State.RecordName == "" {
		return errors.New("invalid config: state.recordName is required")
	}
	// The alive cadence is fixed; downtime resolution depends on it.
	if c.conf.Recorder.Interval != AliveInterval {
		return fmt.Errorf("invalid config: recorder.interval must be %s, got %s", AliveInterval, c.conf.Recorder.Interval)
	}
	if c.conf.Recorder.Timezone != "" {
		if _, err := time.LoadLocation(c.conf.Recorder.Timezone); err != nil {
			return fmt.Errorf("invalid config: recorder.timezone: %w", err)
		}
	}
	if c.conf.Metrics.Enabled && c.conf.Metrics.Server.Port <= 0 {
		return errors.New("invalid config: metrics.server.port is required when metrics are enabled")
	}
	return nil
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}
