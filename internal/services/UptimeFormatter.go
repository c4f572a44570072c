package services

import (
	"fmt"
	"powerevents/internal/models"
	"time"
)

const (
	msPerDay    = 86_400_000
	msPerHour   = 3_600_000
	msPerMinute = 60_000
	msPerSecond = 1_000
)

// FirstRunLine is logged when no previous alive tick exists.
const FirstRunLine = "First Time Running...\r\n"

// BootDateLayout renders the boot instant as MM/dd/yy HH:mm:ss plus zone abbreviation.
const BootDateLayout = "01/02/06 15:04:05 MST"

// Span is a duration split into whole days, hours, minutes and seconds.
type Span struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// SplitMillis decomposes ms using fixed day/hour/minute divisors.
// Negative input is clamped to zero.
func SplitMillis(ms int64) Span {
	if ms < 0 {
		ms = 0
	}
	rem := ms % msPerDay
	return Span{
		Days:    ms / msPerDay,
		Hours:   rem / msPerHour,
		Minutes: (rem % msPerHour) / msPerMinute,
		Seconds: (rem % msPerMinute) / msPerSecond,
	}
}

// Millis reassembles the span, truncated to whole seconds.
func (s Span) Millis() int64 {
	return s.Days*msPerDay + s.Hours*msPerHour + s.Minutes*msPerMinute + s.Seconds*msPerSecond
}

func (s Span) String() string {
	return fmt.Sprintf("%d days %02d:%02d:%02d", s.Days, s.Hours, s.Minutes, s.Seconds)
}

// UpMillis is how long the previous run lasted up to its last alive tick.
func UpMillis(rec models.PowerRecord) int64 {
	return rec.LastAliveTime - rec.LastBootTime
}

// DownMillis is the inferred outage between the last alive tick and boot.
func DownMillis(rec models.PowerRecord, boot time.Time) int64 {
	return models.Millis(boot) - rec.LastAliveTime
}

// IsClockSkewed reports whether either interval would be negative.
func IsClockSkewed(rec models.PowerRecord, boot time.Time) bool {
	if rec.IsFirstRun() {
		return false
	}
	return UpMillis(rec) < 0 || DownMillis(rec, boot) < 0
}

// FormatUptime builds the power event line for the current boot.
func FormatUptime(rec models.PowerRecord, boot time.Time, loc *time.Location) models.LogLine {
	if rec.IsFirstRun() {
		return models.NewLogLine(FirstRunLine)
	}
	if loc == nil {
		loc = time.Local
	}

	up := SplitMillis(UpMillis(rec))
	down := SplitMillis(DownMillis(rec, boot))

	return models.NewLogLine(fmt.Sprintf("%s, Up: %s. Down: %s\r\n",
		boot.In(loc).Format(BootDateLayout), up, down))
}
