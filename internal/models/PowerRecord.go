package models

import "time"

// RecordName identifies the persistent boot/alive record on the device.
const RecordName = "StartandLast"

// PowerRecord is the two-field record that survives power loss.
// Both fields are milliseconds since the Unix epoch; zero means "never recorded".
type PowerRecord struct {
	LastBootTime  int64 `json:"last_boot_time"`
	LastAliveTime int64 `json:"last_alive_time"`
}

// IsFirstRun reports whether no alive tick was ever persisted.
func (r PowerRecord) IsFirstRun() bool {
	return r.LastAliveTime == 0
}

func (r PowerRecord) BootTime() time.Time {
	return time.UnixMilli(r.LastBootTime)
}

func (r PowerRecord) AliveTime() time.Time {
	return time.UnixMilli(r.LastAliveTime)
}

// Millis converts an instant to the record's time unit.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
