package controllers

import (
	"fmt"
	"net/http"
	"powerevents/internal/eventlog"
	"powerevents/internal/persistence"
	"powerevents/internal/services"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	state     persistence.PersistentStateInterface
	rotator   eventlog.RotatorInterface
	startTime time.Time
	now       func() time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

type statusResponse struct {
	LastBootTime  int64  `json:"last_boot_time"`
	LastAliveTime int64  `json:"last_alive_time"`
	AliveAge      string `json:"alive_age"`
	RunUptime     string `json:"run_uptime"`
	ActiveLog     string `json:"active_log"`
	BackupLog     string `json:"backup_log"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	uptime := hc.now().Sub(hc.startTime)
	writeJSON(w, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
	})
}

// Status exposes the in-memory power record of the current run.
func (hc *HealthController) Status(w http.ResponseWriter, r *http.Request) {
	rec := hc.state.Snapshot()
	resp := statusResponse{
		LastBootTime:  rec.LastBootTime,
		LastAliveTime: rec.LastAliveTime,
		ActiveLog:     hc.rotator.ActivePath(),
		BackupLog:     hc.rotator.BackupPath(),
	}
	if !rec.IsFirstRun() {
		resp.AliveAge = formatDuration(hc.now().Sub(rec.AliveTime()))
		resp.RunUptime = services.SplitMillis(services.UpMillis(rec)).String()
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(state persistence.PersistentStateInterface, rotator eventlog.RotatorInterface) *HealthController {
	return &HealthController{
		state:     state,
		rotator:   rotator,
		startTime: time.Now(),
		now:       time.Now,
	}
}
