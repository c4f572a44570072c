package structures

import (
	"net/http"
	"time"
)

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type EventLogConfig struct {
	Dir        string `yaml:"dir" validate:"required|unixPath"`
	FileMode   uint32 `yaml:"fileMode" validate:"required|uint"`
	ActiveName string `yaml:"activeName"`
	BackupName string `yaml:"backupName"`
}

type StateConfig struct {
	Dir        string `yaml:"dir" validate:"required|unixPath"`
	RecordName string `yaml:"recordName"`
}

type RecorderConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
	Timezone string        `yaml:"timezone"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" validate:"uint|max:65535"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Server  Server `yaml:"server"`
}

type Config struct {
	AppName  string
	Version  string
	Debug    bool
	Path     string
	Logger   LoggerConfig   `yaml:"logger"`
	EventLog EventLogConfig `yaml:"eventLog"`
	State    StateConfig    `yaml:"state"`
	Recorder RecorderConfig `yaml:"recorder"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}
