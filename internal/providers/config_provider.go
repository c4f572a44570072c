package providers

import (
	"fmt"
	"path/filepath"
	"powerevents/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

const (
	AppName = "PowerEventLog"
	Version = "v1.0"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("eventLog.fileMode", 0644)
	v.SetDefault("eventLog.activeName", "powerevents.log")
	v.SetDefault("eventLog.backupName", "powerevents.log.bak")
	v.SetDefault("state.recordName", "StartandLast")
	v.SetDefault("recorder.interval", AliveInterval)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.server.host", "127.0.0.1")
	v.SetDefault("metrics.server.port", 9120)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("logger.level", "PEL_LOG_LEVEL")
	_ = v.BindEnv("logger.dir", "PEL_LOG_DIR")
	_ = v.BindEnv("eventLog.dir", "PEL_EVENTLOG_DIR")
	_ = v.BindEnv("state.dir", "PEL_STATE_DIR")
	_ = v.BindEnv("recorder.timezone", "PEL_TIMEZONE")
	_ = v.BindEnv("metrics.enabled", "PEL_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Version = Version
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
