package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"mpsd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "MPSD_LOG_LEVEL")
	viper.BindEnv("collector.interval", "MPSD_POLL_INTERVAL")
	viper.BindEnv("collector.cooldown", "MPSD_NOTIFY_COOLDOWN")
	viper.BindEnv("persistence.dir", "MPSD_DATA_DIR")
	viper.BindEnv("cache.enabled", "MPSD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "MPSD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "MultiPresenceStatisticDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	c := &conf.Collector
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = structures.DefaultFetchTimeout
	}
	if c.NoiseFloor <= 0 {
		c.NoiseFloor = structures.DefaultNoiseFloor
	}
	if c.Cooldown <= 0 {
		c.Cooldown = structures.DefaultCooldown
	}
	if c.SnapshotCap <= 0 {
		c.SnapshotCap = structures.DefaultHistoryCap
	}
	if c.SessionCap <= 0 {
		c.SessionCap = structures.DefaultHistoryCap
	}
	if c.ActivityCap <= 0 {
		c.ActivityCap = structures.DefaultHistoryCap
	}
}
