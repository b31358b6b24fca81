package structures

import "time"

// Defaults applied when the config file leaves a collector knob unset.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultNoiseFloor   = time.Minute
	DefaultCooldown     = 2 * time.Minute
	DefaultHistoryCap   = 10000
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Dir string `yaml:"dir" validate:"required|unixPath"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// GameEndpoint names one monitored game and the adapter endpoint that
// serves its normalized presence data. The order of entries in the
// config file is the priority order used to tag multi-game players.
type GameEndpoint struct {
	ID  string `yaml:"id" validate:"required"`
	URL string `yaml:"url"`
}

type CollectorConfig struct {
	Interval     time.Duration  `yaml:"interval" validate:"required|min:1"`
	FetchTimeout time.Duration  `yaml:"fetchTimeout"`
	NoiseFloor   time.Duration  `yaml:"noiseFloor"`
	Cooldown     time.Duration  `yaml:"cooldown"`
	SnapshotCap  int            `yaml:"snapshotCap"`
	SessionCap   int            `yaml:"sessionCap"`
	ActivityCap  int            `yaml:"activityCap"`
	Games        []GameEndpoint `yaml:"games" validate:"required"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Collector   CollectorConfig `yaml:"collector"`
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}

// GameOrder returns the configured game IDs in priority order.
func (c *Config) GameOrder() []string {
	order := make([]string, 0, len(c.Collector.Games))
	for _, g := range c.Collector.Games {
		order = append(order, g.ID)
	}
	return order
}
