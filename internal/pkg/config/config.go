package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	WFS       WFSConfig       `mapstructure:"wfs"`
	Bounds    BoundsConfig    `mapstructure:"bounds"`
	Check     CheckConfig     `mapstructure:"check"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WFSConfig names the upstream endpoint and the datasets each check branch
// queries. Dataset names are upstream typeName values and configurable
// because the city renames layers between portal releases.
type WFSConfig struct {
	BaseURL        string         `mapstructure:"base_url"`
	TimeoutSeconds int            `mapstructure:"timeout_seconds"`
	Datasets       DatasetsConfig `mapstructure:"datasets"`
}

func (w WFSConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

type DatasetsConfig struct {
	Flood        string `mapstructure:"flood"`
	Noise        string `mapstructure:"noise"`
	Energy       string `mapstructure:"energy"`
	Plan         string `mapstructure:"plan"`
	Addresses    string `mapstructure:"addresses"`
	Kindergarten string `mapstructure:"kindergarten"`
	School       string `mapstructure:"school"`
	Hospital     string `mapstructure:"hospital"`
	CareHome     string `mapstructure:"care_home"`
}

// BoundsConfig is the city envelope in both coordinate systems. Points
// outside either envelope are rejected before projection.
type BoundsConfig struct {
	Geo   GeoBoundsConfig   `mapstructure:"geo"`
	Local LocalBoundsConfig `mapstructure:"local"`
}

type GeoBoundsConfig struct {
	MinLat float64 `mapstructure:"min_lat"`
	MinLon float64 `mapstructure:"min_lon"`
	MaxLat float64 `mapstructure:"max_lat"`
	MaxLon float64 `mapstructure:"max_lon"`
}

type LocalBoundsConfig struct {
	MinX float64 `mapstructure:"min_x"`
	MinY float64 `mapstructure:"min_y"`
	MaxX float64 `mapstructure:"max_x"`
	MaxY float64 `mapstructure:"max_y"`
}

type CheckConfig struct {
	BufferMeters float64 `mapstructure:"buffer_meters"`
	RadiusMeters float64 `mapstructure:"radius_meters"`
	PlanLookup   string  `mapstructure:"plan_lookup"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("wfs.base_url", "https://data.wien.gv.at/daten/geo")
	v.SetDefault("wfs.timeout_seconds", 10)
	v.SetDefault("wfs.datasets.flood", "ogdwien:HOCHWASSEROGD")
	v.SetDefault("wfs.datasets.noise", "ogdwien:UMGEBUNGSLAERMOGD")
	v.SetDefault("wfs.datasets.energy", "ogdwien:ENERGIERAUMPLANOGD")
	v.SetDefault("wfs.datasets.plan", "ogdwien:FLAECHENWIDMUNGOGD")
	v.SetDefault("wfs.datasets.addresses", "ogdwien:ADRESSENOGD")
	v.SetDefault("wfs.datasets.kindergarten", "ogdwien:KINDERGARTENOGD")
	v.SetDefault("wfs.datasets.school", "ogdwien:SCHULEOGD")
	v.SetDefault("wfs.datasets.hospital", "ogdwien:KRANKENHAUSOGD")
	v.SetDefault("wfs.datasets.care_home", "ogdwien:PFLEGEWOHNHAUSOGD")
	v.SetDefault("bounds.geo.min_lat", 48.05)
	v.SetDefault("bounds.geo.min_lon", 16.10)
	v.SetDefault("bounds.geo.max_lat", 48.35)
	v.SetDefault("bounds.geo.max_lon", 16.60)
	v.SetDefault("bounds.local.min_x", -17500.0)
	v.SetDefault("bounds.local.min_y", 325000.0)
	v.SetDefault("bounds.local.max_x", 17500.0)
	v.SetDefault("bounds.local.max_y", 360000.0)
	v.SetDefault("check.buffer_meters", 50.0)
	v.SetDefault("check.radius_meters", 200.0)
	v.SetDefault("check.plan_lookup", "https://www.wien.gv.at/flaechenwidmung/public/?bookmark=")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "standortcheck")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "standortcheck")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.enabled", false)
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: STANDORTCHECK_WFS_BASE_URL → wfs.base_url
	v.SetEnvPrefix("STANDORTCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.WFS.BaseURL == "" {
		errs = append(errs, "wfs.base_url is required")
	}
	if c.WFS.TimeoutSeconds <= 0 {
		errs = append(errs, "wfs.timeout_seconds must be positive")
	}
	for name, ds := range map[string]string{
		"wfs.datasets.flood":     c.WFS.Datasets.Flood,
		"wfs.datasets.noise":     c.WFS.Datasets.Noise,
		"wfs.datasets.energy":    c.WFS.Datasets.Energy,
		"wfs.datasets.plan":      c.WFS.Datasets.Plan,
		"wfs.datasets.addresses": c.WFS.Datasets.Addresses,
	} {
		if ds == "" {
			errs = append(errs, name+" is required")
		}
	}
	if c.Bounds.Geo.MinLat >= c.Bounds.Geo.MaxLat || c.Bounds.Geo.MinLon >= c.Bounds.Geo.MaxLon {
		errs = append(errs, "bounds.geo must describe a non-empty envelope")
	}
	if c.Bounds.Local.MinX >= c.Bounds.Local.MaxX || c.Bounds.Local.MinY >= c.Bounds.Local.MaxY {
		errs = append(errs, "bounds.local must describe a non-empty envelope")
	}
	if c.Check.BufferMeters <= 0 {
		errs = append(errs, "check.buffer_meters must be positive")
	}
	if c.Check.RadiusMeters <= 0 {
		errs = append(errs, "check.radius_meters must be positive")
	}
	if c.Database.Enabled {
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
		}
		if c.Database.User == "" {
			errs = append(errs, "database.user is required")
		}
		if c.Database.DBName == "" {
			errs = append(errs, "database.dbname is required")
		}
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Enabled && c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
