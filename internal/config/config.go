package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP      HTTPConfig      `koanf:"server"`
	Graph     GraphConfig     `koanf:"graph"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	MetricsEnabled    bool          `koanf:"metrics_enabled"`
	AllowedOriginsCSV string        `koanf:"allowed_origins"`
}

// GraphConfig describes connectivity to the Neo4j metadata store.
type GraphConfig struct {
	URI            string `koanf:"uri"`
	Database       string `koanf:"database"`
	Username       string `koanf:"username"`
	Password       string `koanf:"password"`
	MaxConnections int    `koanf:"max_connections" validate:"min=0"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `koanf:"level" validate:"oneof=debug info warn warning error"`
	Format        string `koanf:"format" validate:"oneof=text json"`
	IncludeCaller bool   `koanf:"include_caller"`
}

// CatalogConfig selects where user and product metadata is read from.
type CatalogConfig struct {
	Backend      string `koanf:"backend" validate:"oneof=csv graph sql"`
	UsersPath    string `koanf:"users_path" validate:"required_if=Backend csv"`
	ProductsPath string `koanf:"products_path" validate:"required_if=Backend csv"`
	SQLDriver    string `koanf:"sql_driver" validate:"oneof=sqlite postgres"`
	SQLDSN       string `koanf:"sql_dsn" validate:"required_if=Backend sql"`
}

// RecommendConfig configures the recommendation sources.
type RecommendConfig struct {
	DefaultSource     string        `koanf:"default_source" validate:"oneof=remote static"`
	Endpoint          string        `koanf:"endpoint" validate:"required_if=DefaultSource remote"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	StaticDatasetPath string        `koanf:"static_dataset" validate:"required"`
	MaxResults        int           `koanf:"max_results" validate:"min=1"`
	Breaker           BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker around the remote source.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"min=1"`
}

// PathEnvVar overrides the configuration file location.
const PathEnvVar = "CONFIG_PATH"

// DefaultPaths are searched in order when PathEnvVar is unset.
var DefaultPaths = []string{"config.yaml", "config.yml"}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

func defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Graph: GraphConfig{
			MaxConnections: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Catalog: CatalogConfig{
			Backend:      "csv",
			UsersPath:    "./data/users.csv",
			ProductsPath: "./data/products.csv",
			SQLDriver:    "sqlite",
		},
		Recommend: RecommendConfig{
			DefaultSource:     "static",
			StaticDatasetPath: "./data/example_recommendations_retail.csv",
			MaxResults:        1,
			Breaker: BreakerConfig{
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load() (Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit YAML file. An empty path skips the file
// layer.
func LoadFile(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Catalog.Backend = strings.ToLower(strings.TrimSpace(cfg.Catalog.Backend))
	cfg.Recommend.DefaultSource = strings.ToLower(strings.TrimSpace(cfg.Recommend.DefaultSource))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-section requirements.
func (c Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Recommend.Endpoint != "" {
		u, err := url.Parse(c.Recommend.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: RECOMMEND_ENDPOINT %q is not an absolute URL", ErrInvalid, c.Recommend.Endpoint)
		}
	}
	if c.Catalog.Backend == "graph" && c.Graph.URI == "" {
		return fmt.Errorf("%w: GRAPH_URI is required when the catalog backend is graph", ErrInvalid)
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envKeys maps environment variables onto configuration paths. Variables not
// listed are ignored.
var envKeys = map[string]string{
	"SERVER_HOST":             "server.host",
	"SERVER_PORT":             "server.port",
	"SERVER_READ_TIMEOUT":     "server.read_timeout",
	"SERVER_WRITE_TIMEOUT":    "server.write_timeout",
	"SERVER_IDLE_TIMEOUT":     "server.idle_timeout",
	"SERVER_SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
	"SERVER_METRICS_ENABLED":  "server.metrics_enabled",
	"SERVER_ALLOWED_ORIGINS":  "server.allowed_origins",

	"GRAPH_URI":             "graph.uri",
	"GRAPH_DATABASE":        "graph.database",
	"GRAPH_USERNAME":        "graph.username",
	"GRAPH_PASSWORD":        "graph.password",
	"GRAPH_MAX_CONNECTIONS": "graph.max_connections",

	"LOG_LEVEL":          "logging.level",
	"LOG_FORMAT":         "logging.format",
	"LOG_INCLUDE_CALLER": "logging.include_caller",

	"CATALOG_BACKEND":       "catalog.backend",
	"CATALOG_USERS_PATH":    "catalog.users_path",
	"CATALOG_PRODUCTS_PATH": "catalog.products_path",
	"CATALOG_SQL_DRIVER":    "catalog.sql_driver",
	"CATALOG_SQL_DSN":       "catalog.sql_dsn",

	"RECOMMEND_DEFAULT_SOURCE":            "recommend.default_source",
	"RECOMMEND_ENDPOINT":                  "recommend.endpoint",
	"RECOMMEND_API_KEY":                   "recommend.api_key",
	"RECOMMEND_TIMEOUT":                   "recommend.timeout",
	"RECOMMEND_STATIC_DATASET":            "recommend.static_dataset",
	"RECOMMEND_MAX_RESULTS":               "recommend.max_results",
	"RECOMMEND_BREAKER_ENABLED":           "recommend.breaker.enabled",
	"RECOMMEND_BREAKER_MAX_REQUESTS":      "recommend.breaker.max_requests",
	"RECOMMEND_BREAKER_INTERVAL":          "recommend.breaker.interval",
	"RECOMMEND_BREAKER_TIMEOUT":           "recommend.breaker.timeout",
	"RECOMMEND_BREAKER_FAILURE_THRESHOLD": "recommend.breaker.failure_threshold",
}

func envKey(name string) string {
	return envKeys[name]
}
