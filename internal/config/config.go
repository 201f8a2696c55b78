package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"ossreport/pkg/contracts/domain"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Keywords  KeywordConfig   `yaml:"keywords" ignored:"true"`
	Cache     CacheConfig     `yaml:"cache" envconfig:"CACHE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST"`
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	IncludeStack    bool          `yaml:"include_stack" envconfig:"INCLUDE_STACK"`
	AllowedOrigins  []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	// ReportRPS limits report builds per second across all clients; 0 disables
	ReportRPS   float64 `yaml:"report_rps" envconfig:"REPORT_RPS" validate:"min=0"`
	ReportBurst int     `yaml:"report_burst" envconfig:"REPORT_BURST" validate:"min=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ReportConfig holds the business rules the aggregation needs from outside
type ReportConfig struct {
	// GoverningAuthority is the AUTHORITY value kept by scoped aggregation
	GoverningAuthority string `yaml:"governing_authority" envconfig:"GOVERNING_AUTHORITY" validate:"required"`
	// UnfilteredSections names report sections aggregated over every authority
	UnfilteredSections []string          `yaml:"unfiltered_sections" envconfig:"UNFILTERED_SECTIONS"`
	RiskAliases        map[string]string `yaml:"risk_aliases" envconfig:"RISK_ALIASES"`
	TopN               int               `yaml:"top_n" envconfig:"TOP_N" validate:"min=1"`
	DefaultYear        int               `yaml:"default_year" envconfig:"DEFAULT_YEAR" validate:"omitempty,min=2000,max=2100"`
}

// KeywordConfig overrides the built-in keyword dictionaries. Keys are dataset
// kinds and canonical field names.
type KeywordConfig struct {
	Fields map[string]map[string][]string `yaml:"fields"`
	Sheets map[string][]string            `yaml:"sheets"`
}

// CacheConfig sizes the dataset cache
type CacheConfig struct {
	Size int `yaml:"size" envconfig:"SIZE" validate:"min=1"`
}

// TelemetryConfig controls tracing and metrics
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	TracingEnabled bool   `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir   string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Load builds the configuration from defaults, the optional YAML file and
// OSS_* environment variables, in that order.
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file
func LoadFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile decodes a YAML file on top of cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct tags and the keyword overrides
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}

	for kind, fields := range c.Keywords.Fields {
		if _, err := domain.ParseDatasetKind(kind); err != nil {
			return fmt.Errorf("keywords.fields: %w", err)
		}
		for field, patterns := range fields {
			if _, err := domain.ParseCanonicalField(field); err != nil {
				return fmt.Errorf("keywords.fields.%s: %w", kind, err)
			}
			if len(patterns) == 0 {
				return fmt.Errorf("keywords.fields.%s.%s: empty pattern list", kind, field)
			}
		}
	}
	for kind := range c.Keywords.Sheets {
		if _, err := domain.ParseDatasetKind(kind); err != nil {
			return fmt.Errorf("keywords.sheets: %w", err)
		}
	}

	return nil
}

// IsUnfiltered reports whether a report section is aggregated without the
// authority filter
func (c *Config) IsUnfiltered(section string) bool {
	for _, s := range c.Report.UnfilteredSections {
		if strings.EqualFold(strings.TrimSpace(s), section) {
			return true
		}
	}
	return false
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if p := os.Getenv(ConfigFileEnv); p != "" {
		return p
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/ossreport.log",
		},
		Report: ReportConfig{
			GoverningAuthority: DefaultGoverningAuthority,
			RiskAliases:        DefaultRiskAliases(),
			TopN:               DefaultTopN,
		},
		Cache: CacheConfig{
			Size: DefaultCacheSize,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "ossreport",
			MetricsEnabled: true,
		},
		Paths: PathsConfig{
			DataDir:   DefaultDataDir,
			OutputDir: DefaultOutputDir,
			LogsDir:   DefaultLogsDir,
		},
	}
}
