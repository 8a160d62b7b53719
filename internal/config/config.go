// Package config defines the application configuration and the functions for
// loading it from YAML, the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/finance-calculators/internal/history"
	"github.com/iwvelando/finance-calculators/internal/server"
	"github.com/iwvelando/finance-calculators/internal/tracing"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/tiers"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

const defaultServiceName = "finance-calculators"

// Configuration holds all configuration for finance-calculators.
type Configuration struct {
	Logging LoggingConfig           `mapstructure:"logging" yaml:"logging,omitempty"`
	Output  OutputConfig            `mapstructure:"output" yaml:"output,omitempty"`
	Server  server.Config           `mapstructure:"server" yaml:"server,omitempty"`
	History history.Config          `mapstructure:"history" yaml:"history,omitempty"`
	Tracing tracing.Config          `mapstructure:"tracing" yaml:"tracing,omitempty"`
	Sliders map[string]tiers.Config `mapstructure:"sliders" yaml:"sliders,omitempty"`
	Limits  validation.Limits       `mapstructure:"limits" yaml:"limits,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration loads the YAML-formatted configuration at configPath with
// environment overrides applied. An empty path falls back to config.yaml in
// the working directory when it exists, and to the defaults otherwise.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if configPath == "" {
		if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
			configPath = constants.DefaultConfigFile
		}
	}

	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// Default returns the built-in configuration without reading a file or the
// environment.
func Default() *Configuration {
	conf := &Configuration{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Output:  OutputConfig{Format: constants.OutputFormatPretty},
		Server:  server.DefaultConfig(),
		History: history.Config{Backend: constants.HistoryBackendMemory, KeyPrefix: constants.DefaultHistoryKeyPrefix},
		Tracing: tracing.Config{ServiceName: defaultServiceName},
	}
	_ = conf.Normalize()
	return conf
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file, %s", err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.engine", constants.ServerEngineNet)
	v.SetDefault("server.maxBodySize", "64K")
	v.SetDefault("server.version", "")
	v.SetDefault("history.backend", constants.HistoryBackendMemory)
	v.SetDefault("history.path", "")
	v.SetDefault("history.redisAddr", "")
	v.SetDefault("history.redisDB", 0)
	v.SetDefault("history.keyPrefix", constants.DefaultHistoryKeyPrefix)
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.insecure", false)
	v.SetDefault("tracing.serviceName", defaultServiceName)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if err := configuration.Normalize(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Normalize validates the configuration and layers slider and limit
// overrides on top of the built-in defaults.
func (c *Configuration) Normalize() error {
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	format, err := validation.ParseOutputFormat(c.Output.Format)
	if err != nil {
		return err
	}
	c.Output.Format = format

	if err := c.Server.Normalize(); err != nil {
		return err
	}

	switch c.History.Backend {
	case "":
		c.History.Backend = constants.HistoryBackendMemory
	case constants.HistoryBackendMemory, constants.HistoryBackendSQLite, constants.HistoryBackendRedis:
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}

	sliders := tiers.DefaultConfigs()
	for _, name := range sortedKeys(c.Sliders) {
		if _, ok := sliders[name]; !ok {
			return fmt.Errorf("unknown slider %q", name)
		}
		if err := c.Sliders[name].Validate(); err != nil {
			return fmt.Errorf("slider %s: %w", name, err)
		}
		sliders[name] = c.Sliders[name]
	}
	c.Sliders = sliders

	defaults := validation.DefaultLimits()
	for _, field := range sortedKeys(c.Limits) {
		if _, ok := defaults[field]; !ok {
			return fmt.Errorf("unknown limit %q", field)
		}
		r := c.Limits[field]
		if r.Max != 0 && r.Max < r.Min {
			return fmt.Errorf("limit %s: max %.2f below min %.2f", field, r.Max, r.Min)
		}
		if field == validation.FieldMonths && (r.Max == 0 || r.Max > constants.MaxTenureMonths) {
			return fmt.Errorf("limit %s: max must be between 1 and %d", field, constants.MaxTenureMonths)
		}
	}
	c.Limits = defaults.Merge(c.Limits)
	return nil
}

// Slider returns the tier configuration for an amount input.
func (c *Configuration) Slider(name string) (tiers.Config, bool) {
	cfg, ok := c.Sliders[name]
	return cfg, ok
}

// WriteYAML writes the effective configuration.
func (c *Configuration) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return err
	}
	return encoder.Close()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
