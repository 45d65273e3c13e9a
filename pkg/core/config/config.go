package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	fconfig "github.com/msto63/exact/foundation/core/config"
)

// EnvPrefix prefixes every environment override, e.g. EXACT_GRPC_PORT
const EnvPrefix = "EXACT"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	GRPC    GRPCConfig    `toml:"grpc"`
	HTTP    HTTPConfig    `toml:"http"`
	Calc    CalcConfig    `toml:"calc"`

	source string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// GRPCConfig holds the gRPC listener settings
type GRPCConfig struct {
	Host             string `toml:"host"`
	Port             int    `toml:"port"`
	EnableReflection bool   `toml:"enable_reflection"`
}

// HTTPConfig holds the REST and WebSocket gateway settings
type HTTPConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// CalcConfig holds limits of the calc service
type CalcConfig struct {
	MaxSeriesLength int `toml:"max_series_length"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the built-in values in dot-notation form
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"general": map[string]interface{}{
			"name":       "exact",
			"log_level":  "info",
			"log_format": "json",
		},
		"grpc": map[string]interface{}{
			"host":              "0.0.0.0",
			"port":              9300,
			"enable_reflection": false,
		},
		"http": map[string]interface{}{
			"host":          "0.0.0.0",
			"port":          8300,
			"read_timeout":  "30s",
			"write_timeout": "30s",
		},
		"calc": map[string]interface{}{
			"max_series_length": 10000,
		},
	}
}

var rules = fconfig.ValidationRules{
	"general.log_level":      {Type: "string", OneOf: []string{"trace", "debug", "info", "warn", "warning", "error", "fatal"}},
	"general.log_format":     {Type: "string", OneOf: []string{"json", "text", "logfmt", "console"}},
	"grpc.port":              {Required: true, Type: "int", Min: fconfig.Bound(1), Max: fconfig.Bound(65535)},
	"grpc.enable_reflection": {Type: "bool"},
	"http.port":              {Required: true, Type: "int", Min: fconfig.Bound(1), Max: fconfig.Bound(65535)},
	"http.read_timeout":      {Type: "duration"},
	"http.write_timeout":     {Type: "duration"},
	"calc.max_series_length": {Type: "int", Min: fconfig.Bound(1)},
}

// Default returns the configuration used when no file exists. Environment
// overrides still apply.
func Default() (*Config, error) {
	return fromSource(fconfig.Empty(EnvPrefix, Defaults()))
}

// Load loads configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	src, err := fconfig.LoadWithOptions(path, fconfig.LoadOptions{
		Format:    fconfig.FormatAuto,
		EnvPrefix: EnvPrefix,
		Defaults:  Defaults(),
	})
	if err != nil {
		return nil, err
	}
	return fromSource(src)
}

// LoadFromEnv loads the file named by EXACT_CONFIG, or the first config
// file found in the default locations, or the defaults
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return Load(path)
	}

	src, err := fconfig.Discover(fconfig.DiscoveryOptions{
		Paths:     []string{"./configs", ".", "~/.config/exact"},
		Filenames: []string{"config"},
		EnvPrefix: EnvPrefix,
		Defaults:  Defaults(),
	})
	if err != nil {
		return nil, err
	}
	return fromSource(src)
}

func fromSource(src *fconfig.Config) (*Config, error) {
	if err := src.Validate(rules).Err(); err != nil {
		return nil, err
	}

	return &Config{
		General: GeneralConfig{
			Name:      src.GetString("general.name"),
			LogLevel:  src.GetString("general.log_level"),
			LogFormat: src.GetString("general.log_format"),
		},
		GRPC: GRPCConfig{
			Host:             src.GetString("grpc.host"),
			Port:             src.GetInt("grpc.port"),
			EnableReflection: src.GetBool("grpc.enable_reflection"),
		},
		HTTP: HTTPConfig{
			Host:         src.GetString("http.host"),
			Port:         src.GetInt("http.port"),
			ReadTimeout:  Duration{src.GetDuration("http.read_timeout")},
			WriteTimeout: Duration{src.GetDuration("http.write_timeout")},
		},
		Calc: CalcConfig{
			MaxSeriesLength: src.GetInt("calc.max_series_length"),
		},
		source: src.FilePath(),
	}, nil
}

// Source returns the file the configuration was loaded from, or "" for
// built-in defaults
func (c *Config) Source() string {
	return c.source
}

// GRPCAddress returns the gRPC listen address
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.GRPC.Host, c.GRPC.Port)
}

// HTTPAddress returns the HTTP gateway listen address
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

// Encode writes the effective configuration as TOML
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
