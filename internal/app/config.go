package app

import (
	"fmt"
	"os"
	"time"

	"github.com/sanixdarker/gqlg/pkg/querygen"
	"gopkg.in/yaml.v2"
)

// DefaultConfigFile is read when present and no --config is given.
const DefaultConfigFile = ".gqlg.yml"

// Config holds application configuration.
type Config struct {
	Port       int           `yaml:"port"`
	SSHPort    int           `yaml:"ssh_port"`
	DBPath     string        `yaml:"db"`
	Debug      bool          `yaml:"debug"`
	DepthLimit int           `yaml:"depth_limit"`
	MaxDepth   int           `yaml:"max_depth"`
	MaxOutput  int           `yaml:"max_output"`
	Format     string        `yaml:"format"`
	RateLimit  float64       `yaml:"rate_limit"`
	RateBurst  int           `yaml:"rate_burst"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
	MaxBody    int64         `yaml:"max_body"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:       8080,
		SSHPort:    2222,
		DepthLimit: querygen.DefaultDepthLimit,
		MaxDepth:   25,
		MaxOutput:  16 << 20,
		RateLimit:  2,
		RateBurst:  10,
		CacheTTL:   10 * time.Minute,
		MaxBody:    5 << 20,
	}
}

// LoadConfigFile overlays the YAML file at path onto cfg. A missing file
// is only an error when required is set.
func LoadConfigFile(path string, cfg *Config, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.DepthLimit < 0 {
		cfg.DepthLimit = querygen.DefaultDepthLimit
	}
	return nil
}
