package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var OutputFormats = []string{"cli", "tui"}

// Config represents the jvmch configuration
type Config struct {
	Annotate AnnotateConfig `mapstructure:"annotate"`
	Inspect  InspectConfig  `mapstructure:"inspect"`
}

// AnnotateConfig holds the defaults of the annotate command
type AnnotateConfig struct {
	ForceOverwrite bool `mapstructure:"force_overwrite"`
	UseFirst       bool `mapstructure:"use_first"`
	Verbose        bool `mapstructure:"verbose"`
}

// InspectConfig holds the defaults of the inspect command
type InspectConfig struct {
	Output string `mapstructure:"output"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"force-overwrite": "annotate.force_overwrite",
	"use-first":       "annotate.use_first",
	"verbose":         "annotate.verbose",
	"output":          "inspect.output",
}

// Load reads jvmch.yaml from the working directory or ~/.config/jvmch, then
// JVMCH_* environment variables, then any of the given flags that were set.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("annotate.force_overwrite", false)
	v.SetDefault("annotate.use_first", false)
	v.SetDefault("annotate.verbose", false)
	v.SetDefault("inspect.output", "cli")

	v.SetConfigName("jvmch")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "jvmch"))
	}

	// JVMCH_ANNOTATE_USE_FIRST -> annotate.use_first
	v.SetEnvPrefix("jvmch")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if !slices.Contains(OutputFormats, config.Inspect.Output) {
		return fmt.Errorf("invalid output format: %s. Valid options: %v", config.Inspect.Output, OutputFormats)
	}
	return nil
}
