package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath = "~/.capsule"
	envPrefix   = "CAPSULE"
)

// Config is the CLI configuration, read from .capsule.yaml and CAPSULE_* variables.
type Config struct {
	Path     string
	Location *time.Location
	Debug    bool
	LogFile  string
}

// LoadConfig looks for .capsule.yaml in $CAPSULE_CONFIG_PATH, the working
// directory and the home directory, in that order. A missing file is fine.
func LoadConfig(v *viper.Viper) (*Config, error) {
	v.SetDefault("path", defaultPath)
	v.SetDefault("tz", "Local")
	v.SetDefault("debug", false)
	v.SetDefault("log_file", "")

	v.SetConfigName(".capsule")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(envPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", v.GetString("path"), err)
	}

	loc, err := time.LoadLocation(v.GetString("tz"))
	if err != nil {
		return nil, fmt.Errorf("invalid tz %q: %w", v.GetString("tz"), err)
	}

	return &Config{
		Path:     path,
		Location: loc,
		Debug:    v.GetBool("debug"),
		LogFile:  v.GetString("log_file"),
	}, nil
}
