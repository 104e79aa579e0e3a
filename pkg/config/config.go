// Package config resolves teal settings from defaults, a YAML file, TEAL_*
// environment variables and command-line overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kraitsura/teal/pkg/store"
)

// EnvPrefix is prepended to every environment override, e.g. TEAL_DB_PATH.
const EnvPrefix = "TEAL"

// Config holds the effective settings.
type Config struct {
	DBPath        string        `mapstructure:"db_path" yaml:"db_path"`
	Driver        string        `mapstructure:"driver" yaml:"driver"`
	LogFile       string        `mapstructure:"log_file" yaml:"log_file,omitempty"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce" yaml:"watch_debounce"`

	// ConfigFile is the file that was read, if any.
	ConfigFile string `mapstructure:"-" yaml:"-"`
}

// Overrides come from command-line flags; empty fields are ignored.
type Overrides struct {
	ConfigFile string
	DBPath     string
	Driver     string
}

// DefaultConfigFile returns ~/.config/teal/config.yaml, honouring XDG_CONFIG_HOME.
func DefaultConfigFile() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "teal", "config.yaml")
	}
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".teal", "config.yaml")
	}
	return filepath.Join(home, ".config", "teal", "config.yaml")
}

// DefaultDBPath returns ~/.local/share/teal/teal.db, honouring XDG_DATA_HOME.
func DefaultDBPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "teal", "teal.db")
	}
	home, err := homedir.Dir()
	if err != nil {
		return "teal.db"
	}
	return filepath.Join(home, ".local", "share", "teal", "teal.db")
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DBPath:        DefaultDBPath(),
		Driver:        store.DriverCGO,
		WatchDebounce: 250 * time.Millisecond,
	}
}

// Load merges every configuration source. A missing default config file is
// not an error; a missing explicitly requested one is.
func Load(o Overrides) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("driver", def.Driver)
	v.SetDefault("log_file", "")
	v.SetDefault("watch_debounce", def.WatchDebounce.String())
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	path := o.ConfigFile
	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultConfigFile()
		}
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand config path: %w", err)
	}

	cfg := &Config{}
	if _, statErr := os.Stat(path); statErr == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		cfg.ConfigFile = path
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, statErr)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.Driver != "" {
		cfg.Driver = o.Driver
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.DBPath == "" {
		return errors.New("db_path cannot be empty")
	}
	if c.DBPath != store.MemoryPath {
		p, err := homedir.Expand(c.DBPath)
		if err != nil {
			return fmt.Errorf("expand db_path: %w", err)
		}
		c.DBPath = p
	}
	if c.LogFile != "" {
		p, err := homedir.Expand(c.LogFile)
		if err != nil {
			return fmt.Errorf("expand log_file: %w", err)
		}
		c.LogFile = p
	}
	switch c.Driver {
	case store.DriverCGO, store.DriverPure:
	default:
		return fmt.Errorf("unknown driver %q (want %q or %q)", c.Driver, store.DriverCGO, store.DriverPure)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce cannot be negative: %s", c.WatchDebounce)
	}
	return nil
}

// yamlConfig renders durations as strings.
type yamlConfig struct {
	DBPath        string `yaml:"db_path"`
	Driver        string `yaml:"driver"`
	LogFile       string `yaml:"log_file,omitempty"`
	WatchDebounce string `yaml:"watch_debounce"`
}

// Write dumps the configuration as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlConfig{
		DBPath:        c.DBPath,
		Driver:        c.Driver,
		LogFile:       c.LogFile,
		WatchDebounce: c.WatchDebounce.String(),
	}); err != nil {
		return err
	}
	return enc.Close()
}

// Open opens the configured task database.
func (c *Config) Open() (*store.DB, error) {
	return store.Open(c.DBPath, c.Driver)
}
