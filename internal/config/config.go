package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// DataDir holds the slot file and the log.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
	// DefaultComment seeds ingested memories when no base comment is given.
	DefaultComment string `yaml:"default_comment" mapstructure:"default_comment"`
	// StatusDelaySeconds is how long transient status messages stay up.
	StatusDelaySeconds int `yaml:"status_delay_seconds" mapstructure:"status_delay_seconds"`
	// ImageHeightRatio is the share of the detail pane reserved for the image.
	ImageHeightRatio float64 `yaml:"image_height_ratio" mapstructure:"image_height_ratio"`
	// WatchSlot reloads the journal when another process rewrites the slot.
	WatchSlot bool `yaml:"watch_slot" mapstructure:"watch_slot"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:            defaultDataDir(),
		DefaultComment:     "Memory without comment",
		StatusDelaySeconds: 5,
		ImageHeightRatio:   0.7,
		WatchSlot:          true,
	}
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "memoria")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "memoria")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths
	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "memoria"))
	}
	home, _ := os.UserHomeDir()
	viper.AddConfigPath(filepath.Join(home, ".config", "memoria"))

	// Environment variables
	viper.SetEnvPrefix("MEMORIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
		// Config file not found; ignore and use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize pulls out-of-range values back to their defaults rather than
// failing startup over a bad config file.
func (c *Config) Normalize() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.DefaultComment == "" {
		c.DefaultComment = "Memory without comment"
	}
	if c.StatusDelaySeconds < 1 {
		c.StatusDelaySeconds = 5
	}
	if c.ImageHeightRatio <= 0 || c.ImageHeightRatio > 1 {
		c.ImageHeightRatio = 0.7
	}
}

// SlotPath is the single durable location the collection serializes to.
func (c *Config) SlotPath() string {
	return filepath.Join(c.DataDir, "memories.json")
}

// LogPath keeps the log out of the terminal the TUI owns.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "memoria.log")
}

// StatusDelay is StatusDelaySeconds as a duration.
func (c *Config) StatusDelay() time.Duration {
	return time.Duration(c.StatusDelaySeconds) * time.Second
}
