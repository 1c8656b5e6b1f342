package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultPath     = "~/.ledger.db"
	DefaultPageSize = 25
	DefaultDebounce = 300 * time.Millisecond
)

// Config is what the rest of ledger needs from the config file and
// environment.
type Config interface {
	BasePath() string
	PageSize() int
	Debounce() time.Duration
}

// LoadConfig reads the .ledger config file, looking in LEDGER_CONFIG_PATH
// and then the working directory. Every key can be overridden with a LEDGER_
// environment variable.
func LoadConfig() (Config, error) {
	return loadConfig(viper.GetViper())
}

func loadConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("path", DefaultPath)
	v.SetDefault("page_size", DefaultPageSize)
	v.SetDefault("debounce", DefaultDebounce)
	v.SetConfigName(".ledger") // .yaml is implicit
	v.SetEnvPrefix("LEDGER")
	v.AutomaticEnv()

	if override := os.Getenv("LEDGER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	cfg := &fileConfig{
		Path:         path,
		Size:         v.GetInt("page_size"),
		DebounceTime: v.GetDuration("debounce"),
	}
	if cfg.Size < 1 {
		cfg.Size = DefaultPageSize
	}
	if cfg.DebounceTime < 0 {
		cfg.DebounceTime = 0
	}
	return cfg, nil
}

type fileConfig struct {
	Path         string        `json:"path"`
	Size         int           `json:"page_size"`
	DebounceTime time.Duration `json:"debounce"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) PageSize() int {
	return f.Size
}

func (f *fileConfig) Debounce() time.Duration {
	return f.DebounceTime
}

// StaticConfig is a Config with fixed values.
type StaticConfig struct {
	Path         string
	Size         int
	DebounceTime time.Duration
}

func (s StaticConfig) BasePath() string        { return s.Path }
func (s StaticConfig) PageSize() int           { return s.Size }
func (s StaticConfig) Debounce() time.Duration { return s.DebounceTime }
