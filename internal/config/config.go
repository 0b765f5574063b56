package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"rollcall/internal/constants"
	"rollcall/internal/utils"
)

var (
	userConfigDirFunc = os.UserConfigDir
	dirOverride       string
)

// SetDirOverride points the config, database and lockfile paths at dir for
// the rest of the process. An empty dir restores the default resolution.
func SetDirOverride(dir string) {
	dirOverride = dir
}

// Config holds the client-side settings shared by the admin commands and the
// board TUI. The server connection string is not stored here; it lives in the
// OS keyring or the environment.
type Config struct {
	ServerURL      string
	PollInterval   time.Duration
	Timezone       string
	WorkdayMinutes int
	LogDir         string
}

type yamlConfig struct {
	ServerURL           string `yaml:"server_url"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	Timezone            string `yaml:"timezone"`
	WorkdayHours        int    `yaml:"workday_hours"`
	LogDir              string `yaml:"log_dir"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		PollInterval:   constants.DefaultPollIntervalSec * time.Second,
		Timezone:       "Local",
		WorkdayMinutes: constants.DefaultWorkdayMinutes,
	}
}

// Dir returns the rollcall configuration directory.
func Dir() (string, error) {
	if dirOverride != "" {
		return dirOverride, nil
	}
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.AppName), nil
}

// Path returns the location of the client settings file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// Load reads the client settings from YAML.
// If the config file does not exist, default settings are returned.
func Load() (Config, error) {
	cfg := Default()
	configPath, err := Path()
	if err != nil {
		return cfg, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlConfig(&cfg, fileData)
	return cfg, nil
}

// Save writes the client settings to YAML.
func Save(cfg Config) error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlConfig{
		ServerURL:           cfg.ServerURL,
		PollIntervalSeconds: int(cfg.PollInterval / time.Second),
		Timezone:            cfg.Timezone,
		WorkdayHours:        cfg.WorkdayMinutes / 60,
		LogDir:              cfg.LogDir,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

func applyYamlConfig(cfg *Config, fileData yamlConfig) {
	if fileData.ServerURL != "" {
		cfg.ServerURL = fileData.ServerURL
	}

	if fileData.PollIntervalSeconds > 0 {
		seconds := fileData.PollIntervalSeconds
		if seconds < constants.MinPollIntervalSec {
			seconds = constants.MinPollIntervalSec
		}
		cfg.PollInterval = time.Duration(seconds) * time.Second
	}

	if utils.ValidateTimezone(fileData.Timezone) && fileData.Timezone != "" {
		cfg.Timezone = fileData.Timezone
	}

	if fileData.WorkdayHours > 0 {
		cfg.WorkdayMinutes = fileData.WorkdayHours * 60
	}

	if fileData.LogDir != "" {
		cfg.LogDir = fileData.LogDir
	}
}
