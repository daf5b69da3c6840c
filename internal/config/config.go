// Package config handles loading workshop.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	internalstrings "github.com/amonks/workshop/internal/strings"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "workshop.toml"

// DefaultPort is used when no port is configured.
const DefaultPort = 8088

// Config represents the workshop.toml configuration file.
type Config struct {
	Server      Server      `toml:"server"`
	Todos       Todos       `toml:"todos"`
	Users       Users       `toml:"users"`
	Preferences Preferences `toml:"preferences"`
}

// Server contains HTTP server settings.
type Server struct {
	// Port is the port the server listens on and clients connect to.
	Port int `toml:"port"`
}

// Todos contains todo store settings.
type Todos struct {
	// Filter is the initial filter (all, active, completed).
	Filter string `toml:"filter"`

	// Seed loads the sample todos at startup.
	Seed bool `toml:"seed"`
}

// Users contains user store settings.
type Users struct {
	// Seed loads the sample session user and directory at startup.
	Seed bool `toml:"seed"`
}

// Preferences are the initial session preferences.
type Preferences struct {
	Theme         string `toml:"theme"`
	Notifications bool   `toml:"notifications"`
	AutoSave      bool   `toml:"auto-save"`
}

// Default returns the configuration used when no files set a value.
func Default() *Config {
	return &Config{
		Server: Server{Port: DefaultPort},
		Todos:  Todos{Filter: "all", Seed: true},
		Users:  Users{Seed: true},
		Preferences: Preferences{
			Theme:         "light",
			Notifications: true,
			AutoSave:      true,
		},
	}
}

// Load loads configuration from dir and the global config file.
// Values set in the project file win over the global file, which wins over
// the defaults.
func Load(dir string) (*Config, error) {
	paths, err := Paths(dir)
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(paths[0])
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(paths[1])
	if err != nil {
		return nil, err
	}

	merged := Default()
	mergeInto(merged, globalCfg, globalMeta)
	mergeInto(merged, projectCfg, projectMeta)
	return merged, nil
}

// Paths returns the global and project config paths, in that order.
func Paths(dir string) ([]string, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return []string{globalPath, filepath.Join(dir, ProjectFile)}, nil
}

// GlobalPath returns the path of the global config file.
func GlobalPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "workshop", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return nil, toml.MetaData{}, fmt.Errorf("config file %s: port out of range: %d", path, cfg.Server.Port)
	}

	return &cfg, meta, nil
}

func mergeInto(dst, src *Config, meta toml.MetaData) {
	if meta.IsDefined("server", "port") && src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	dst.Todos.Filter = mergeString(meta.IsDefined("todos", "filter"), src.Todos.Filter, dst.Todos.Filter)
	dst.Todos.Seed = mergeBool(meta.IsDefined("todos", "seed"), src.Todos.Seed, dst.Todos.Seed)
	dst.Users.Seed = mergeBool(meta.IsDefined("users", "seed"), src.Users.Seed, dst.Users.Seed)
	dst.Preferences.Theme = mergeString(meta.IsDefined("preferences", "theme"), src.Preferences.Theme, dst.Preferences.Theme)
	dst.Preferences.Notifications = mergeBool(meta.IsDefined("preferences", "notifications"), src.Preferences.Notifications, dst.Preferences.Notifications)
	dst.Preferences.AutoSave = mergeBool(meta.IsDefined("preferences", "auto-save"), src.Preferences.AutoSave, dst.Preferences.AutoSave)
}

func mergeString(defined bool, value, fallback string) string {
	if !defined {
		return fallback
	}
	return internalstrings.NormalizeLowerTrimSpace(value)
}

func mergeBool(defined bool, value, fallback bool) bool {
	if !defined {
		return fallback
	}
	return value
}

// Addr returns the loopback address for the configured port.
func (c *Config) Addr() string {
	port := c.Server.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("127.0.0.1:%d", port)
}
