package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	StorageBackend       string
	DataPath             string
	LogPath              string
	SchedulerBuffer      int
	WeekStart            time.Weekday
}

// File mirrors config.toml. Pointer fields distinguish "unset" from zero.
type File struct {
	DesktopNotifications *bool  `toml:"desktop-notifications"`
	Storage              string `toml:"storage"`
	DataPath             string `toml:"data-path"`
	LogPath              string `toml:"log-path"`
	SchedulerBuffer      int    `toml:"scheduler-buffer"`
	WeekStart            string `toml:"week-start"`
}

var ErrInvalidWeekStart = errors.New("config: invalid week start")

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		StorageBackend:       "sqlite",
		DataPath:             filepath.Join(dataHome(), "lifegrid", "lifegrid.db"),
		LogPath:              filepath.Join(stateHome(), "lifegrid", "lifegrid.log"),
		SchedulerBuffer:      64,
		WeekStart:            time.Sunday,
	}
}

// DefaultConfigPath is ~/.config/lifegrid/config.toml, honouring XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		base = filepath.Join(homeDir(), ".config")
	}
	return filepath.Join(base, "lifegrid", "config.toml")
}

// Load layers defaults, the TOML file at path and the environment.
func Load(path string) (RuntimeConfig, error) {
	cfg, err := LoadFile(DefaultRuntimeConfig(), path)
	if err != nil {
		return RuntimeConfig{}, err
	}
	return RuntimeConfigFromEnv(cfg), nil
}

// LoadFile overlays the TOML file at path onto base. A missing file leaves
// base unchanged.
func LoadFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if f.DesktopNotifications != nil {
		cfg.DesktopNotifications = *f.DesktopNotifications
	}
	if v := strings.TrimSpace(f.Storage); v != "" {
		cfg = cfg.WithStorage(v)
	}
	if v := strings.TrimSpace(f.DataPath); v != "" {
		cfg.DataPath = expandHome(v)
	}
	if v := strings.TrimSpace(f.LogPath); v != "" {
		cfg.LogPath = expandHome(v)
	}
	if f.SchedulerBuffer > 0 {
		cfg.SchedulerBuffer = f.SchedulerBuffer
	}
	if v := strings.TrimSpace(f.WeekStart); v != "" {
		day, err := ParseWeekday(v)
		if err != nil {
			return RuntimeConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		cfg.WeekStart = day
	}
	return cfg, nil
}

// WithStorage switches the backend, keeping the data file extension in step.
func (c RuntimeConfig) WithStorage(backend string) RuntimeConfig {
	c.StorageBackend = strings.ToLower(strings.TrimSpace(backend))
	c.DataPath = dataPathFor(c.StorageBackend, c.DataPath)
	return c
}

// WithDataPath sets the data path, expanding a leading ~.
func (c RuntimeConfig) WithDataPath(p string) RuntimeConfig {
	c.DataPath = expandHome(strings.TrimSpace(p))
	return c
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("LIFEGRID_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := strings.TrimSpace(os.Getenv("LIFEGRID_STORAGE")); v != "" {
		cfg = cfg.WithStorage(v)
	}
	if v := strings.TrimSpace(os.Getenv("LIFEGRID_DATA_PATH")); v != "" {
		cfg.DataPath = expandHome(v)
	}
	if v := strings.TrimSpace(os.Getenv("LIFEGRID_LOG_PATH")); v != "" {
		cfg.LogPath = expandHome(v)
	}
	if v, ok := getEnvInt("LIFEGRID_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("LIFEGRID_WEEK_START")); v != "" {
		if day, err := ParseWeekday(v); err == nil {
			cfg.WeekStart = day
		}
	}
	return cfg
}

func ParseWeekday(raw string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sun", "sunday":
		return time.Sunday, nil
	case "mon", "monday":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("%w: %q (want sunday or monday)", ErrInvalidWeekStart, raw)
	}
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}

func dataHome() string {
	if v := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); v != "" {
		return v
	}
	return filepath.Join(homeDir(), ".local", "share")
}

func stateHome() string {
	if v := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); v != "" {
		return v
	}
	return filepath.Join(homeDir(), ".local", "state")
}

func expandHome(p string) string {
	if p == "~" {
		return homeDir()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir(), p[2:])
	}
	return p
}

// dataPathFor swaps the default extension when the backend changes, so
// switching to json does not write JSON into a .db file.
func dataPathFor(backend, p string) string {
	ext := filepath.Ext(p)
	switch {
	case backend == "json" && ext == ".db":
		return strings.TrimSuffix(p, ext) + ".json"
	case backend == "sqlite" && ext == ".json":
		return strings.TrimSuffix(p, ext) + ".db"
	}
	return p
}
