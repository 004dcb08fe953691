package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"vaultwidget/internal/apperr"
)

const (
	appName = "vaultwidget"
	// EnvPrefix prefixes every environment override, e.g. VAULTWIDGET_MAX_NOTES.
	EnvPrefix = "VAULTWIDGET"
)

// Config holds the unified application configuration
type Config struct {
	Extension     string            `mapstructure:"extension" json:"extension"`
	MaxNotes      int               `mapstructure:"max_notes" json:"max_notes"`
	PreviewLength int               `mapstructure:"preview_length" json:"preview_length"`
	Workers       int               `mapstructure:"workers" json:"workers"`
	AllowedRoots  []string          `mapstructure:"allowed_roots" json:"allowed_roots"`
	TreeVolumes   map[string]string `mapstructure:"tree_volumes" json:"tree_volumes"`
	Scheme        string            `mapstructure:"scheme" json:"scheme"`
	AppPackage    string            `mapstructure:"app_package" json:"app_package"`
	ShortcutSlots int               `mapstructure:"shortcut_slots" json:"shortcut_slots"`
	DBPath        string            `mapstructure:"db_path" json:"db_path"`
	LogDir        string            `mapstructure:"log_dir" json:"log_dir"`
	Debug         bool              `mapstructure:"debug" json:"debug"`

	// File is the config file that was read, empty when none was.
	File string `mapstructure:"-" json:"-"`
}

// CLIFlags holds parsed CLI flags. Zero values leave lower layers in effect.
type CLIFlags struct {
	ConfigFile string
	Debug      bool
	MaxNotes   int
	DBPath     string
}

var globalConfig *Config

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	dbPath := "prefs.db"
	if dir, err := ConfigDir(); err == nil {
		dbPath = filepath.Join(dir, "prefs.db")
	}
	return Config{
		Extension:     ".md",
		MaxNotes:      100,
		PreviewLength: 150,
		Workers:       4,
		AllowedRoots:  []string{"/storage/emulated/0", "/sdcard"},
		TreeVolumes:   map[string]string{},
		Scheme:        "obsidian",
		AppPackage:    "md.obsidian",
		ShortcutSlots: 2,
		DBPath:        dbPath,
	}
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	v := viper.New()

	def := Defaults()
	v.SetDefault("extension", def.Extension)
	v.SetDefault("max_notes", def.MaxNotes)
	v.SetDefault("preview_length", def.PreviewLength)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("allowed_roots", def.AllowedRoots)
	v.SetDefault("tree_volumes", def.TreeVolumes)
	v.SetDefault("scheme", def.Scheme)
	v.SetDefault("app_package", def.AppPackage)
	v.SetDefault("shortcut_slots", def.ShortcutSlots)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("log_dir", def.LogDir)
	v.SetDefault("debug", def.Debug)

	// Priority 3: config file
	configPath := flags.ConfigFile
	if configPath == "" {
		if p, err := GetConfigPath(); err == nil {
			configPath = p
		}
	}
	resolved := ""
	if configPath != "" {
		configPath = expandPath(configPath)
		v.SetConfigFile(configPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			switch {
			case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
				if flags.ConfigFile != "" {
					return nil, apperr.New(apperr.ErrNotFound, "load config", configPath, err)
				}
			default:
				return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
			}
		} else {
			resolved = configPath
		}
	}

	// Priority 2: environment variables override config file
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// Colon-separated like PATH, which viper's slice decoding does not handle.
	if env := os.Getenv(EnvPrefix + "_ALLOWED_ROOTS"); env != "" {
		cfg.AllowedRoots = parseColonSeparated(env)
	} else {
		cfg.AllowedRoots = v.GetStringSlice("allowed_roots")
	}
	cfg.TreeVolumes = v.GetStringMapString("tree_volumes")

	// Priority 1: CLI flags override everything
	if flags.Debug {
		cfg.Debug = true
	}
	if flags.MaxNotes != 0 {
		cfg.MaxNotes = flags.MaxNotes
	}
	if flags.DBPath != "" {
		cfg.DBPath = flags.DBPath
	}

	cfg.File = resolved
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// normalize expands paths and rejects values no component can work with.
func (c *Config) normalize() error {
	c.Extension = strings.TrimSpace(c.Extension)
	if c.Extension == "" {
		return apperr.Invalid("load config", "extension is empty")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.MaxNotes < 1 {
		return apperr.Invalid("load config", "max_notes must be at least 1, got %d", c.MaxNotes)
	}
	if c.PreviewLength < 1 {
		return apperr.Invalid("load config", "preview_length must be at least 1, got %d", c.PreviewLength)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.ShortcutSlots < 1 {
		return apperr.Invalid("load config", "shortcut_slots must be at least 1, got %d", c.ShortcutSlots)
	}

	c.AllowedRoots = expandPaths(c.AllowedRoots)
	c.DBPath = expandPath(c.DBPath)
	c.LogDir = expandPath(c.LogDir)
	for vol, dir := range c.TreeVolumes {
		c.TreeVolumes[vol] = expandPath(dir)
	}
	return nil
}

// Get returns the loaded config
func Get() *Config {
	return globalConfig
}

// ConfigDir returns the directory holding the config file and preferences
// database, honoring XDG_CONFIG_HOME.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile(path string) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	path = expandPath(path)

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	def := Defaults()
	v := viper.New()
	v.Set("extension", def.Extension)
	v.Set("max_notes", def.MaxNotes)
	v.Set("preview_length", def.PreviewLength)
	v.Set("workers", def.Workers)
	v.Set("allowed_roots", def.AllowedRoots)
	v.Set("tree_volumes", def.TreeVolumes)
	v.Set("scheme", def.Scheme)
	v.Set("app_package", def.AppPackage)
	v.Set("shortcut_slots", def.ShortcutSlots)
	v.Set("db_path", def.DBPath)
	v.Set("log_dir", def.LogDir)
	v.Set("debug", def.Debug)
	v.SetConfigType("json")

	return v.WriteConfigAs(path)
}

func parseColonSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

func expandPaths(paths []string) []string {
	result := make([]string, len(paths))
	for i, p := range paths {
		result[i] = expandPath(p)
	}
	return result
}
