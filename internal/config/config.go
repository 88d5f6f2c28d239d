package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
	yamlv3 "gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/calplan/config.yaml"

// EnvPrefix marks environment variables that override file settings.
// CALPLAN_STORAGE_SQLITE_FILE sets storage.sqlite_file.
const EnvPrefix = "CALPLAN_"

// Config holds all calplan configuration.
type Config struct {
	Storage  StorageConfig  `koanf:"storage" yaml:"storage"`
	Calendar CalendarConfig `koanf:"calendar" yaml:"calendar"`
	Export   ExportConfig   `koanf:"export" yaml:"export"`
	Logging  LoggingConfig  `koanf:"logging" yaml:"logging"`
}

type StorageConfig struct {
	Path        string `koanf:"path" yaml:"path"`
	SQLiteFile  string `koanf:"sqlite_file" yaml:"sqlite_file"`
	JournalMode string `koanf:"journal_mode" yaml:"journal_mode"`
}

type CalendarConfig struct {
	WeekStart       string `koanf:"week_start" yaml:"week_start"`
	DefaultCategory string `koanf:"default_category" yaml:"default_category"`
}

type ExportConfig struct {
	Dir string `koanf:"dir" yaml:"dir"`
}

type LoggingConfig struct {
	Level string `koanf:"level" yaml:"level"`
	File  string `koanf:"file" yaml:"file"`
}

// Load reads a YAML config file at path, layered over defaults and under
// CALPLAN_ environment variables. A missing or malformed file is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(*DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	log.Debugf("Loaded configuration from file: %s", path)

	if err := loadEnv(k); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnv(k *koanf.Koanf) error {
	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			// Section names carry no underscores, so the first one separates
			// the section from the key.
			section, key, _ := strings.Cut(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_")
			if key == "" {
				return section, v
			}
			return section + "." + key, v
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("loading config from environment: %w", err)
	}
	return nil
}

// Validate rejects settings the rest of the program cannot interpret.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Calendar.WeekStart) {
	case "sunday", "monday":
	default:
		return fmt.Errorf("calendar.week_start must be sunday or monday, got %q", c.Calendar.WeekStart)
	}
	switch strings.ToLower(c.Calendar.DefaultCategory) {
	case "work", "personal", "others":
	default:
		return fmt.Errorf("calendar.default_category must be work, personal or others, got %q", c.Calendar.DefaultCategory)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// DatabasePath joins storage.path and storage.sqlite_file, expanding ~.
func (c *Config) DatabasePath() (string, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// ExportDir is export.dir with ~ expanded.
func (c *Config) ExportDir() (string, error) {
	return expandPath(c.Export.Dir)
}

// LogFile is logging.file with ~ expanded. Empty means stderr.
func (c *Config) LogFile() (string, error) {
	return expandPath(c.Logging.File)
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults first.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yamlv3.Marshal(DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
		log.Infof("Wrote default configuration to %s", path)
	}

	return Load(path)
}
