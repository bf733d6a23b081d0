package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "~/.config/securedesk/securedesk.yaml"

// Supported datastore drivers for the connectivity probe.
const (
	DriverFirebird = "firebird"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Database describes the datastore the login probe checks before
// credentials are validated. The probe always uses this service account,
// independent of the operator's credentials.
type Database struct {
	Driver       string        `yaml:"driver"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Path         string        `yaml:"path"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Charset      string        `yaml:"charset"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	// SkipProbe disables the connectivity check entirely.
	SkipProbe bool `yaml:"skip_probe"`
}

type Store struct {
	Path string `yaml:"path"`
}

type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type Server struct {
	Port       int    `yaml:"port"`
	HostKeyDir string `yaml:"host_key_dir"`
}

// Layout holds the employee split defaults and console heights, in cells.
type Layout struct {
	PreferredOffset  int `yaml:"preferred_offset"`
	LeftMin          int `yaml:"left_min"`
	RightMin         int `yaml:"right_min"`
	ConsoleHeight    int `yaml:"console_height"`
	ConsoleMinHeight int `yaml:"console_min_height"`
}

type Config struct {
	Database Database `yaml:"database"`
	Store    Store    `yaml:"store"`
	Log      Log      `yaml:"log"`
	Server   Server   `yaml:"server"`
	Layout   Layout   `yaml:"layout"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Database: Database{
			Driver:       DriverFirebird,
			Host:         "localhost",
			Port:         3050,
			Path:         "/var/lib/firebird/data/secure_base.fdb",
			User:         "SYSDBA",
			Password:     "masterkey",
			Charset:      "UTF8",
			ProbeTimeout: 5 * time.Second,
		},
		Store: Store{
			Path: filepath.Join(home, ".local", "share", "securedesk", "agency.db"),
		},
		Log: Log{
			File:  filepath.Join(home, ".local", "state", "securedesk", "securedesk.log"),
			Level: "info",
		},
		Server: Server{
			Port:       2323,
			HostKeyDir: filepath.Join(home, ".ssh"),
		},
		Layout: Layout{
			PreferredOffset:  44,
			LeftMin:          30,
			RightMin:         24,
			ConsoleHeight:    8,
			ConsoleMinHeight: 1,
		},
	}
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

func Load(path string) (Config, error) {
	cfg := Default()

	resolved := expandPath(path)
	data, err := os.ReadFile(resolved)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config %s: %w", resolved, err)
	}

	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", resolved, err)
		}
	}

	applyEnvOverrides(&cfg)

	cfg.Store.Path = expandPath(cfg.Store.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Server.HostKeyDir = expandPath(cfg.Server.HostKeyDir)
	if cfg.Database.Driver == DriverSQLite {
		cfg.Database.Path = expandPath(cfg.Database.Path)
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// applyEnvOverrides lets deployments keep the service account password out
// of the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SECUREDESK_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("SECUREDESK_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("SECUREDESK_STORE"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("SECUREDESK_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: SECUREDESK_PORT=%q is not a valid integer, ignoring\n", v)
		}
	}
}

func validate(cfg Config) error {
	switch cfg.Database.Driver {
	case DriverFirebird, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("database.driver %q not supported (firebird, postgres, sqlite)", cfg.Database.Driver)
	}
	if cfg.Database.Driver != DriverSQLite && (cfg.Database.Port < 1 || cfg.Database.Port > 65535) {
		return fmt.Errorf("database.port %d out of range (1-65535)", cfg.Database.Port)
	}
	if cfg.Database.ProbeTimeout <= 0 {
		return fmt.Errorf("database.probe_timeout must be > 0")
	}
	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path must be set")
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range (1-65535)", cfg.Server.Port)
	}

	if cfg.Layout.LeftMin < 0 || cfg.Layout.RightMin < 0 {
		return fmt.Errorf("layout minimums must be >= 0")
	}
	if cfg.Layout.PreferredOffset < 0 {
		return fmt.Errorf("layout.preferred_offset must be >= 0")
	}
	if cfg.Layout.ConsoleMinHeight < 1 {
		return fmt.Errorf("layout.console_min_height must be >= 1")
	}
	if cfg.Layout.ConsoleHeight <= cfg.Layout.ConsoleMinHeight {
		return fmt.Errorf("layout.console_height must be greater than console_min_height")
	}

	return nil
}
