// Package config loads the bintree configuration file.
//
// The file is TOML, read from $XDG_CONFIG_HOME/bintree/config.toml (or the
// platform equivalent) unless a path is given explicitly. Every key is
// optional; a missing file yields [Default]. Command-line flags override
// the values loaded here.
//
//	[render]
//	cell_width = 2
//	link = "+"
//	placeholder = "NY"
//	order = "auto"
//
//	[present]
//	color = "auto"
//	label_fg = "255"
//	label_bg = "167"
//	null_fg = "240"
//
//	[cache]
//	backend = "file"   # file | memory | redis | none
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	max_values = 4095
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	bterrors "github.com/matzehuels/bintree/pkg/errors"
	"github.com/matzehuels/bintree/pkg/pipeline"
	"github.com/matzehuels/bintree/pkg/present"
	"github.com/matzehuels/bintree/pkg/values"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config is the full configuration.
type Config struct {
	Render  Render  `toml:"render"`
	Present Present `toml:"present"`
	Cache   Cache   `toml:"cache"`
	Server  Server  `toml:"server"`
}

// Render holds defaults for the text renderer and value ordering.
type Render struct {
	CellWidth   int    `toml:"cell_width"`
	Link        string `toml:"link"`
	Placeholder string `toml:"placeholder"`
	Order       string `toml:"order"`
}

// Present holds terminal colour settings.
type Present struct {
	Color   string `toml:"color"`
	LabelFG string `toml:"label_fg"`
	LabelBG string `toml:"label_bg"`
	NullFG  string `toml:"null_fg"`
}

// Cache selects and configures the artifact cache.
type Cache struct {
	Backend    string   `toml:"backend"`
	Dir        string   `toml:"dir"`
	TTL        Duration `toml:"ttl"`
	MemorySize int      `toml:"memory_size"`
	RedisAddr  string   `toml:"redis_addr"`
	RedisDB    int      `toml:"redis_db"`
	// RedisPassword is read from BINTREE_REDIS_PASSWORD when empty.
	RedisPassword string `toml:"redis_password"`
	KeyPrefix     string `toml:"key_prefix"`
}

// Server configures the HTTP API.
type Server struct {
	Addr      string   `toml:"addr"`
	MaxValues int      `toml:"max_values"`
	Timeout   Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string such as "24h" or "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: Render{
			CellWidth:   pipeline.DefaultCellWidth,
			Link:        pipeline.DefaultLink,
			Placeholder: pipeline.DefaultPlaceholder,
			Order:       string(pipeline.DefaultOrder),
		},
		Present: Present{
			Color:   string(present.ColorAuto),
			LabelFG: present.DefaultLabelFG,
			LabelBG: present.DefaultLabelBG,
			NullFG:  present.DefaultNullFG,
		},
		Cache: Cache{
			Backend:    BackendFile,
			TTL:        Duration{24 * time.Hour},
			MemorySize: 256,
			RedisAddr:  "localhost:6379",
		},
		Server: Server{
			Addr:      ":8080",
			MaxValues: pipeline.DefaultMaxValues,
			Timeout:   Duration{30 * time.Second},
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bintree", FileName), nil
}

// Load reads the config file at path on top of [Default]. An empty path
// selects [DefaultPath]; a missing file at the default path is not an error,
// but an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return Default(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, bterrors.New(bterrors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, bterrors.Wrap(bterrors.ErrCodeInvalidConfig, err, "load %s", path)
	}

	if cfg.Cache.RedisPassword == "" {
		cfg.Cache.RedisPassword = os.Getenv("BINTREE_REDIS_PASSWORD")
	}
	return cfg, cfg.Validate()
}

// Validate checks that enumerated settings hold known values.
func (c Config) Validate() error {
	if _, err := values.ParseOrder(c.Render.Order); err != nil {
		return bterrors.Wrap(bterrors.ErrCodeInvalidConfig, err, "render.order")
	}
	if c.Render.CellWidth < 0 || c.Render.CellWidth > pipeline.MaxCellWidth {
		return bterrors.New(bterrors.ErrCodeInvalidConfig, "render.cell_width must be between 0 and %d", pipeline.MaxCellWidth)
	}
	if _, err := present.ParseColorMode(c.Present.Color); err != nil {
		return bterrors.Wrap(bterrors.ErrCodeInvalidConfig, err, "present.color")
	}
	switch strings.ToLower(c.Cache.Backend) {
	case "", BackendFile, BackendMemory, BackendRedis, BackendNone:
	default:
		return bterrors.New(bterrors.ErrCodeInvalidConfig,
			"cache.backend: unknown backend %q (want file, memory, redis or none)", c.Cache.Backend)
	}
	if c.Server.MaxValues < 0 {
		return bterrors.New(bterrors.ErrCodeInvalidConfig, "server.max_values must not be negative")
	}
	return nil
}
