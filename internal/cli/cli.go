package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bintree/pkg/cache"
	"github.com/matzehuels/bintree/pkg/config"
	bterrors "github.com/matzehuels/bintree/pkg/errors"
	"github.com/matzehuels/bintree/pkg/pipeline"
	"github.com/matzehuels/bintree/pkg/present"
	"github.com/matzehuels/bintree/pkg/values"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bintree"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// sampleValues is the sequence rendered by the demo command.
var sampleValues = []string{"2", "4", "6", "8", "10", "15", "20", "25", "35", "50", "55", "70", "89", "99", "100"}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := c.Config.Cache
	if noCache {
		cfg.Backend = config.BackendNone
	}
	store, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var keyer cache.Keyer
	if cfg.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.KeyPrefix)
	}

	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = cfg.TTL.Duration
	return r, nil
}

// newCache opens the cache backend named in cfg.
func newCache(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendMemory:
		return cache.NewLRUCache(cfg.MemorySize)
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case config.BackendFile, "":
		dir, err := cacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, bterrors.New(bterrors.ErrCodeInvalidConfig,
			"unknown cache backend %q (want file, memory, redis or none)", cfg.Backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: cfg.Dir when set, otherwise
// the user cache directory (~/.cache/bintree/ on Linux).
func cacheDir(cfg config.Cache) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// textFlags holds the flags shared by every command that draws a tree.
type textFlags struct {
	cellWidth   int
	link        string
	placeholder string
	color       string
}

// setDefaults fills unset flags from the configuration.
func (f *textFlags) setDefaults(cfg config.Config) {
	if f.cellWidth == 0 {
		f.cellWidth = cfg.Render.CellWidth
	}
	if f.link == "" {
		f.link = cfg.Render.Link
	}
	if f.placeholder == "" {
		f.placeholder = cfg.Render.Placeholder
	}
	if f.color == "" {
		f.color = cfg.Present.Color
	}
}

// presenter creates a Presenter writing to w with the configured colours.
func (f *textFlags) presenter(w io.Writer, cfg config.Config) (*present.Presenter, error) {
	mode, err := present.ParseColorMode(f.color)
	if err != nil {
		return nil, err
	}
	return present.New(w,
		present.WithColorMode(mode),
		present.WithLabelStyle(cfg.Present.LabelFG, cfg.Present.LabelBG),
		present.WithNullStyle(cfg.Present.NullFG),
	), nil
}

// valueFlags holds the flags that select and order the input values.
type valueFlags struct {
	input  string
	order  string
	unique bool
}

// load collects values from --input and the positional arguments, in that
// order.
func (f *valueFlags) load(args []string) ([]string, error) {
	var vals []string
	if f.input != "" {
		v, err := values.ReadFile(f.input)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v...)
	}
	return append(vals, values.FromArgs(args)...), nil
}

// options assembles pipeline options from value and text flags.
func (c *CLI) options(vals []string, vf *valueFlags, tf *textFlags) pipeline.Options {
	order := vf.order
	if order == "" {
		order = c.Config.Render.Order
	}
	return pipeline.Options{
		Values:      vals,
		Order:       values.Order(order),
		Unique:      vf.unique,
		CellWidth:   tf.cellWidth,
		Link:        tf.link,
		Placeholder: tf.placeholder,
		Logger:      c.Logger,
	}
}

// treeSummary describes a result for status lines.
func treeSummary(res *pipeline.Result) string {
	return fmt.Sprintf("%d nodes, depth %d", res.Stats.NodeCount, res.Depth)
}
