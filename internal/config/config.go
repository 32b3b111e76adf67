package config

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dshills/swipeshell/internal/config/loader"
)

// Config provides unified access to the swipeshell configuration layers.
type Config struct {
	mu sync.RWMutex

	fs        loader.FileSystem
	path      string
	envPrefix string
	environ   []string

	defaults map[string]any
	file     map[string]any
	env      map[string]any
	merged   map[string]any
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets the config file. The format follows the extension.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFS sets the file system used to read the config file.
func WithFS(fs loader.FileSystem) Option {
	return func(c *Config) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnviron replaces the process environment with env (KEY=VALUE pairs).
func WithEnviron(env []string) Option {
	return func(c *Config) {
		c.environ = env
	}
}

// New creates a new Config instance holding only defaults until Load.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		defaults:  defaults(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.merged = c.merge()
	return c
}

// Load loads configuration from all sources. A missing config file is not
// an error.
func (c *Config) Load(_ context.Context) error {
	file, err := c.readFile()
	if err != nil {
		return err
	}

	var envLoader *loader.EnvLoader
	if c.environ != nil {
		envLoader = loader.NewEnvLoaderFrom(c.envPrefix, c.environ)
	} else {
		envLoader = loader.NewEnvLoader(c.envPrefix)
	}
	env, err := envLoader.Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.file = file
	c.env = env
	c.merged = c.merge()
	return nil
}

// ReloadFile re-reads the config file layer. On error the previous layer
// is kept.
func (c *Config) ReloadFile() error {
	if c.path == "" {
		return ErrNoFile
	}
	file, err := c.readFile()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.file = file
	c.merged = c.merge()
	return nil
}

func (c *Config) readFile() (map[string]any, error) {
	if c.path == "" {
		return nil, nil
	}
	l, err := loader.ForPath(c.fs, c.path)
	if err != nil {
		return nil, err
	}
	m, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}
	return m, nil
}

// merge must be called with mu held (or before c is shared).
func (c *Config) merge() map[string]any {
	m := loader.Clone(c.defaults)
	m = loader.DeepMerge(m, c.file)
	return loader.DeepMerge(m, c.env)
}

// Path returns the config file path, or "".
func (c *Config) Path() string {
	return c.path
}

// Get returns the merged value at path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.GetByPath(c.merged, path)
}

// Set overrides a value in the environment layer, the highest priority.
func (c *Config) Set(path string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.env == nil {
		c.env = make(map[string]any)
	}
	loader.SetByPath(c.env, path, value)
	c.merged = c.merge()
}

// GetString returns a string setting.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", mismatch(path, "string", v)
	}
}

// GetFloat returns a numeric setting as float64.
func (c *Config) GetFloat(path string) (float64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, mismatch(path, "number", v)
		}
		return f, nil
	default:
		return 0, mismatch(path, "number", v)
	}
}

// GetInt returns an integer setting.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case uint64:
		return int(t), nil
	case float64:
		if t != float64(int(t)) {
			return 0, mismatch(path, "integer", v)
		}
		return int(t), nil
	default:
		return 0, mismatch(path, "integer", v)
	}
}

// GetDuration returns a duration setting. Strings use time.ParseDuration
// syntax; bare numbers are milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	switch t := v.(type) {
	case time.Duration:
		return t, nil
	case string:
		d, err := time.ParseDuration(t)
		if err != nil {
			return 0, mismatch(path, "duration", v)
		}
		return d, nil
	case int:
		return time.Duration(t) * time.Millisecond, nil
	case int64:
		return time.Duration(t) * time.Millisecond, nil
	case uint64:
		return time.Duration(t) * time.Millisecond, nil
	case float64:
		return time.Duration(t * float64(time.Millisecond)), nil
	default:
		return 0, mismatch(path, "duration", v)
	}
}

func mismatch(path, want string, got any) error {
	return fmt.Errorf("%w: %s: want %s, got %T", ErrTypeMismatch, path, want, got)
}
