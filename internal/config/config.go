package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/backchannel/internal/config/loader"
)

// DefaultEnvPrefix prefixes every environment variable read by backchannel.
const DefaultEnvPrefix = "BACKCHANNEL_"

// ConfigFile is the name of the application config file.
const ConfigFile = "config.toml"

// App is the decoded application configuration.
type App struct {
	// DataDir holds shipped data files such as user_agents.lst.
	DataDir string
	// SessionFile is where the settings snapshot is persisted.
	SessionFile string
	// Verbose enables informational output.
	Verbose bool
	// Debug enables debug output.
	Debug bool
}

// Config provides unified access to the backchannel application config.
// It merges built-in defaults, the user config file and environment
// variables, in increasing priority.
type Config struct {
	mu sync.RWMutex

	values    map[string]any
	overrides map[string]string

	fs        loader.FileSystem
	configDir string
	envPrefix string
}

// Option configures a Config instance.
type Option func(*Config)

// WithConfigDir sets the directory holding config.toml.
func WithConfigDir(dir string) Option {
	return func(c *Config) {
		c.configDir = dir
	}
}

// WithFileSystem sets the file system used to read the config file.
func WithFileSystem(fs loader.FileSystem) Option {
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

// New creates a new Config instance holding the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		values:    defaultConfig(),
		fs:        loader.DefaultFS(),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.configDir == "" {
		c.configDir = defaultUserConfigDir()
	}
	return c
}

// Load creates a Config and loads it from all sources.
func Load(ctx context.Context, opts ...Option) (*Config, error) {
	c := New(opts...)
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the config file and the environment on top of the defaults.
// A missing config file is not an error.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := defaultConfig()

	file, err := loader.NewTOMLLoaderWithFS(c.fs, c.Path()).Load()
	if err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	merged = loader.DeepMerge(merged, file)

	env := loader.NewEnvLoader(c.envPrefix)
	vars, err := env.Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	merged = loader.DeepMerge(merged, vars)

	c.values = merged
	c.overrides = env.Settings()
	return nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return filepath.Join(c.configDir, ConfigFile)
}

// Get returns the value at the given dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.values, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// App decodes the merged values.
func (c *Config) App() (App, error) {
	var app App
	var err error

	if app.DataDir, err = c.GetString("paths.dataDir"); err != nil {
		return App{}, err
	}
	if app.SessionFile, err = c.GetString("paths.session"); err != nil {
		return App{}, err
	}
	if app.Verbose, err = c.GetBool("logging.verbose"); err != nil {
		return App{}, err
	}
	if app.Debug, err = c.GetBool("logging.debug"); err != nil {
		return App{}, err
	}

	app.DataDir = expandPath(app.DataDir)
	app.SessionFile = expandPath(app.SessionFile)
	return app, nil
}

// Overrides returns the setting values forced through the environment,
// keyed by setting name.
func (c *Config) Overrides() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.overrides))
	for k, v := range c.overrides {
		out[k] = v
	}
	return out
}

// defaultUserConfigDir returns the default user config directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "backchannel")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "backchannel")
}

// defaultSessionFile returns the default session snapshot path.
func defaultSessionFile() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "backchannel", "session.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "backchannel", "session.toml")
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"paths": map[string]any{
			"dataDir": "data",
			"session": defaultSessionFile(),
		},
		"logging": map[string]any{
			"verbose": false,
			"debug":   false,
		},
	}
}

// expandPath expands environment variables and a leading "~/".
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return p
}

// getPath navigates a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	current := any(m)
	for _, part := range strings.Split(path, ".") {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = cm[part]; !ok {
			return nil, false
		}
	}

	return current, true
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
