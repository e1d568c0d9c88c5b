package loader

import (
	"os"
	"strings"
)

// SettingPrefix marks environment variables that override a setting:
// BACKCHANNEL_SET_REQ_INTERVAL=2-5 writes REQ_INTERVAL.
const SettingPrefix = "SET_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "BACKCHANNEL_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "BACKCHANNEL_").
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, defaultEnvMapping(prefix))
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "DATA_DIR": "paths.dataDir",
		prefix + "SESSION":  "paths.session",
		prefix + "VERBOSE":  "logging.verbose",
		prefix + "DEBUG":    "logging.debug",
	}
}

// boolPaths lists the config paths whose environment values are parsed as
// booleans. Every other mapped value stays a string.
var boolPaths = map[string]bool{
	"logging.verbose": true,
	"logging.debug":   true,
}

// Load reads the mapped environment variables and returns a configuration
// map. Setting overrides are not part of it; see Settings.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for name, value := range l.vars() {
		path, ok := l.mapping[name]
		if !ok {
			continue
		}
		var v any = value
		if boolPaths[path] {
			v = parseBool(value)
		}
		setByPath(config, path, v)
	}
	return config, nil
}

// Settings returns the setting overrides keyed by setting name. Values are
// passed through untouched so that file:// addresses and magic markers keep
// their meaning.
func (l *EnvLoader) Settings() map[string]string {
	out := make(map[string]string)
	marker := l.prefix + SettingPrefix
	for name, value := range l.vars() {
		if setting, ok := strings.CutPrefix(name, marker); ok && setting != "" {
			out[setting] = value
		}
	}
	return out
}

// vars returns the prefixed environment variables.
func (l *EnvLoader) vars() map[string]string {
	out := make(map[string]string)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		out[name] = value
	}
	return out
}

// parseBool converts the usual truth words to a bool. Anything else is
// returned unchanged so the config layer can report the type mismatch.
func parseBool(s string) any {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	// Navigate/create intermediate maps
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
