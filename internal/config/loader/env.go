package loader

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultEnvPrefix is the prefix of environment variables read by
// NewEnvLoader callers that do not choose their own.
const DefaultEnvPrefix = "SWIPESHELL_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // e.g. "SWIPESHELL_"
	mapping map[string]string // env var suffix -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

// NewEnvLoaderFrom creates a loader reading from a fixed KEY=VALUE list.
func NewEnvLoaderFrom(prefix string, env []string) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.environ = func() []string { return env }
	return l
}

// defaultEnvMapping maps variable suffixes whose camel-cased form would not
// match the setting path.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"LOG_LEVEL":                "logging.level",
		"LOG_FILE":                 "logging.file",
		"SWIPE_DISTANCE":           "gesture.swipeDistance",
		"LANDSCAPE_SWIPE_DISTANCE": "gesture.landscapeSwipeDistance",
		"VELOCITY_MIN":             "gesture.velocityMin",
		"TAP_DISTANCE_MAX":         "gesture.tapDistanceMax",
		"LONG_PRESS":               "gesture.longPress",
	}
}

// AddMapping adds a custom environment variable mapping. name excludes the
// prefix.
func (l *EnvLoader) AddMapping(name, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[name] = configPath
}

// Load reads environment variables and returns a configuration map.
// Empty values are treated as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		name = strings.TrimPrefix(name, l.prefix)
		if name == "" {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = envToPath(name)
		}
		SetByPath(config, path, parseValue(value))
	}

	return config, nil
}

// envToPath converts DISPLAY_CELL_WIDTH to display.cellWidth.
func envToPath(name string) string {
	parts := strings.Split(strings.ToLower(name), "_")
	if len(parts) == 1 {
		return parts[0]
	}

	setting := parts[1]
	for _, part := range parts[2:] {
		if part != "" {
			setting += strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return parts[0] + "." + setting
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return s
}
