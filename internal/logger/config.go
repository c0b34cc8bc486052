package logger

import (
	"log/slog"
	"strings"
)

// Config is the process logger setup. The zero value logs text at info
// without base attributes.
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds the logger setup from application settings. Empty service
// and version fall back to the defaults, and source locations are only
// attached in the dev environment.
func NewConfig(level, format, serviceName, version, environment string) Config {
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	if version == "" {
		version = DefaultVersion
	}
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   environment == EnvironmentDev,
	}
}

// LogLevel parses Level the way slog does, so offsets such as "debug-4" or
// "info+2" work, and also accepts "warning". Anything else is info.
func (c Config) LogLevel() slog.Level {
	level, ok := ParseLevel(c.Level)
	if !ok {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel reports whether s names a slog level
func ParseLevel(s string) (slog.Level, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, LogLevelWarning) {
		s = LogLevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record. Unset values are left out so
// test loggers stay terse.
func (c Config) BaseAttributes() []slog.Attr {
	var attrs []slog.Attr
	for _, kv := range [][2]string{
		{AttrKeyService, c.ServiceName},
		{AttrKeyVersion, c.Version},
		{AttrKeyEnvironment, c.Environment},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
