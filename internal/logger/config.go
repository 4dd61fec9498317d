package logger

import (
	"log/slog"
	"strings"
)

// Config selects the handler, level and base attributes of the default logger
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config. Source locations are recorded in development.
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
		AddSource:   IsDevelopment(environment),
	}
}

// IsDevelopment reports whether env names a local development environment
func IsDevelopment(env string) bool {
	switch strings.ToLower(env) {
	case EnvironmentDev, EnvironmentDevelopment:
		return true
	}
	return false
}

// LogLevel maps Level to a slog level, defaulting to info
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// IsJSON reports whether records are emitted as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record
func (c Config) BaseAttributes() []slog.Attr {
	attrs := []slog.Attr{slog.String(AttrKeyService, c.ServiceName)}
	if c.Version != "" {
		attrs = append(attrs, slog.String(AttrKeyVersion, c.Version))
	}
	if c.Environment != "" {
		attrs = append(attrs, slog.String(AttrKeyEnvironment, c.Environment))
	}
	return attrs
}
