// Package logging provides structured startup logging for service agent
// registration. It wraps zerolog and adds event helpers for the registration
// lifecycle.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "LOG_LEVEL"

// Logger provides structured logging with an optional component name.
type Logger struct {
	zl zerolog.Logger
}

// New creates a Logger writing JSON lines to w at info level.
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{zl: zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// FromEnv creates a Logger on stderr whose level is read from LOG_LEVEL.
// Unset or unparseable values fall back to info; the latter logs a warning.
func FromEnv() *Logger {
	l := New(os.Stderr)
	raw, set := os.LookupEnv(EnvLevel)
	if !set {
		return l
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil || level == zerolog.NoLevel {
		l.zl.Warn().Str("value", raw).Msg("unable to parse log level from environment. using info")
		return l
	}
	l.SetLevel(level)
	return l
}

// WithComponent returns a new logger tagged with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level zerolog.Level) {
	l.zl = l.zl.Level(level)
}

// Zerolog exposes the underlying zerolog logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Debug starts a debug event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zl.Debug()
}

// Info starts an info event.
func (l *Logger) Info() *zerolog.Event {
	return l.zl.Info()
}

// Warn starts a warning event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zl.Warn()
}

// Error starts an error event.
func (l *Logger) Error() *zerolog.Event {
	return l.zl.Error()
}

// --- Registration lifecycle events ---

// SettingsLoaded logs that a settings source produced the given services.
func (l *Logger) SettingsLoaded(source string, services []string) {
	l.zl.Info().Str("source", source).Strs("services", services).Msg("settings_loaded")
}

// AgentRegistered logs a completed agent registration.
func (l *Logger) AgentRegistered(service, candidate, url string, aliased bool) {
	l.zl.Info().
		Str("service", service).
		Str("agent", candidate).
		Str("url", url).
		Bool("aliased", aliased).
		Msg("agent_registered")
}

// ClientCreated logs the construction of a service client.
func (l *Logger) ClientCreated(service, baseURL string) {
	l.zl.Debug().Str("service", service).Str("baseURL", baseURL).Msg("client_created")
}

// RegistrationFailed logs a registration error.
func (l *Logger) RegistrationFailed(service string, err error) {
	l.zl.Error().Err(err).Str("service", service).Msg("registration_failed")
}
