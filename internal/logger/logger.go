// Package logger holds the process-wide structured logger. Everything logs
// key/value pairs through charmbracelet/log to stderr or a log file.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// LevelEnvVar names the environment variable read when no level flag is set.
const LevelEnvVar = "PARAMSHELL_LOG_LEVEL"

// Logger is the global logger instance used throughout paramshell.
var Logger = newLogger(os.Stderr, log.InfoLevel)

// output is shared by the global logger and component loggers.
var output io.Writer = os.Stderr

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{Level: level})
	l.SetTimeFormat("")
	return l
}

// Configure resolves the level (flag, then LevelEnvVar, then info) and the
// destination. Test mode always logs at info level.
func Configure(logLevel string, logFile string, testMode bool) error {
	level := logLevel
	if level == "" {
		level = os.Getenv(LevelEnvVar)
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		w = file
	}

	resolved := parseLogLevel(level)
	if testMode {
		resolved = log.InfoLevel
	}

	output = w
	Logger = newLogger(w, resolved)
	return nil
}

// SetOutput redirects the global logger, mostly for tests.
func SetOutput(w io.Writer) {
	output = w
	Logger.SetOutput(w)
}

// parseLogLevel falls back to info for anything charmbracelet/log does not know.
func parseLogLevel(level string) log.Level {
	parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message with optional key-value pairs and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}

// CommandExecution logs command dispatch details for debugging.
func CommandExecution(invocation string, command string, tokens []string) {
	Debug("Dispatching command", "invocation", invocation, "command", command, "tokens", tokens)
}

// ServiceOperation logs service operation details for debugging.
func ServiceOperation(service string, operation string, details ...interface{}) {
	Debug("Service operation", "service", service, "operation", operation, "details", details)
}

// MatchFailure logs why a token list did not match a scheme.
func MatchFailure(command string, variant string, message string, path []int) {
	Debug("Scheme did not match", "command", command, "variant", variant, "error", message, "path", path)
}

// levelBadges maps each level to its badge background colour.
var levelBadges = map[log.Level]struct {
	label string
	color string
}{
	log.DebugLevel: {"DEBUG", "240"},
	log.InfoLevel:  {"INFO", "33"},
	log.WarnLevel:  {"WARN", "214"},
	log.ErrorLevel: {"ERROR", "196"},
	log.FatalLevel: {"FATAL", "88"},
}

// keyColors highlights the keys paramshell logs most.
var keyColors = map[string]string{
	"command":    "46",
	"variant":    "99",
	"tokens":     "39",
	"path":       "214",
	"file":       "51",
	"error":      "196",
	"invocation": "245",
}

// NewStyledLogger returns a logger for one component. Lines carry prefix,
// level badges and coloured keys, and share the global output and level.
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()
	for level, badge := range levelBadges {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(badge.label).
			Padding(0, 1).
			Background(lipgloss.Color(badge.color)).
			Foreground(lipgloss.Color("15"))
	}
	for key, color := range keyColors {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	componentLogger := log.NewWithOptions(output, log.Options{
		Prefix: prefix + " ",
		Level:  Logger.GetLevel(),
	})
	componentLogger.SetStyles(styles)
	return componentLogger
}
