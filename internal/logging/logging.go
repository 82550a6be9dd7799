package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// TopicsEnv lists the debug topics to enable, e.g. WEALTHSIM_DEBUG_TOPICS=exchange,batch
const TopicsEnv = "WEALTHSIM_DEBUG_TOPICS"

// Logger provides topic-based debug logging with minimal overhead when disabled
type Logger struct {
	topic   string
	enabled bool
}

var enabledTopics = make(map[string]bool)

func init() {
	if loadTopics(os.Getenv(TopicsEnv)) {
		Configure("debug", os.Stderr)
	}
}

// loadTopics parses a comma-separated topic list ("all" enables everything)
// and reports whether any topic was enabled.
func loadTopics(topics string) bool {
	enabledTopics = make(map[string]bool)
	if topics == "" {
		return false
	}

	if topics == "all" {
		enabledTopics["*"] = true
		return true
	}

	for _, topic := range strings.Split(topics, ",") {
		topic = strings.TrimSpace(topic)
		if topic != "" {
			enabledTopics[topic] = true
		}
	}
	return len(enabledTopics) > 0
}

// ParseLevel maps "debug", "warn" and "error" to their slog level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Configure sets slog's default logger to a text handler on w.
// Enabled debug topics force the DEBUG level so their output is not dropped.
func Configure(level string, w io.Writer) {
	lvl := ParseLevel(level)
	if len(enabledTopics) > 0 {
		lvl = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

// New creates a new topic-specific logger
// Usage: var log = logging.New("exchange")
func New(topic string) *Logger {
	enabled := enabledTopics["*"] || enabledTopics[topic]
	return &Logger{
		topic:   topic,
		enabled: enabled,
	}
}

// Debug logs a debug message if this topic is enabled
func (l *Logger) Debug(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Debug(msg, append([]any{"topic", l.topic}, args...)...)
}

// Info logs an info message if this topic is enabled
func (l *Logger) Info(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Info(msg, append([]any{"topic", l.topic}, args...)...)
}

// Enabled returns true if this logger is enabled
// Useful for expensive computations: if log.Enabled() { ... }
func (l *Logger) Enabled() bool {
	return l.enabled
}
