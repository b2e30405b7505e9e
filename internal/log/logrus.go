package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogrus builds an operational logger. format is "text" or "json".
func NewLogrus(level, format string, w io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(w)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return l, nil
}

// LogrusLogger records events in memory and emits each one as a structured
// logrus entry.
type LogrusLogger struct {
	MemoryLogger
	entry *logrus.Entry
}

// NewLogrusLogger wraps l. Events are logged at info level, except invalid
// selections (warn) and per-card movement (debug).
func NewLogrusLogger(l *logrus.Logger, fields logrus.Fields) *LogrusLogger {
	return &LogrusLogger{entry: l.WithFields(fields)}
}

func (l *LogrusLogger) Log(event GameEvent) {
	event = l.MemoryLogger.record(event)

	entry := l.entry.WithFields(logrus.Fields{
		"seq":   event.Seq,
		"turn":  event.Turn,
		"phase": event.Phase,
		"event": event.Type.String(),
	})
	if event.Player != "" {
		entry = entry.WithField("player", event.Player)
	}
	if event.Card != "" {
		entry = entry.WithField("card", event.Card)
	}

	switch event.Type {
	case EventInvalidSelection:
		entry.Warn(event.Details)
	case EventTake, EventDraw, EventDeal, EventStartingRoll, EventTieBreakRoll:
		entry.Debug(event.Details)
	default:
		entry.Info(event.Details)
	}
}
