//go:build !tinygo

package hal

import (
	"strings"

	"github.com/sirupsen/logrus"
)

type logrusLogger struct {
	l *logrus.Logger
}

// NewLogrusLogger routes "component: message" lines into l with the
// component as a structured field.
func NewLogrusLogger(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return logrusLogger{l: l}
}

func (g logrusLogger) WriteLineString(s string) {
	component, msg := splitComponent(s)
	entry := logrus.NewEntry(g.l)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	switch {
	case strings.Contains(msg, "ERR"), strings.Contains(msg, "error"), strings.Contains(msg, "fault"):
		entry.Warn(msg)
	case component == "led":
		entry.Debug(msg)
	default:
		entry.Info(msg)
	}
}

func (g logrusLogger) WriteLineBytes(b []byte) { g.WriteLineString(string(b)) }

func splitComponent(s string) (component, msg string) {
	i := strings.Index(s, ": ")
	if i <= 0 || strings.ContainsAny(s[:i], " \t") {
		return "", s
	}
	return s[:i], s[i+2:]
}
