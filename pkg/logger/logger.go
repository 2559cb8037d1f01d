package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the printf-style facade every service logs through.
type Logger struct {
	entry *logrus.Entry
}

func New() *Logger {
	return NewWithLevel("info")
}

// NewWithLevel builds a JSON logger writing to stdout. Unknown levels fall
// back to info.
func NewWithLevel(level string) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	return &Logger{entry: logrus.NewEntry(base)}
}

// WithField returns a child logger that tags every line with key=value.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debug(fmt.Sprintf(format, v...))
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Info(fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warn(fmt.Sprintf(format, v...))
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Error(fmt.Sprintf(format, v...))
}

// Level reports the configured level name.
func (l *Logger) Level() string {
	return l.entry.Logger.GetLevel().String()
}
