package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	entry *logrus.Entry
}

// NewLogger builds a logger writing to out (stdout when nil). format is
// "json" or anything else for human readable text.
func NewLogger(debug bool, format string, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}

	base := logrus.New()
	base.SetOutput(out)
	if debug {
		base.SetLevel(logrus.DebugLevel)
	} else {
		base.SetLevel(logrus.InfoLevel)
	}

	if strings.EqualFold(format, "json") {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return &Logger{entry: logrus.NewEntry(base)}
}

// NewNopLogger discards everything. Used by tests.
func NewNopLogger() *Logger {
	return NewLogger(false, "text", io.Discard)
}

// WithFields returns a child logger that tags every line with fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *Logger) Debug(v ...interface{}) {
	l.entry.Debugln(v...)
}

func (l *Logger) Info(v ...interface{}) {
	l.entry.Infoln(v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.entry.Warnln(v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.entry.Errorln(v...)
}

func (l *Logger) Fatal(v ...interface{}) {
	l.entry.Fatalln(v...)
}
