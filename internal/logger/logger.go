// Package logger is the logging layer shared by the library packages and the
// demo CLI. The library itself only speaks at debug level; everything user
// facing comes from the commands.
package logger

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&CLIFormatter{
		DisableTimestamp: true,
		DisableColors:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	return l
}

// Setup configures level and format. Environment variables override the
// flags: LOG_MODE=quiet|verbose|debug and LOG_FORMAT=json|text.
func Setup(verbose bool, jsonLogs bool, quiet bool) {
	switch os.Getenv("LOG_MODE") {
	case "quiet":
		quiet, verbose = true, false
	case "verbose", "debug":
		verbose, quiet = true, false
	}
	switch os.Getenv("LOG_FORMAT") {
	case "json":
		jsonLogs = true
	case "text":
		jsonLogs = false
	}

	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	if jsonLogs {
		log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	if verbose {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   isatty.IsTerminal(os.Stderr.Fd()),
		})
		return
	}
	log.SetFormatter(&CLIFormatter{
		DisableTimestamp: true,
		DisableColors:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
}

// L returns the underlying logrus logger.
func L() *logrus.Logger {
	return log
}

func Debug(msg string)                          { log.Debug(msg) }
func Debugf(format string, args ...interface{}) { log.Debugf(format, args...) }
func Info(msg string)                           { log.Info(msg) }
func Infof(format string, args ...interface{})  { log.Infof(format, args...) }
func Warn(msg string)                           { log.Warn(msg) }
func Warnf(format string, args ...interface{})  { log.Warnf(format, args...) }
func Error(msg string)                          { log.Error(msg) }
func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }

// WithField creates an entry with a single field.
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

// WithFields creates an entry with fields from a map.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return log.WithFields(fields)
}

// CLIFormatter renders clean single-line output for terminal use.
type CLIFormatter struct {
	DisableTimestamp bool
	DisableLevel     bool
	DisableColors    bool
}

func (f *CLIFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.DisableLevel {
		levelColor := ""
		resetColor := ""
		if !f.DisableColors {
			switch entry.Level {
			case logrus.ErrorLevel:
				levelColor = "\033[31m" // Red
			case logrus.WarnLevel:
				levelColor = "\033[33m" // Yellow
			case logrus.InfoLevel:
				levelColor = "\033[36m" // Cyan
			case logrus.DebugLevel:
				levelColor = "\033[37m" // White
			}
			resetColor = "\033[0m"
		}
		b.WriteString(levelColor)
		b.WriteString(strings.ToUpper(entry.Level.String()))
		b.WriteString(resetColor)
		b.WriteString(": ")
	}

	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		b.WriteString(" ")
		for k, v := range entry.Data {
			b.WriteString(fmt.Sprintf("%s=%v ", k, v))
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
