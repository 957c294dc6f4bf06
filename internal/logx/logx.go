// Package logx wraps sirupsen/logrus for the CLI-visible diagnostics
// the combinator kernel itself never produces (grammar load, build-cache
// hit/miss, translation warnings) — grounded on rami3l-golox's bare
// logrus.Debugln/Panicln call sites, lifted into a small shared logger
// rather than called package-level so cmd/pegc can adjust verbosity
// without a global.
package logx

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the thin handle every pegc component logs through.
type Logger struct {
	*logrus.Logger
}

// New builds a Logger writing to stderr, text-formatted, at Info level,
// or at Debug level when verbose is set.
func New(verbose bool) *Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp:   false,
		DisableColors:   false,
		TimestampFormat: "15:04:05",
	}
	l.Level = logrus.InfoLevel
	if verbose {
		l.Level = logrus.DebugLevel
	}
	return &Logger{Logger: l}
}

// CacheHit logs a grammar build-cache hit at debug level.
func (l *Logger) CacheHit(digest string) {
	l.WithField("digest", digest).Debug("grammar build cache hit")
}

// CacheMiss logs a grammar build-cache miss at debug level.
func (l *Logger) CacheMiss(digest string) {
	l.WithField("digest", digest).Debug("grammar build cache miss")
}

// GrammarLoaded logs how many rules a grammar source compiled to.
func (l *Logger) GrammarLoaded(path string, ruleCount int) {
	l.WithFields(logrus.Fields{"path": path, "rules": ruleCount}).Info("grammar loaded")
}
