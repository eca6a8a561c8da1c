// Package logger wraps logrus so every package logs through one configured instance.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var std = logrus.New()

// New builds a logger. JSON output in production, colored text otherwise.
func New(level, env string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		l.Warnf("Invalid log level '%s', defaulting to info", level)
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(env, "production") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}
	return l
}

// Init replaces the package logger. Call once from main.
func Init(level, env string) *logrus.Logger {
	std = New(level, env)
	return std
}

// L returns the package logger.
func L() *logrus.Logger { return std }

// With is a shortcut for L().WithFields.
func With(fields logrus.Fields) *logrus.Entry { return std.WithFields(fields) }
