// Package logging is the leveled console logger shared by the commands.
//
// Info lines are user-facing progress and go to stdout unless quiet is set.
// Warnings always go to stderr. Debug lines are only printed in verbose mode.
package logging

import (
	"io"
	"log"
	"os"
)

type Level int

const (
	LevelQuiet Level = iota
	LevelInfo
	LevelDebug
)

type Logger struct {
	level Level
	info  *log.Logger
	warn  *log.Logger
	debug *log.Logger
}

// New returns a Logger writing info/debug lines to out and warnings to errOut.
// Nil writers default to os.Stdout and os.Stderr.
func New(level Level, out, errOut io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Logger{
		level: level,
		info:  log.New(out, "", 0),
		warn:  log.New(errOut, "warning: ", 0),
		debug: log.New(errOut, "DEBUG: ", log.LstdFlags),
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(LevelQuiet, io.Discard, io.Discard)
}

func (l *Logger) Infof(format string, args ...any) {
	if l.level >= LevelInfo {
		l.info.Printf(format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	l.warn.Printf(format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.level >= LevelDebug {
		l.debug.Printf(format, args...)
	}
}

func (l *Logger) Level() Level {
	return l.level
}

// Out is the writer used for info lines, for callers that draw progress.
func (l *Logger) Out() io.Writer {
	return l.info.Writer()
}
