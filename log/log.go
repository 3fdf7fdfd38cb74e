// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package log is a thin, geth-styled wrapper around log/slog: a handful of
// leveled methods, contextual key/value binding, and terminal-aware
// colorized output. Nothing in core/vm imports this package; only the disk
// database adapter in core/state and the evmrun command log anything.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Logger is the leveled logging surface callers depend on.
type Logger interface {
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
	New(ctx ...any) Logger
}

type slogLogger struct {
	inner *slog.Logger
}

var root Logger = newRoot()

func newRoot() Logger {
	var w io.Writer = os.Stderr
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if useColor {
		w = colorable.NewColorableStderr()
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &slogLogger{inner: slog.New(h)}
}

// Root returns the package-level default logger.
func Root() Logger { return root }

// SetDefault replaces the package-level default logger.
func SetDefault(l Logger) { root = l }

// New returns a child of the root logger with ctx bound as key/value pairs.
func New(ctx ...any) Logger { return root.New(ctx...) }

func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }
func Crit(msg string, ctx ...any)  { root.Crit(msg, ctx...) }

func (l *slogLogger) Debug(msg string, ctx ...any) {
	l.inner.Log(context.Background(), slog.LevelDebug, msg, ctx...)
}
func (l *slogLogger) Info(msg string, ctx ...any) {
	l.inner.Log(context.Background(), slog.LevelInfo, msg, ctx...)
}
func (l *slogLogger) Warn(msg string, ctx ...any) {
	l.inner.Log(context.Background(), slog.LevelWarn, msg, ctx...)
}
func (l *slogLogger) Error(msg string, ctx ...any) {
	l.inner.Log(context.Background(), slog.LevelError, msg, ctx...)
}

// Crit logs at error level with a "fatal" marker and then exits, matching
// geth's convention that a Crit log always terminates the process.
func (l *slogLogger) Crit(msg string, ctx ...any) {
	l.inner.Log(context.Background(), slog.LevelError, fmt.Sprintf("FATAL: %s", msg), ctx...)
	os.Exit(1)
}

func (l *slogLogger) New(ctx ...any) Logger {
	return &slogLogger{inner: l.inner.With(ctx...)}
}
