// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"io"
	"log/slog"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerConfig controls the process-wide logger.
type LoggerConfig struct {
	Level      string // debug, info, warn or error
	IncludeSrc bool
	Filename   string // if set, also log to this file, rotated
	MaxSize    int    // megabytes
	MaxAge     int    // days
	MaxBackups int
}

// InitLogger installs a JSON slog logger writing to w and, if
// lc.Filename is set, to a rotating log file. It returns the file
// writer, or nil, so the caller can close it.
func InitLogger(w io.Writer, lc LoggerConfig) io.Closer {
	opts := &slog.HandlerOptions{
		Level:     LogLevel(lc.Level),
		AddSource: lc.IncludeSrc,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, _ := a.Value.Any().(*slog.Source); source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			return a
		},
	}
	var closer io.Closer
	if lc.Filename != "" {
		file := &lumberjack.Logger{
			Filename:   lc.Filename,
			MaxSize:    lc.MaxSize,
			MaxAge:     lc.MaxAge,
			MaxBackups: lc.MaxBackups,
		}
		w = io.MultiWriter(w, file)
		closer = file
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))
	return closer
}

// LogLevel converts a level name to a slog.Level. Unknown names mean info.
func LogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
