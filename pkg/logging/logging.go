// Copyright 2026 The Zen Config Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging wraps zap.Logger with the structured field vocabulary
// used across the config subsystems.
package logging

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger so call sites pass a Fields value instead of
// building zap.Field slices by hand.
type Logger struct {
	*zap.Logger
}

// Fields is the structured vocabulary this package knows how to render.
// Only non-zero fields are emitted.
type Fields struct {
	Component   string
	Operation   string
	ScopeKey    string
	SourceName  string
	TargetType  string
	Priority    int
	HasPriority bool
	Ordinal     int
	HasOrdinal  bool
	Count       int
	Error       error
	Additional  map[string]interface{}
}

var (
	mu     sync.RWMutex
	global *Logger
)

// Init builds and installs the global logger at the given level.
// development selects zap's human-readable console encoder.
func Init(level string, development bool) error {
	var zapLevel zapcore.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		zapLevel = zapcore.DebugLevel
	case "INFO", "":
		zapLevel = zapcore.InfoLevel
	case "WARN", "WARNING":
		zapLevel = zapcore.WarnLevel
	case "ERROR":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.LevelKey = "level"
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	mu.Lock()
	global = &Logger{Logger: l}
	mu.Unlock()
	return nil
}

// L returns the global logger, lazily initializing it at INFO level if
// Init was never called.
func L() *Logger {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l != nil {
		return l
	}
	_ = Init("INFO", false)
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Sync flushes the global logger's buffers.
func Sync() {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l != nil {
		_ = l.Logger.Sync()
	}
}

// With renders fields into zap.Fields and returns a derived *zap.Logger.
func (l *Logger) With(f Fields) *zap.Logger {
	zf := make([]zap.Field, 0, 10)
	if f.Component != "" {
		zf = append(zf, zap.String("component", f.Component))
	}
	if f.Operation != "" {
		zf = append(zf, zap.String("operation", f.Operation))
	}
	if f.ScopeKey != "" {
		zf = append(zf, zap.String("scope_key", f.ScopeKey))
	}
	if f.SourceName != "" {
		zf = append(zf, zap.String("source", f.SourceName))
	}
	if f.TargetType != "" {
		zf = append(zf, zap.String("target_type", f.TargetType))
	}
	if f.HasPriority {
		zf = append(zf, zap.Int("priority", f.Priority))
	}
	if f.HasOrdinal {
		zf = append(zf, zap.Int("ordinal", f.Ordinal))
	}
	if f.Count > 0 {
		zf = append(zf, zap.Int("count", f.Count))
	}
	if f.Error != nil {
		zf = append(zf, zap.Error(f.Error))
	}
	for k, v := range f.Additional {
		zf = append(zf, zap.Any(k, v))
	}
	return l.Logger.With(zf...)
}

// Info logs at info level with structured fields.
func Info(msg string, f Fields) { L().With(f).Info(msg) }

// Warn logs at warn level with structured fields.
func Warn(msg string, f Fields) { L().With(f).Warn(msg) }

// Error logs at error level with structured fields.
func Error(msg string, f Fields) { L().With(f).Error(msg) }

// Debug logs at debug level with structured fields.
func Debug(msg string, f Fields) { L().With(f).Debug(msg) }
