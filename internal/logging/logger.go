// Package logging defines the leveled logger contract shared by develog
// packages and the module-scoped helpers used to obtain loggers.
package logging

import (
	"context"
	"maps"
	"strings"
)

const (
	rootModule     = "develog"
	contentModule  = "develog.content"
	markdownModule = "develog.markdown"
	siteModule     = "develog.site"
	serverModule   = "develog.server"
	watchModule    = "develog.watch"
)

// Canonical field names.
const (
	FieldSlug     = "slug"
	FieldPath     = "path"
	FieldError    = "error"
	FieldDuration = "duration_ms"
)

// Logger mirrors the leveled interface exposed by go-logger.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// Provider hands out named loggers.
type Provider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry persistent fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// ModuleLogger returns a logger scoped to module, falling back to NoOp when
// provider is nil or returns nothing.
func ModuleLogger(provider Provider, module string) Logger {
	if strings.TrimSpace(module) == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

func ContentLogger(provider Provider) Logger  { return ModuleLogger(provider, contentModule) }
func MarkdownLogger(provider Provider) Logger { return ModuleLogger(provider, markdownModule) }
func SiteLogger(provider Provider) Logger     { return ModuleLogger(provider, siteModule) }
func ServerLogger(provider Provider) Logger   { return ModuleLogger(provider, serverModule) }
func WatchLogger(provider Provider) Logger    { return ModuleLogger(provider, watchModule) }

// WithFields attaches fields when logger supports FieldsLogger. Empty maps
// are a no-op.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// WithPost enriches logger with the slug and resolved file path of a post.
// Blank values are skipped.
func WithPost(logger Logger, slug, path string) Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[FieldSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[FieldPath] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger { return n }
func (n noopLogger) WithContext(context.Context) Logger  { return n }
