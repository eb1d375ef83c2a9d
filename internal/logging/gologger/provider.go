// Package gologger adapts github.com/goliatone/go-logger to the develog
// logging contract.
package gologger

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"develog/internal/logging"
)

// Config mirrors the logging section of develog.yaml.
type Config struct {
	Level  string
	Format string
	// AddSource annotates each record with the calling file and line.
	AddSource bool
	// Focus restricts output to the named loggers. Empty keeps all of them.
	Focus []string
}

// Provider hands out named go-logger children of one root logger.
type Provider struct {
	root  *glog.BaseLogger
	focus []string
}

var _ logging.Provider = (*Provider)(nil)

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

var formats = map[string]func() glog.Option{
	"":        glog.WithLoggerTypeConsole,
	"console": glog.WithLoggerTypeConsole,
	"json":    glog.WithLoggerTypeJSON,
	"pretty":  glog.WithLoggerTypePretty,
}

// NewProvider builds the root logger. Format is one of console (the
// default), json or pretty.
func NewProvider(cfg Config) (*Provider, error) {
	options, err := rootOptions(cfg)
	if err != nil {
		return nil, err
	}

	p := &Provider{root: glog.NewLogger(options...)}
	for _, name := range cfg.Focus {
		if name = strings.TrimSpace(name); name != "" && !slices.Contains(p.focus, name) {
			p.focus = append(p.focus, name)
		}
	}
	if len(p.focus) > 0 {
		p.root.Focus(p.focus...)
	}
	return p, nil
}

func rootOptions(cfg Config) ([]glog.Option, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}
	options := []glog.Option{format()}
	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}
	return options, nil
}

// Focused lists the logger names output is restricted to.
func (p *Provider) Focused() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.focus)
}

// GetLogger returns the child logger called name, or the root for a blank
// name.
func (p *Provider) GetLogger(name string) logging.Logger {
	if p == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name != "" {
		return wrap(p.root.GetLogger(name))
	}
	return wrap(p.root)
}

func wrap(inner glog.Logger) logging.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

// adapter forwards to go-logger. Loggers without native field support get
// their fields appended to every call as sorted key/value pairs.
type adapter struct {
	inner  glog.Logger
	fields []any
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, l.args(args)...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, l.args(args)...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, l.args(args)...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, l.args(args)...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, l.args(args)...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, l.args(args)...) }

func (l *adapter) args(args []any) []any {
	if len(l.fields) == 0 {
		return args
	}
	return append(slices.Clone(l.fields), args...)
}

func (l *adapter) WithFields(fields map[string]any) logging.Logger {
	if len(fields) == 0 {
		return l
	}
	if native, ok := l.inner.(glog.FieldsLogger); ok {
		return l.derive(native.WithFields(copyFields(fields)))
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := slices.Clone(l.fields)
	for _, k := range keys {
		pairs = append(pairs, k, fields[k])
	}
	return &adapter{inner: l.inner, fields: pairs}
}

func (l *adapter) WithContext(ctx context.Context) logging.Logger {
	if ctx == nil {
		return l
	}
	return l.derive(l.inner.WithContext(ctx))
}

// derive wraps a go-logger child and carries over the appended fields.
func (l *adapter) derive(inner glog.Logger) logging.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner, fields: slices.Clone(l.fields)}
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
