package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	fields []map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) Logger {
	r.fields = append(r.fields, fields)
	return r
}

func (r *recordingLogger) WithContext(context.Context) Logger { return r }

type stubProvider struct {
	requested []string
	logger    Logger
}

func (s *stubProvider) GetLogger(name string) Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "develog.test")
	_, ok := logger.(noopLogger)
	require.True(t, ok, "expected noop fallback, got %T", logger)

	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	ContentLogger(provider)

	require.Equal(t, []string{contentModule}, provider.requested)
	require.Len(t, rec.fields, 1)
	assert.Equal(t, contentModule, rec.fields[0]["module"])
}

func TestModuleLoggerDefaultsBlankModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}

	ModuleLogger(provider, "  ")

	assert.Equal(t, []string{rootModule}, provider.requested)
}

func TestWithPostSkipsBlankValues(t *testing.T) {
	rec := &recordingLogger{}

	WithPost(rec, "dev/go", "")

	require.Len(t, rec.fields, 1)
	assert.Equal(t, map[string]any{FieldSlug: "dev/go"}, rec.fields[0])

	WithPost(rec, " ", "")
	assert.Len(t, rec.fields, 1, "empty field sets must not reach the logger")
}

func TestWithFieldsCopiesInput(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"k": "v"}

	WithFields(rec, fields)
	fields["k"] = "changed"

	assert.Equal(t, "v", rec.fields[0]["k"])
}
