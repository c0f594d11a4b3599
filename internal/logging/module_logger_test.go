package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-guides/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "guides.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger = WithFields(logger, map[string]any{"foo": "bar"})
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, manifestModule)

	if len(provider.requested) != 1 || provider.requested[0] != manifestModule {
		t.Fatalf("expected module %s, got %v", manifestModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got, ok := rec.fields[0]["module"]; !ok || got != manifestModule {
		t.Fatalf("expected module field %s, got %v", manifestModule, rec.fields[0]["module"])
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestI18NLoggerRequestsI18NModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = I18NLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != i18nModule {
		t.Fatalf("expected i18n module request, got %v", provider.requested)
	}
}

func TestChecklistLoggerRequestsChecklistModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ChecklistLogger(provider)
	if len(provider.requested) == 0 || provider.requested[0] != checklistModule {
		t.Fatalf("expected checklist module request, got %v", provider.requested)
	}
}

func TestWithResolutionContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	_ = WithResolutionContext(rec, "visa-renewal", "  ")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one fields application, got %d", len(rec.fields))
	}
	if rec.fields[0]["content_key"] != "visa-renewal" {
		t.Fatalf("expected content_key field, got %v", rec.fields[0])
	}
	if _, ok := rec.fields[0]["locale"]; ok {
		t.Fatal("blank locale must not be attached")
	}
}
