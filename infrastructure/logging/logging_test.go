package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestUse_RoutesPackageHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core))
	t.Cleanup(func() { Use(nil) })

	Info("ignoring file", String("file", "dist/index.html"))
	Warn("no lockfile")
	Debug("retrying", Int("attempt", 1))

	if logs.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", logs.Len())
	}
	first := logs.All()[0]
	if first.Message != "ignoring file" {
		t.Errorf("message = %q", first.Message)
	}
	if first.ContextMap()["file"] != "dist/index.html" {
		t.Errorf("file field = %v", first.ContextMap()["file"])
	}
	if logs.All()[1].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", logs.All()[1].Level)
	}
}

func TestSetLevel(t *testing.T) {
	SetLevel("error")
	if globalLevel.Level() != zapcore.ErrorLevel {
		t.Errorf("level = %v, want error", globalLevel.Level())
	}

	SetLevel("not-a-level")
	if globalLevel.Level() != zapcore.ErrorLevel {
		t.Errorf("invalid level should be ignored, got %v", globalLevel.Level())
	}

	SetLevel("info")
}

func TestL_InitializesDefault(t *testing.T) {
	Use(nil)
	if L() == nil {
		t.Fatal("L() returned nil")
	}
}
