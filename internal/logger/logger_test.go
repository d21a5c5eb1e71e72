package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestProperty_ProductionLogsAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("production entries are JSON with level, timestamp, message and service", prop.ForAll(
		func(message string, level string) bool {
			var buf bytes.Buffer
			log := NewWithSink("production", zapcore.AddSync(&buf))

			switch level {
			case "info":
				log.Info(message)
			case "warn":
				log.Warn(message)
			default:
				log.Error(message)
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Logf("FAIL: output is not JSON: %q", buf.String())
				return false
			}

			for _, key := range []string{"level", "timestamp", "message", "caller"} {
				if _, ok := entry[key]; !ok {
					t.Logf("FAIL: missing key %s", key)
					return false
				}
			}

			return entry["message"] == message &&
				entry["level"] == level &&
				entry["service"] == ServiceName
		},
		gen.AlphaString(),
		gen.OneConstOf("info", "warn", "error"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductionLoggerSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink("production", zapcore.AddSync(&buf))

	log.Debug("resolving components", zap.Int64("product_id", 7))

	if buf.Len() != 0 {
		t.Fatalf("expected debug entry to be dropped, got %q", buf.String())
	}
}

func TestErrorLogsIncludeContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink("production", zapcore.AddSync(&buf))

	log.Error("Failed to create product", zap.String("error", "connection refused"), zap.Int64("product_id", 42))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["error"] != "connection refused" {
		t.Errorf("expected error field, got %v", entry["error"])
	}
	if entry["product_id"] != float64(42) {
		t.Errorf("expected product_id field, got %v", entry["product_id"])
	}
	if _, ok := entry["stacktrace"]; !ok {
		t.Error("expected stacktrace on error level entries")
	}
}

func TestDevelopmentLoggerUsesConsoleEncoding(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink("development", zapcore.AddSync(&buf))

	log.Debug("listing products")

	out := buf.String()
	if !strings.Contains(out, "listing products") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("development output should not be JSON: %q", out)
	}
}

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		log, err := New(env)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", env, err)
		}
		if log == nil {
			t.Fatalf("New(%q) returned nil logger", env)
		}
	}
}
