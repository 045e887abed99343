package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"heliocat/internal/logging"
)

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logging.WithComponent(logger, "scan").Info("ingested entry", "path", "/data/obs file.fits", "count", 3)

	line := buf.String()
	if !strings.Contains(line, "INFO scan: ingested entry") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, `path="/data/obs file.fits"`) {
		t.Fatalf("expected quoted path attr: %q", line)
	}
	if !strings.Contains(line, "count=3") {
		t.Fatalf("expected count attr: %q", line)
	}
}

func TestConsoleHandlerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("drop me")
	logger.Warn("keep me")
	if strings.Contains(buf.String(), "drop me") {
		t.Fatalf("info line should have been filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "keep me") {
		t.Fatalf("warn line missing: %q", buf.String())
	}
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("saved", "id", 7)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if payload["msg"] != "saved" || payload["level"] != "info" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
