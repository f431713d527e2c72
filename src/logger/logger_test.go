package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerWritesComponentAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "INFO", "Server")

	l.Info("listening on %s:%d", "127.0.0.1", 33507)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "Server" {
		t.Errorf("component = %v, want Server", entry["component"])
	}
	if entry["message"] != "listening on 127.0.0.1:33507" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestLoggerLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "WARNING", "Pipeline")

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warning("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "shown") {
		t.Errorf("unexpected line %q", lines[0])
	}
}

func TestNamedReplacesComponent(t *testing.T) {
	var buf bytes.Buffer
	root := NewLoggerTo(&buf, "DEBUG", "App")
	child := root.Named("AlphaVantageSource")

	child.Debug("fetching %s", "AAPL")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["component"] != "AlphaVantageSource" {
		t.Errorf("component = %v, want AlphaVantageSource", entry["component"])
	}
	if strings.Count(buf.String(), `"component"`) != 1 {
		t.Errorf("component key duplicated: %s", buf.String())
	}
}
