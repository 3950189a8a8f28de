package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(Config{Level: "debug", Environment: "test", Output: &buf}), "billing")
	l.Debug("aggregated", "table", "5")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %q", buf.String())
	}
	if rec["component"] != "billing" || rec["environment"] != "test" || rec["table"] != "5" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "text", Output: &buf})
	l.Info("dropped")
	l.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Fatalf("level filter failed: %q", out)
	}
}
