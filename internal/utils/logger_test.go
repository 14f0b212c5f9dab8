package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_DebugSuppressedUnlessEnabled(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(false, "text", &buf).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	NewLogger(true, "text", &buf).Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestLogger_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(false, "json", &buf).
		WithFields(map[string]interface{}{"request_id": "abc"}).
		Error("upstream", "failed")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %v (%q)", err, buf.String())
	}
	if line["level"] != "error" {
		t.Fatalf("level = %v", line["level"])
	}
	if line["request_id"] != "abc" {
		t.Fatalf("request_id = %v", line["request_id"])
	}
	if line["msg"] != "upstream failed" {
		t.Fatalf("msg = %v", line["msg"])
	}
}
