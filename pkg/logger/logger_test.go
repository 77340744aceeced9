package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "warn", false)

	Info("hidden")
	Warn("shown", "tick", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "tick=3") {
		t.Fatalf("missing warn line: %q", out)
	}
}

func TestJSONWith(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "DEBUG", true)

	With("session", "abc").Debug("tick")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %v (%q)", err, buf.String())
	}
	if line["session"] != "abc" || line["msg"] != "tick" {
		t.Fatalf("unexpected line %v", line)
	}
}
