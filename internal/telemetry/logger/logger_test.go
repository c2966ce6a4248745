package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Info("hello", "key", 42)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "hello" {
		t.Fatalf("msg = %v, want hello", entry["msg"])
	}
	if entry["key"] != float64(42) {
		t.Fatalf("key = %v, want 42", entry["key"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "text", Output: &buf})

	log.Info("hello")

	if strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("text format produced JSON: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("output missing message: %q", buf.String())
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "json", Output: &buf})

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info emitted at warn level: %q", buf.String())
	}

	log.Warn("kept")
	if buf.Len() == 0 {
		t.Fatalf("warn not emitted at warn level")
	}
}

func TestSetLevel_Dynamic(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Debug("dropped")
	if buf.Len() != 0 {
		t.Fatalf("debug emitted at info level")
	}

	SetLevel("debug")
	defer SetLevel("info")

	log.Debug("kept")
	if buf.Len() == 0 {
		t.Fatalf("debug not emitted after SetLevel(debug)")
	}

	if GetLevel() != "debug" {
		t.Fatalf("GetLevel = %q, want debug", GetLevel())
	}
}

func TestParseLevel_UnknownFallsBackToInfo(t *testing.T) {
	SetLevel("nonsense")
	defer SetLevel("info")

	if GetLevel() != "info" {
		t.Fatalf("GetLevel = %q, want info for unknown input", GetLevel())
	}
}
