package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, level Level) (*Logger, *bytes.Buffer) {
	t.Helper()
	l, err := New("client-test", level, "")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	l.output = &buf
	return l, &buf
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	l, buf := newTestLogger(t, WARN)
	l.Info("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	l.Warn("should appear")
	if buf.Len() == 0 {
		t.Fatal("expected output for WARN level")
	}
}

func TestLoggerEmitsJSONWithFields(t *testing.T) {
	l, buf := newTestLogger(t, DEBUG)
	l.Info("connected", Fields{"agent": "abc"})

	var e entry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &e); err != nil {
		t.Fatalf("output was not valid JSON: %v (%s)", err, buf.String())
	}
	if e.Message != "connected" || e.Level != "INFO" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.Fields["agent"] != "abc" {
		t.Fatalf("expected agent field, got %+v", e.Fields)
	}
}

func TestWithFieldIsPersistentAndIsolated(t *testing.T) {
	l, buf := newTestLogger(t, DEBUG)
	child := l.WithField("session", "s1")
	child.output = buf

	child.Info("hello")
	if !strings.Contains(buf.String(), `"session":"s1"`) {
		t.Fatalf("expected session field in output: %s", buf.String())
	}

	buf.Reset()
	l.Info("parent unaffected")
	if strings.Contains(buf.String(), "session") {
		t.Fatal("parent logger should not carry the child's field")
	}
}

func TestNilLoggerIsNoOp(t *testing.T) {
	var l *Logger
	l.Info("never panics")
	l.Warn("never panics")
	if err := l.Close(); err != nil {
		t.Fatalf("expected nil error closing nil logger, got %v", err)
	}
}
