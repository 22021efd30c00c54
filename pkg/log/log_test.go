package log

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

// captureOutput collects formatted entries for assertions.
type captureOutput struct {
	mu    sync.Mutex
	lines []string
}

func (o *captureOutput) Write(_ *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, string(formatted))
	return nil
}

func (o *captureOutput) Close() error { return nil }

func (o *captureOutput) all() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.lines...)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": DebugLevel, "info": InfoLevel, "warning": WarnLevel,
		"WARN": WarnLevel, "error": ErrorLevel, "fatal": FatalLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelGating(t *testing.T) {
	out := &captureOutput{}
	l := NewLogger(WithLevel(WarnLevel), WithOutput(out))
	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("shown")
	if got := out.all(); len(got) != 1 || !strings.Contains(got[0], "shown") {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestSetLevelAppliesToDerivedLoggers(t *testing.T) {
	out := &captureOutput{}
	root := NewLogger(WithLevel(InfoLevel), WithOutput(out))
	child := root.WithComponent("bridge")
	root.SetLevel(ErrorLevel)
	child.Info("hidden")
	child.Error("shown")
	if got := out.all(); len(got) != 1 || !strings.Contains(got[0], "shown") {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestTextFormatterFields(t *testing.T) {
	f := &TextFormatter{}
	b, err := f.Format(&Entry{
		Level:     InfoLevel,
		Message:   "hello",
		Fields:    Fields{"b": 2, "a": "x"},
		Timestamp: time.Unix(0, 0).UTC(),
	})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	line := string(b)
	if !strings.Contains(line, "INFO hello") {
		t.Fatalf("missing level/message: %q", line)
	}
	// keys are sorted
	if strings.Index(line, "a=x") > strings.Index(line, "b=2") {
		t.Fatalf("fields not sorted: %q", line)
	}
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	f := &JSONFormatter{}
	b, err := f.Format(&Entry{
		Level:     ErrorLevel,
		Message:   "boom",
		Fields:    Fields{"component": "bridge"},
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(b, &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if obj["level"] != "ERROR" || obj["msg"] != "boom" || obj["component"] != "bridge" {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestWithAttachesFields(t *testing.T) {
	out := &captureOutput{}
	l := NewLogger(WithOutput(out), WithFormatter(&TextFormatter{}))
	l.With(Str("ns", "default")).Info("event", Int("n", 3))
	got := out.all()
	if len(got) != 1 || !strings.Contains(got[0], "ns=default") || !strings.Contains(got[0], "n=3") {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestApplyConfig(t *testing.T) {
	l, err := ApplyConfig(&Config{Level: "debug", Format: "json", Output: "null"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if l.GetLevel() != DebugLevel {
		t.Fatalf("level = %v", l.GetLevel())
	}
	if _, err := ApplyConfig(&Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
