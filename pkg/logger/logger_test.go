package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout); Init("info") })
	return &buf
}

func TestInitAndLevelString(t *testing.T) {
	cases := map[string]string{
		"debug":    "debug",
		"WARN":     "warn",
		"warning":  "warn",
		"Error":    "error",
		" fatal ":  "fatal",
		"nonsense": "info",
		"":         "info",
	}
	for in, want := range cases {
		Init(in)
		if got := LevelString(); got != want {
			t.Fatalf("Init(%q): LevelString() = %q, want %q", in, got, want)
		}
	}
	Init("info")
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Errorf("error-msg")

	out := buf.String()
	if strings.Contains(out, "debug-msg") || strings.Contains(out, "info-msg") {
		t.Fatalf("debug/info messages should be suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn-msg") {
		t.Fatalf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "[ERROR] error-msg") {
		t.Fatalf("error message missing: %q", out)
	}
}

func TestNamedPrefixesComponent(t *testing.T) {
	buf := capture(t)
	Init("debug")

	Named("repository").Debugf("saved %s", "abc")
	if !strings.Contains(buf.String(), "[DEBUG] repository: saved abc") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestFatalfExits(t *testing.T) {
	buf := capture(t)
	var code int
	orig := exit
	exit = func(c int) { code = c }
	defer func() { exit = orig }()

	Init("error")
	Fatalf("boom")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "[FATAL] boom") {
		t.Fatalf("fatal message missing: %q", buf.String())
	}
}
