package debuglog

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

var linePattern = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3} [+-]\d{4}\] `)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// TestLogger_CreatesFileAndAppendsInOrder tests two calls produce two ordered, prefixed lines.
func TestLogger_CreatesFileAndAppendsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("log file exists before first write: %v", err)
	}

	l := New(Options{Path: path})
	defer l.Close()
	l.Log("x")
	l.Log("y")

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	for i, want := range []string{"x", "y"} {
		if !linePattern.MatchString(lines[i]) {
			t.Errorf("line %d %q lacks timestamp prefix", i, lines[i])
		}
		if !strings.HasSuffix(lines[i], "] "+want) {
			t.Errorf("line %d = %q, want message %q", i, lines[i], want)
		}
	}
}

// TestLogger_AppendsToExistingFile tests that earlier content is kept.
func TestLogger_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := os.WriteFile(path, []byte("earlier line\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	l := New(Options{Path: path})
	l.Log("later line")
	l.Close()

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	if lines[0] != "earlier line" {
		t.Errorf("first line = %q, want earlier line", lines[0])
	}
	if !strings.HasSuffix(lines[1], "] later line") {
		t.Errorf("second line = %q", lines[1])
	}
}

// TestLogger_ExactFormat tests the full line with a fixed clock.
func TestLogger_ExactFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	fixed := time.Date(2026, 10, 16, 14, 5, 9, 123_000_000, time.FixedZone("", 13*3600))

	l := New(Options{Path: path, Now: func() time.Time { return fixed }})
	l.Logf("saved %d changes", 5)
	l.Close()

	data, _ := os.ReadFile(path)
	want := "[2026-10-16 14:05:09.123 +1300] saved 5 changes\n"
	if string(data) != want {
		t.Errorf("content = %q, want %q", data, want)
	}
}

// TestLogger_WriteFailureSwallowed tests that an unwritable path does not panic or surface.
func TestLogger_WriteFailureSwallowed(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	// The parent of the target is a regular file, so the log cannot be created.
	path := filepath.Join(blocker, "debug.log")
	l := New(Options{Path: path})
	l.Log("dropped")
	l.Logf("dropped %s", "too")

	if _, err := os.Stat(path); err == nil {
		t.Error("log file unexpectedly created")
	}
}

// TestLogger_Nop tests that the nop and nil loggers discard quietly.
func TestLogger_Nop(t *testing.T) {
	Nop().Log("nothing")
	if err := Nop().Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	var l *Logger
	l.Log("nothing")
	l.Logf("%s", "nothing")
}
