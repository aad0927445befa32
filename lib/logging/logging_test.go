package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

// TestParseLogLevel tests the conversion of level names
func TestParseLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"warn":    logger.WARNING,
		"warning": logger.WARNING,
		"Error":   logger.ERROR,
	}
	for input, want := range tests {
		got, err := ParseLogLevel(input)
		if err != nil {
			t.Errorf("ParseLogLevel(%q) failed: %v", input, err)
		}
		if got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Errorf("Expected error for invalid level")
	}
}

// TestLoggerLevels tests that messages below the level are dropped
func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	l := CreateLogger("test")
	l.SetLevel(logger.INFO)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Errorf("shown %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug message should be dropped: %s", out)
	}
	if !strings.Contains(out, "INFO  | test") || !strings.Contains(out, "shown 3") {
		t.Errorf("Unexpected output: %s", out)
	}
}

// TestInitLoggers tests that invalid levels are rejected
func TestInitLoggers(t *testing.T) {
	if err := InitLoggers("nonsense"); err == nil {
		t.Errorf("Expected error for invalid level")
	}
	if err := InitLoggers("error"); err != nil {
		t.Errorf("InitLoggers failed: %v", err)
	}
}

// TestInitLoggersTwice tests that the level can be changed by a second call
func TestInitLoggersTwice(t *testing.T) {
	if err := InitLoggers("warn"); err != nil {
		t.Fatalf("First InitLoggers failed: %v", err)
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Second InitLoggers panicked: %v", r)
			}
		}()
		if err := InitLoggers("debug"); err != nil {
			t.Fatalf("Second InitLoggers failed: %v", err)
		}
	}()

	if err := InitLoggers("error"); err != nil {
		t.Errorf("Third InitLoggers failed: %v", err)
	}
}
