package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	logger := New("test")

	logger.Info("hidden at notice")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at the default level, got %q", buf.String())
	}

	SetLevel(Debug)
	logger.Debugf("tile %d/%d", 3, 9)
	out := buf.String()
	if !strings.Contains(out, "tile 3/9") {
		t.Errorf("Expected debug message in output, got %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("Expected module name in output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", Debug, false},
		{"INFO", Info, false},
		{" warning ", Warning, false},
		{"error", Error, false},
		{"loud", Notice, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%t, got %v", tt.wantErr, err)
			}
			if level != tt.expected {
				t.Errorf("Expected level %d, got %d", tt.expected, level)
			}
		})
	}
}
