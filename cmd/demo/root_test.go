package demo

import (
	"bytes"
	"strings"
	"testing"
)

// TestRun tests that all scenarios succeed and report the expected values
func TestRun(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(&buf, 3); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"get after set: 42 (set=true, seq=1)",
		"C after A.set(20): 20",
		"step 3: sink=6 (seq=3)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}
