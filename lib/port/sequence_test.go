package port

import (
	"math"
	"testing"
)

// TestSequenceNumber tests counting and the wrap-around to 1
func TestSequenceNumber(t *testing.T) {
	var sq SequenceNumber
	if sq.Value() != 0 {
		t.Fatalf("New sequence number should be 0, got %d", sq.Value())
	}

	sq.Increment()
	if sq.Value() != 1 {
		t.Errorf("Expected 1 after first increment, got %d", sq.Value())
	}

	sq = math.MaxUint32 - 1
	sq.Increment()
	if sq.Value() != math.MaxUint32 {
		t.Errorf("Expected %d, got %d", uint32(math.MaxUint32), sq.Value())
	}

	// wrap around must skip 0
	sq.Increment()
	if sq.Value() != 1 {
		t.Errorf("Expected wrap around to 1, got %d", sq.Value())
	}
}

// TestSequenceNumberMonotonic verifies the counter never decreases except for the wrap
func TestSequenceNumberMonotonic(t *testing.T) {
	sq := SequenceNumber(math.MaxUint32 - 100)
	prev := sq.Value()
	for i := 0; i < 200; i++ {
		sq.Increment()
		cur := sq.Value()
		if cur == 0 {
			t.Fatalf("Sequence number must never return to 0")
		}
		if cur <= prev && !(prev == math.MaxUint32 && cur == 1) {
			t.Fatalf("Sequence number decreased from %d to %d", prev, cur)
		}
		prev = cur
	}
}
