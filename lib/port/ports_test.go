package port

import (
	"errors"
	"sync"
	"testing"
)

// TestSetTakeGet tests the set, take, get round trip on a read-write port
func TestSetTakeGet(t *testing.T) {
	p := NewReadWritePort[string]()

	if _, ok, err := Get[string](p); err != nil || ok {
		t.Fatalf("Expected empty port, got ok=%v err=%v", ok, err)
	}
	if p.SequenceNumber() != 0 {
		t.Errorf("Expected version 0, got %d", p.SequenceNumber())
	}

	if err := Set(p, "hello"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, ok, err := Take[string](p)
	if err != nil || !ok || value != "hello" {
		t.Fatalf("Take: expected hello, got %q ok=%v err=%v", value, ok, err)
	}
	if _, ok, _ := Get[string](p); ok {
		t.Error("Port should be empty after Take")
	}
	if p.SequenceNumber() != 2 {
		t.Errorf("Expected version 2, got %d", p.SequenceNumber())
	}

	// taking from an empty port still counts as a change
	if _, ok, _ := Take[string](p); ok {
		t.Error("Take on empty port should return no value")
	}
	if p.SequenceNumber() != 3 {
		t.Errorf("Expected version 3, got %d", p.SequenceNumber())
	}

	old, ok, err := Replace(p, "world")
	if err != nil || ok {
		t.Errorf("Replace on empty port: got %q ok=%v err=%v", old, ok, err)
	}
	old, ok, err = Replace(p, "again")
	if err != nil || !ok || old != "world" {
		t.Errorf("Replace: expected world, got %q ok=%v err=%v", old, ok, err)
	}
}

// TestWrongDataType tests typed access with the wrong type
func TestWrongDataType(t *testing.T) {
	p := NewReadWritePortWithValue(1)

	if _, _, err := Get[string](p); !errors.Is(err, ErrWrongDataType) {
		t.Errorf("Get: expected ErrWrongDataType, got %v", err)
	}
	if err := Set(p, "one"); !errors.Is(err, ErrWrongDataType) {
		t.Errorf("Set: expected ErrWrongDataType, got %v", err)
	}
	if _, _, err := Replace(p, int64(1)); !errors.Is(err, ErrWrongDataType) {
		t.Errorf("Replace: expected ErrWrongDataType, got %v", err)
	}
	if _, _, err := Take[uint](p); !errors.Is(err, ErrWrongDataType) {
		t.Errorf("Take: expected ErrWrongDataType, got %v", err)
	}
	if value, _, _ := Get[int](p); value != 1 {
		t.Errorf("Value must be unchanged, got %d", value)
	}
	if !Holds[int](p) || Holds[string](p) {
		t.Error("Holds reports the wrong type")
	}
}

// TestBindSharesStorage tests that bound ports see each other's writes
func TestBindSharesStorage(t *testing.T) {
	out := NewWriteOnlyPort[int]()
	in := NewReadOnlyPort[int]()

	if err := in.BindTo(out); err != nil {
		t.Fatalf("BindTo failed: %v", err)
	}
	if !SameStorage(in, out) {
		t.Fatal("Ports should share storage after binding")
	}

	if _, err := Read[int](in); !errors.Is(err, ErrNoValueSet) {
		t.Errorf("Read before Set: expected ErrNoValueSet, got %v", err)
	}

	if err := Set(out, 42); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, ok, err := Get[int](in)
	if err != nil || !ok || value != 42 {
		t.Errorf("Expected 42, got %d ok=%v err=%v", value, ok, err)
	}
	if in.SequenceNumber() != 1 {
		t.Errorf("Expected version 1, got %d", in.SequenceNumber())
	}
}

// TestBindTypeMismatch tests that binding across value types fails without side effects
func TestBindTypeMismatch(t *testing.T) {
	in := NewReadOnlyPortWithValue(1)
	out := NewWriteOnlyPortWithValue("x")

	if err := in.BindTo(out); !errors.Is(err, ErrWrongDataType) {
		t.Fatalf("Expected ErrWrongDataType, got %v", err)
	}
	if SameStorage(in, out) {
		t.Error("Failed bind must not share storage")
	}
	if value, _, _ := Get[int](in); value != 1 {
		t.Errorf("Failed bind changed the value to %d", value)
	}

	var empty Variant
	if err := in.BindTo(empty); !errors.Is(err, ErrWrongPortType) {
		t.Errorf("Bind to zero variant: expected ErrWrongPortType, got %v", err)
	}
}

// TestBindChain tests that binding propagates through intermediate ports
func TestBindChain(t *testing.T) {
	a := NewWriteOnlyPortWithValue(10)
	b := NewReadWritePort[int]()
	c := NewReadOnlyPort[int]()

	if err := b.BindTo(a); err != nil {
		t.Fatalf("b.BindTo(a) failed: %v", err)
	}
	if err := c.BindTo(b); err != nil {
		t.Fatalf("c.BindTo(b) failed: %v", err)
	}

	if value, _, _ := Get[int](c); value != 10 {
		t.Errorf("Expected 10, got %d", value)
	}
	if err := Set(a, 20); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if value, _, _ := Get[int](c); value != 20 {
		t.Errorf("Expected 20, got %d", value)
	}
	if value, _, _ := Get[int](b); value != 20 {
		t.Errorf("Expected 20 on b, got %d", value)
	}
}

// TestRebind tests that an already bound port can be bound again
func TestRebind(t *testing.T) {
	first := NewWriteOnlyPortWithValue(1)
	second := NewWriteOnlyPortWithValue(2)
	in := NewReadOnlyPort[int]()

	if err := in.BindTo(first); err != nil {
		t.Fatalf("BindTo failed: %v", err)
	}
	guard, err := Read[int](in)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if err := in.BindTo(second); err != nil {
		t.Fatalf("Rebind failed: %v", err)
	}
	// the held guard keeps referring to the old storage
	if guard.Value() != 1 {
		t.Errorf("Held guard should still see 1, got %d", guard.Value())
	}
	guard.Release()

	if value, _, _ := Get[int](in); value != 2 {
		t.Errorf("Expected 2 after rebind, got %d", value)
	}
}

// TestClone tests that clones share storage
func TestClone(t *testing.T) {
	p := NewReadWritePortWithValue(3)
	c := p.Clone()

	if err := Set(c, 4); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if value, _, _ := Get[int](p); value != 4 {
		t.Errorf("Expected 4, got %d", value)
	}
	if p.SequenceNumber() != c.SequenceNumber() {
		t.Error("Clones must report the same version")
	}
}

// TestConcurrentBind verifies that rebinding during access does not race
func TestConcurrentBind(t *testing.T) {
	sources := []*WriteOnlyPort{
		NewWriteOnlyPortWithValue(1),
		NewWriteOnlyPortWithValue(2),
	}
	in := NewReadOnlyPort[int]()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if err := in.BindTo(sources[i%2]); err != nil {
				t.Errorf("BindTo failed: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if _, _, err := Get[int](in); err != nil {
				t.Errorf("Get failed: %v", err)
				return
			}
		}
	}()
	wg.Wait()
}
