package port

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// TestReadGuard tests read access and release of a read guard
func TestReadGuard(t *testing.T) {
	p := NewReadOnlyPortWithValue(42)

	guard, err := Read[int](p)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if guard.Value() != 42 {
		t.Errorf("Expected 42, got %d", guard.Value())
	}

	// a second reader is allowed
	other, err := TryRead[int](p)
	if err != nil {
		t.Fatalf("Second TryRead should succeed, got %v", err)
	}
	other.Release()

	guard.Release()
	guard.Release() // no effect

	if p.SequenceNumber() != 1 {
		t.Errorf("Reading must not change the version, got %d", p.SequenceNumber())
	}
}

// TestGuardErrors tests the error conditions of guard construction
func TestGuardErrors(t *testing.T) {
	empty := NewReadWritePort[int]()

	if _, err := Read[int](empty); !errors.Is(err, ErrNoValueSet) {
		t.Errorf("Read on empty port: expected ErrNoValueSet, got %v", err)
	}
	if _, err := TryRead[int](empty); !errors.Is(err, ErrNoValueSet) {
		t.Errorf("TryRead on empty port: expected ErrNoValueSet, got %v", err)
	}
	if _, err := Write[int](empty); !errors.Is(err, ErrNoValueSet) {
		t.Errorf("Write on empty port: expected ErrNoValueSet, got %v", err)
	}
	if _, err := TryWrite[int](empty); !errors.Is(err, ErrNoValueSet) {
		t.Errorf("TryWrite on empty port: expected ErrNoValueSet, got %v", err)
	}
	if _, err := Read[string](empty); !errors.Is(err, ErrWrongDataType) {
		t.Errorf("Read with wrong type: expected ErrWrongDataType, got %v", err)
	}
	if _, err := Write[string](empty); !errors.Is(err, ErrWrongDataType) {
		t.Errorf("Write with wrong type: expected ErrWrongDataType, got %v", err)
	}

	// failed acquisitions must not leave the lock held
	if err := Set(empty, 1); err != nil {
		t.Fatalf("Set after failed guards failed: %v", err)
	}
	guard, err := TryWrite[int](empty)
	if err != nil {
		t.Fatalf("TryWrite should succeed now, got %v", err)
	}
	guard.Release()
}

// TestWriteGuardVersioning tests that a write guard bumps the version exactly once
func TestWriteGuardVersioning(t *testing.T) {
	p := NewReadWritePortWithValue([]int{1})

	// no mutable access, no increment
	guard, err := Write[[]int](p)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	_ = guard.Value()
	if guard.Modified() {
		t.Error("Guard should not be modified after Value")
	}
	guard.Release()
	if p.SequenceNumber() != 1 {
		t.Errorf("Unmodified guard changed version to %d", p.SequenceNumber())
	}

	// several mutable accesses, one increment
	guard, err = Write[[]int](p)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	*guard.Mut() = append(*guard.Mut(), 2)
	*guard.Mut() = append(*guard.Mut(), 3)
	guard.Set(append(guard.Value(), 4))
	if guard.SequenceNumber() != 1 {
		t.Errorf("Version must not change before release, got %d", guard.SequenceNumber())
	}
	guard.Release()
	guard.Release()

	if p.SequenceNumber() != 2 {
		t.Errorf("Expected version 2, got %d", p.SequenceNumber())
	}
	value, _, _ := Get[[]int](p)
	if len(value) != 4 || value[3] != 4 {
		t.Errorf("Expected [1 2 3 4], got %v", value)
	}
}

// TestGuardUseAfterRelease verifies that released guards panic on access
func TestGuardUseAfterRelease(t *testing.T) {
	p := NewReadWritePortWithValue(1)

	guard, err := Write[int](p)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	guard.Release()

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when using a released guard")
		}
	}()
	_ = guard.Mut()
}

// TestTryLockContention tests IsLocked while a conflicting guard is held
func TestTryLockContention(t *testing.T) {
	p := NewReadWritePortWithValue(7)

	writer, err := Write[int](p)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := TryRead[int](p); !errors.Is(err, ErrIsLocked) {
		t.Errorf("TryRead during write: expected ErrIsLocked, got %v", err)
	}
	if _, err := TryWrite[int](p); !errors.Is(err, ErrIsLocked) {
		t.Errorf("TryWrite during write: expected ErrIsLocked, got %v", err)
	}
	writer.Release()

	reader, err := TryRead[int](p)
	if err != nil {
		t.Fatalf("TryRead after release should succeed, got %v", err)
	}
	if _, err := TryWrite[int](p); !errors.Is(err, ErrIsLocked) {
		t.Errorf("TryWrite during read: expected ErrIsLocked, got %v", err)
	}
	reader.Release()

	writer, err = TryWrite[int](p)
	if err != nil {
		t.Fatalf("TryWrite after release should succeed, got %v", err)
	}
	writer.Release()
}

// TestBlockingReadWaitsForWriter verifies that Read suspends until the writer releases
func TestBlockingReadWaitsForWriter(t *testing.T) {
	p := NewReadWritePortWithValue(1)

	writer, err := Write[int](p)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	writer.Set(2)

	result := make(chan int, 1)
	go func() {
		reader, err := Read[int](p)
		if err != nil {
			t.Errorf("Read failed: %v", err)
			result <- -1
			return
		}
		defer reader.Release()
		result <- reader.Value()
	}()

	select {
	case v := <-result:
		t.Fatalf("Read returned %d while the write guard was held", v)
	case <-time.After(50 * time.Millisecond):
		// Expected, reader is blocked
	}

	writer.Release()

	select {
	case v := <-result:
		if v != 2 {
			t.Errorf("Expected reader to see 2, got %d", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for blocked reader")
	}
}

// TestConcurrentWriters verifies that guarded increments are not lost
func TestConcurrentWriters(t *testing.T) {
	const numWriters = 10
	const incrementsPerWriter = 500

	p := NewReadWritePortWithValue(0)

	var wg sync.WaitGroup
	wg.Add(numWriters)
	for w := 0; w < numWriters; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < incrementsPerWriter; i++ {
				if err := Update(p, func(v *int) error {
					*v++
					return nil
				}); err != nil {
					t.Errorf("Update failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	value, _, _ := Get[int](p)
	if value != numWriters*incrementsPerWriter {
		t.Errorf("Expected %d, got %d", numWriters*incrementsPerWriter, value)
	}
	// one bump for the initial value plus one per guard session
	if want := uint32(1 + numWriters*incrementsPerWriter); p.SequenceNumber() != want {
		t.Errorf("Expected version %d, got %d", want, p.SequenceNumber())
	}
}

// TestGuardValueClones verifies that guard values of Cloner types do not alias the port
func TestGuardValueClones(t *testing.T) {
	p := NewReadWritePortWithValue(sample{values: []int{1, 2}})

	reader, err := Read[sample](p)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	leaked := reader.Value()
	reader.Release()
	leaked.values[0] = 99

	writer, err := Write[sample](p)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	copied := writer.Value()
	copied.values[1] = 99
	if writer.Modified() {
		t.Errorf("Value must not mark the guard as modified")
	}
	writer.Release()

	value, _, _ := Get[sample](p)
	if value.values[0] != 1 || value.values[1] != 2 {
		t.Errorf("Stored value changed through a guard copy: %v", value.values)
	}
	if p.SequenceNumber() != 1 {
		t.Errorf("Expected version 1, got %d", p.SequenceNumber())
	}
}
