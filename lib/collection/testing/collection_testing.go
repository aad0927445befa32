package testing

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/ValentinKolb/dPort/lib/collection"
	"github.com/ValentinKolb/dPort/lib/port"
)

// CollectionFactory creates a new collection holding the given entries.
type CollectionFactory func(entries ...collection.Entry) collection.IPortCollection

// DynamicCollectionFactory creates a new dynamic collection holding the given entries.
type DynamicCollectionFactory func(entries ...collection.Entry) collection.IDynamicPortCollection

// RunCollectionTests runs the conformance suite every IPortCollection has to pass.
func RunCollectionTests(t *testing.T, name string, factory CollectionFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Find", func(t *testing.T) {
			testFind(t, factory)
		})

		t.Run("FindMut", func(t *testing.T) {
			testFindMut(t, factory)
		})

		t.Run("Contains", func(t *testing.T) {
			testContains(t, factory)
		})

		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory)
		})

		t.Run("PortTypes", func(t *testing.T) {
			testPortTypes(t, factory)
		})

		t.Run("ReplaceTake", func(t *testing.T) {
			testReplaceTake(t, factory)
		})

		t.Run("Guards", func(t *testing.T) {
			testGuards(t, factory)
		})

		t.Run("Connect", func(t *testing.T) {
			testConnect(t, factory)
		})

		t.Run("GiveTo", func(t *testing.T) {
			testGiveTo(t, factory)
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testConcurrentAccess(t, factory)
		})
	})
}

// RunDynamicCollectionTests runs the suite for collections supporting insertion and removal.
// It includes RunCollectionTests.
func RunDynamicCollectionTests(t *testing.T, name string, factory DynamicCollectionFactory) {
	RunCollectionTests(t, name, func(entries ...collection.Entry) collection.IPortCollection {
		return factory(entries...)
	})

	t.Run(name+"(dynamic)", func(t *testing.T) {
		t.Run("Insert", func(t *testing.T) {
			testInsert(t, factory)
		})

		t.Run("RemoveVariant", func(t *testing.T) {
			testRemoveVariant(t, factory)
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory)
		})

		t.Run("FindMutAfterInsert", func(t *testing.T) {
			testFindMutAfterInsert(t, factory)
		})
	})
}

func defaultEntries() []collection.Entry {
	return []collection.Entry{
		collection.ReadOnlyEntryWithValue("in", 1),
		collection.WriteOnlyEntry[string]("out"),
		collection.ReadWriteEntryWithValue("inout", 1.5),
	}
}

func requireCode(t testing.TB, err error, target *port.Error, op string) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("%s: expected %s, got %v", op, target.Code, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testFind(t *testing.T, factory CollectionFactory) {
	c := factory(defaultEntries()...)

	if c.Len() != 3 {
		t.Errorf("Expected 3 ports, got %d", c.Len())
	}

	for _, name := range []string{"in", "out", "inout"} {
		if _, ok := c.Find(name); !ok {
			t.Errorf("Expected port %s to be found", name)
		}
		if !collection.ContainsName(c, name) {
			t.Errorf("ContainsName(%s) should be true", name)
		}
	}
	if _, ok := c.Find("missing"); ok {
		t.Errorf("Missing port should not be found")
	}

	names := c.Names()
	sort.Strings(names)
	if len(names) != 3 || names[0] != "in" || names[1] != "inout" || names[2] != "out" {
		t.Errorf("Unexpected names %v", names)
	}

	v, _ := c.Find("inout")
	if v.Kind() != port.KindReadWrite || !port.Holds[float64](v) {
		t.Errorf("Unexpected variant %s", v)
	}

	empty := factory()
	if empty.Len() != 0 || len(empty.Names()) != 0 {
		t.Errorf("Expected empty collection")
	}
}

func testFindMut(t *testing.T, factory CollectionFactory) {
	c := factory(defaultEntries()...)

	v, ok := c.FindMut("in")
	if !ok {
		t.Fatalf("Expected port in to be found")
	}
	*v = port.ReadOnlyVariantWithValue(99)

	value, _, err := collection.Get[int](c, "in")
	if err != nil || value != 99 {
		t.Errorf("Expected replaced port to hold 99, got %d (%v)", value, err)
	}

	if _, ok := c.FindMut("missing"); ok {
		t.Errorf("Missing port should not be found")
	}
}

func testContains(t *testing.T, factory CollectionFactory) {
	c := factory(defaultEntries()...)

	found, err := collection.Contains[int](c, "in")
	if err != nil || !found {
		t.Errorf("Contains[int](in): expected true, got %v (%v)", found, err)
	}

	found, err = collection.Contains[int](c, "missing")
	if err != nil || found {
		t.Errorf("Contains on missing port: expected false, got %v (%v)", found, err)
	}

	_, err = collection.Contains[string](c, "in")
	requireCode(t, err, port.ErrWrongDataType, "Contains[string](in)")
}

func testSetGet(t *testing.T, factory CollectionFactory) {
	c := factory(defaultEntries()...)

	value, ok, err := collection.Get[float64](c, "inout")
	if err != nil || !ok || value != 1.5 {
		t.Errorf("Expected 1.5, got %v ok=%v err=%v", value, ok, err)
	}

	if err := collection.Set(c, "inout", 2.5); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, _, _ = collection.Get[float64](c, "inout")
	if value != 2.5 {
		t.Errorf("Expected 2.5, got %v", value)
	}

	seq, err := collection.SequenceNumber(c, "inout")
	if err != nil || seq != 2 {
		t.Errorf("Expected sequence number 2, got %d (%v)", seq, err)
	}
	seq, err = collection.SequenceNumber(c, "out")
	if err != nil || seq != 0 {
		t.Errorf("Expected sequence number 0 for unset port, got %d (%v)", seq, err)
	}

	_, err = collection.SequenceNumber(c, "missing")
	requireCode(t, err, port.ErrNotFound, "SequenceNumber(missing)")
	_, _, err = collection.Get[int](c, "missing")
	requireCode(t, err, port.ErrNotFound, "Get(missing)")
	requireCode(t, collection.Set(c, "missing", 1), port.ErrNotFound, "Set(missing)")

	_, _, err = collection.Get[int](c, "inout")
	requireCode(t, err, port.ErrWrongDataType, "Get[int](inout)")
	requireCode(t, collection.Set(c, "inout", "text"), port.ErrWrongDataType, "Set[string](inout)")

	// errors carry the port name
	var perr *port.Error
	if !errors.As(err, &perr) || perr.Name != "inout" {
		t.Errorf("Expected error for port inout, got %v", err)
	}
}

func testPortTypes(t *testing.T, factory CollectionFactory) {
	c := factory(defaultEntries()...)

	_, _, err := collection.Get[string](c, "out")
	requireCode(t, err, port.ErrWrongPortType, "Get(out)")
	_, err = collection.Read[string](c, "out")
	requireCode(t, err, port.ErrWrongPortType, "Read(out)")

	requireCode(t, collection.Set(c, "in", 2), port.ErrWrongPortType, "Set(in)")
	_, err = collection.Write[int](c, "in")
	requireCode(t, err, port.ErrWrongPortType, "Write(in)")

	_, _, err = collection.Take[int](c, "in")
	requireCode(t, err, port.ErrWrongPortType, "Take(in)")
	_, _, err = collection.Replace(c, "out", "x")
	requireCode(t, err, port.ErrWrongPortType, "Replace(out)")

	if err := collection.Set(c, "out", "ok"); err != nil {
		t.Errorf("Set on write-only port failed: %v", err)
	}
}

func testReplaceTake(t *testing.T, factory CollectionFactory) {
	c := factory(defaultEntries()...)

	old, ok, err := collection.Replace(c, "inout", 3.0)
	if err != nil || !ok || old != 1.5 {
		t.Errorf("Replace: expected 1.5, got %v ok=%v err=%v", old, ok, err)
	}

	value, ok, err := collection.Take[float64](c, "inout")
	if err != nil || !ok || value != 3.0 {
		t.Errorf("Take: expected 3, got %v ok=%v err=%v", value, ok, err)
	}

	_, ok, err = collection.Get[float64](c, "inout")
	if err != nil || ok {
		t.Errorf("Port should be empty after Take, got ok=%v err=%v", ok, err)
	}

	_, err = collection.Read[float64](c, "inout")
	requireCode(t, err, port.ErrNoValueSet, "Read after Take")
}

func testGuards(t *testing.T, factory CollectionFactory) {
	c := factory(defaultEntries()...)

	writer, err := collection.Write[float64](c, "inout")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	*writer.Mut() += 1

	_, err = collection.TryRead[float64](c, "inout")
	requireCode(t, err, port.ErrIsLocked, "TryRead during write")
	_, err = collection.TryWrite[float64](c, "inout")
	requireCode(t, err, port.ErrIsLocked, "TryWrite during write")

	writer.Release()

	reader, err := collection.TryRead[float64](c, "inout")
	if err != nil {
		t.Fatalf("TryRead after release failed: %v", err)
	}
	if reader.Value() != 2.5 {
		t.Errorf("Expected 2.5, got %v", reader.Value())
	}
	if reader.SequenceNumber() != 2 {
		t.Errorf("Expected sequence number 2, got %d", reader.SequenceNumber())
	}
	reader.Release()

	guard, err := collection.Read[int](c, "in")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	guard.Release()

	_, err = collection.TryWrite[string](c, "out")
	requireCode(t, err, port.ErrNoValueSet, "TryWrite on unset port")
}

func testConnect(t *testing.T, factory CollectionFactory) {
	producer := factory(
		collection.WriteOnlyEntryWithValue("value", 10),
		collection.WriteOnlyEntry[string]("label"),
	)
	consumer := factory(
		collection.ReadOnlyEntry[int]("value"),
		collection.ReadOnlyEntry[int]("label"),
	)

	if err := collection.ConnectWith(consumer, "value", producer, "value"); err != nil {
		t.Fatalf("ConnectWith failed: %v", err)
	}
	if err := collection.Set(producer, "value", 20); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, _, err := collection.Get[int](consumer, "value")
	if err != nil || value != 20 {
		t.Errorf("Expected 20, got %d (%v)", value, err)
	}

	requireCode(t, collection.ConnectWith(consumer, "value", producer, "missing"), port.ErrOtherNotFound, "ConnectWith(other missing)")
	requireCode(t, collection.ConnectWith(consumer, "missing", producer, "value"), port.ErrNotFound, "ConnectWith(missing)")
	requireCode(t, collection.ConnectWith(consumer, "label", producer, "label"), port.ErrWrongDataType, "ConnectWith(type mismatch)")

	external := port.NewWriteOnlyPortWithValue(5)
	if err := collection.Connect(consumer, "label", external); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	value, _, _ = collection.Get[int](consumer, "label")
	if value != 5 {
		t.Errorf("Expected 5, got %d", value)
	}
	requireCode(t, collection.Connect(consumer, "missing", external), port.ErrNotFound, "Connect(missing)")
}

func testGiveTo(t *testing.T, factory CollectionFactory) {
	producer := factory(collection.ReadWriteEntryWithValue("data", []byte("abc")))
	consumer := factory(collection.ReadOnlyEntry[[]byte]("data"))

	if err := collection.GiveTo(producer, "data", consumer, "data"); err != nil {
		t.Fatalf("GiveTo failed: %v", err)
	}
	value, _, err := collection.Get[[]byte](consumer, "data")
	if err != nil || string(value) != "abc" {
		t.Errorf("Expected abc, got %s (%v)", value, err)
	}

	requireCode(t, collection.GiveTo(producer, "missing", consumer, "data"), port.ErrNotFound, "GiveTo(missing)")
	requireCode(t, collection.GiveTo(producer, "data", consumer, "missing"), port.ErrOtherNotFound, "GiveTo(other missing)")
}

func testConcurrentAccess(t *testing.T, factory CollectionFactory) {
	const numWorkers = 8
	const opsPerWorker = 200

	c := factory(collection.ReadWriteEntryWithValue("counter", 0))

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < opsPerWorker; i++ {
				guard, err := collection.Write[int](c, "counter")
				if err != nil {
					t.Errorf("Write failed: %v", err)
					return
				}
				*guard.Mut() += 1
				guard.Release()

				if _, _, err := collection.Get[int](c, "counter"); err != nil {
					t.Errorf("Get failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	value, _, _ := collection.Get[int](c, "counter")
	if value != numWorkers*opsPerWorker {
		t.Errorf("Expected %d, got %d", numWorkers*opsPerWorker, value)
	}
}

func testInsert(t *testing.T, factory DynamicCollectionFactory) {
	c := factory()

	if err := c.Insert("a", port.NewReadWriteVariant[int]()); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := c.Insert("b", port.ReadOnlyVariantWithValue("b")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 ports, got %d", c.Len())
	}

	err := c.Insert("a", port.NewReadOnlyVariant[string]())
	requireCode(t, err, port.ErrAlreadyInCollection, "Insert(duplicate)")

	// the original port survives the failed insert
	if found, err := collection.Contains[int](c, "a"); err != nil || !found {
		t.Errorf("Original port a should be unchanged, got %v (%v)", found, err)
	}
	if c.Len() != 2 {
		t.Errorf("Failed insert changed the length to %d", c.Len())
	}
}

func testRemoveVariant(t *testing.T, factory DynamicCollectionFactory) {
	c := factory(defaultEntries()...)

	v, err := c.RemoveVariant("out")
	if err != nil {
		t.Fatalf("RemoveVariant failed: %v", err)
	}
	if v.Kind() != port.KindWriteOnly {
		t.Errorf("Expected write-only port, got %s", v)
	}
	if collection.ContainsName(c, "out") {
		t.Errorf("Port out should be gone")
	}

	_, err = c.RemoveVariant("out")
	requireCode(t, err, port.ErrNotFound, "RemoveVariant(removed)")

	// the name can be reused
	if err := c.Insert("out", v); err != nil {
		t.Errorf("Reinsert failed: %v", err)
	}
}

func testRemove(t *testing.T, factory DynamicCollectionFactory) {
	c := factory(defaultEntries()...)

	_, _, err := collection.Remove[string](c, "inout")
	requireCode(t, err, port.ErrWrongDataType, "Remove[string](inout)")
	if !collection.ContainsName(c, "inout") {
		t.Fatalf("Failed removal must leave the port in place")
	}

	_, _, err = collection.Remove[int](c, "missing")
	requireCode(t, err, port.ErrNotFound, "Remove(missing)")

	value, ok, err := collection.Remove[float64](c, "inout")
	if err != nil || !ok || value != 1.5 {
		t.Errorf("Remove: expected 1.5, got %v ok=%v err=%v", value, ok, err)
	}
	if collection.ContainsName(c, "inout") || c.Len() != 2 {
		t.Errorf("Port inout should be removed")
	}

	_, ok, err = collection.Remove[string](c, "out")
	if err != nil || ok {
		t.Errorf("Remove of unset port: expected no value, got ok=%v err=%v", ok, err)
	}
}

func testFindMutAfterInsert(t *testing.T, factory DynamicCollectionFactory) {
	c := factory(collection.ReadWriteEntryWithValue("a", 1))

	v, ok := c.FindMut("a")
	if !ok {
		t.Fatalf("Expected port a to be found")
	}

	// grow the collection well beyond its initial capacity
	for i := 0; i < 64; i++ {
		if err := c.Insert(fmt.Sprintf("grow-%02d", i), port.NewReadOnlyVariant[int]()); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	*v = port.ReadWriteVariantWithValue(99)

	value, _, err := collection.Get[int](c, "a")
	if err != nil || value != 99 {
		t.Errorf("Write through FindMut pointer was lost: got %d (%v)", value, err)
	}
}
