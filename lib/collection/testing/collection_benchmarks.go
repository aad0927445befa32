package testing

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/dPort/lib/collection"
)

// numBenchPorts is the number of ports in the benchmarked collections.
const numBenchPorts = 32

// RunCollectionBenchmarks runs all benchmarks for a collection implementation
func RunCollectionBenchmarks(b *testing.B, name string, factory CollectionFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Find", func(b *testing.B) {
			benchmarkFind(b, factory)
		})

		b.Run("Get", func(b *testing.B) {
			benchmarkGet(b, factory)
		})

		b.Run("Set", func(b *testing.B) {
			benchmarkSet(b, factory)
		})

		b.Run("WriteGuard", func(b *testing.B) {
			benchmarkWriteGuard(b, factory)
		})

		b.Run("ConnectWith", func(b *testing.B) {
			benchmarkConnectWith(b, factory)
		})

		b.Run("MixedUsage", func(b *testing.B) {
			benchmarkMixedUsage(b, factory)
		})
	})
}

func benchEntries() ([]collection.Entry, []string) {
	entries := make([]collection.Entry, numBenchPorts)
	names := make([]string, numBenchPorts)
	for i := range entries {
		names[i] = fmt.Sprintf("port-%02d", i)
		entries[i] = collection.ReadWriteEntryWithValue(names[i], i)
	}
	return entries, names
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

func benchmarkFind(b *testing.B, factory CollectionFactory) {
	entries, names := benchEntries()
	c := factory(entries...)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			if _, ok := c.Find(names[counter%numBenchPorts]); !ok {
				b.Errorf("port %s not found", names[counter%numBenchPorts])
			}
			counter++
		}
	})
}

func benchmarkGet(b *testing.B, factory CollectionFactory) {
	entries, names := benchEntries()
	c := factory(entries...)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			_, _, _ = collection.Get[int](c, names[counter%numBenchPorts])
			counter++
		}
	})
}

func benchmarkSet(b *testing.B, factory CollectionFactory) {
	entries, names := benchEntries()
	c := factory(entries...)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			_ = collection.Set(c, names[counter%numBenchPorts], counter)
			counter++
		}
	})
}

func benchmarkWriteGuard(b *testing.B, factory CollectionFactory) {
	entries, names := benchEntries()
	c := factory(entries...)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			guard, err := collection.Write[int](c, names[counter%numBenchPorts])
			if err == nil {
				*guard.Mut() += 1
				guard.Release()
			}
			counter++
		}
	})
}

func benchmarkConnectWith(b *testing.B, factory CollectionFactory) {
	entries, names := benchEntries()
	producer := factory(entries...)
	consumerEntries, _ := benchEntries()
	consumer := factory(consumerEntries...)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			name := names[counter%numBenchPorts]
			_ = collection.ConnectWith(consumer, name, producer, name)
			counter++
		}
	})
}

// benchmarkMixedUsage runs 80% reads and 20% writes
func benchmarkMixedUsage(b *testing.B, factory CollectionFactory) {
	entries, names := benchEntries()
	c := factory(entries...)

	var ops atomic.Int64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			name := names[counter%numBenchPorts]
			if counter%5 == 0 {
				_ = collection.Set(c, name, counter)
			} else {
				_, _, _ = collection.Get[int](c, name)
			}
			ops.Add(1)
			counter++
		}
	})
	b.ReportMetric(float64(ops.Load())/b.Elapsed().Seconds(), "ops/s")
}
