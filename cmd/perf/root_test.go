package perf

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/dPort/cmd/util"
)

// TestRunBenchmarks runs a reduced benchmark set and exports it
func TestRunBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping benchmarks in short mode")
	}

	conf := &util.PerfConfig{
		Threads: 1,
		Ports:   4,
		Samples: 64,
		Skip:    []string{"try-read", "mixed", "bind", "write-guard", "read-guard"},
	}

	results := RunBenchmarks(conf)
	if len(results) != len(benchmarks) {
		t.Fatalf("Expected %d results, got %d", len(benchmarks), len(results))
	}

	for _, r := range results {
		if conf.ShouldSkip(r.name) != r.skipped() {
			t.Errorf("Benchmark %s: skipped=%v", r.name, r.skipped())
		}
		if !r.skipped() && r.p99 < r.p50 {
			t.Errorf("Benchmark %s: p99 %f below p50 %f", r.name, r.p99, r.p50)
		}
	}

	path := filepath.Join(t.TempDir(), "results.csv")
	if err := writeResultsToCSV(path, results, conf); err != nil {
		t.Fatalf("writeResultsToCSV failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if len(rows) != len(results)+1 {
		t.Errorf("Expected %d rows, got %d", len(results)+1, len(rows))
	}
}
