package perf

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ValentinKolb/dPort/cmd/util"
	"github.com/ValentinKolb/dPort/lib/collection"
	"github.com/ValentinKolb/dPort/lib/port"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
)

var (
	plog = logger.GetLogger("cmd")

	perfConfig *util.PerfConfig

	// PerfCmd benchmarks port operations under parallel load
	PerfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for ports",
		Long:    "Runs parallel benchmarks of the port operations and reports throughput and latency percentiles.",
		PreRunE: processPerfConfig,
		RunE:    run,
	}
)

func init() {
	key := "skip"
	PerfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. bind,mixed)"))
	key = "threads"
	PerfCmd.Flags().Int(key, 10, util.WrapString("Parallelism multiplier of the benchmarks (goroutines per CPU)"))
	key = "ports"
	PerfCmd.Flags().Int(key, 64, util.WrapString("How many different ports the benchmarks spread over"))
	key = "samples"
	PerfCmd.Flags().Int(key, 1028, util.WrapString("Reservoir size of the latency histograms"))
	key = "csv"
	PerfCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	if err := util.InitLogging(); err != nil {
		return err
	}
	perfConfig = util.GetPerfConfig()
	return nil
}

// result is the outcome of a single benchmark
type result struct {
	name  string
	bench testing.BenchmarkResult
	p50   float64 // ns
	p99   float64 // ns
}

func (r result) skipped() bool {
	return r.bench.N == 0
}

func run(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for ports")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(perfConfig.String())
	fmt.Println("starting tests...")

	results := RunBenchmarks(perfConfig)
	for _, r := range results {
		printResult(r)
	}

	if perfConfig.CSVPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", perfConfig.CSVPath)
		if err := writeResultsToCSV(perfConfig.CSVPath, results, perfConfig); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}
	return nil
}

// --------------------------------------------------------------------------
// Benchmarks
// --------------------------------------------------------------------------

// benchmark describes one parallel workload.
// setup prepares the ports and returns the operation to measure plus a cleanup function.
type benchmark struct {
	name  string
	setup func(c *collection.Map, names []string) (op func(i int), cleanup func())
}

var benchmarks = []benchmark{
	{"get", func(c *collection.Map, names []string) (func(int), func()) {
		return func(i int) {
			if _, _, err := collection.Get[int](c, names[i%len(names)]); err != nil {
				plog.Warningf("(get) - %v", err)
			}
		}, nil
	}},
	{"set", func(c *collection.Map, names []string) (func(int), func()) {
		return func(i int) {
			if err := collection.Set(c, names[i%len(names)], i); err != nil {
				plog.Warningf("(set) - %v", err)
			}
		}, nil
	}},
	{"read-guard", func(c *collection.Map, names []string) (func(int), func()) {
		return func(i int) {
			guard, err := collection.Read[int](c, names[i%len(names)])
			if err != nil {
				plog.Warningf("(read-guard) - %v", err)
				return
			}
			_ = guard.Value()
			guard.Release()
		}, nil
	}},
	{"write-guard", func(c *collection.Map, names []string) (func(int), func()) {
		return func(i int) {
			guard, err := collection.Write[int](c, names[i%len(names)])
			if err != nil {
				plog.Warningf("(write-guard) - %v", err)
				return
			}
			*guard.Mut() += 1
			guard.Release()
		}, nil
	}},
	{"try-read", setupTryRead},
	{"bind", func(c *collection.Map, names []string) (func(int), func()) {
		sources := make([]*port.WriteOnlyPort, len(names))
		for i := range sources {
			sources[i] = port.NewWriteOnlyPortWithValue(i)
		}
		return func(i int) {
			if err := collection.Connect(c, names[i%len(names)], sources[i%len(sources)]); err != nil {
				plog.Warningf("(bind) - %v", err)
			}
		}, nil
	}},
	{"mixed", func(c *collection.Map, names []string) (func(int), func()) {
		return func(i int) {
			name := names[i%len(names)]
			var err error
			switch i % 4 {
			case 0: // set
				err = collection.Set(c, name, i)
			case 1: // get
				_, _, err = collection.Get[int](c, name)
			case 2: // write guard
				var guard *port.WriteGuard[int]
				if guard, err = collection.Write[int](c, name); err == nil {
					*guard.Mut() += 1
					guard.Release()
				}
			case 3: // replace
				_, _, err = collection.Replace(c, name, i)
			}
			if err != nil {
				plog.Warningf("(mixed) - operation %d: %v", i%4, err)
			}
		}, nil
	}},
}

// setupTryRead starts a writer that keeps the first port locked most of the time
// and measures TryRead on it. Failed attempts are counted, not logged.
func setupTryRead(c *collection.Map, names []string) (func(int), func()) {
	var (
		stop   = make(chan struct{})
		wg     sync.WaitGroup
		locked atomic.Int64
		total  atomic.Int64
	)
	name := names[0]

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			guard, err := collection.Write[int](c, name)
			if err != nil {
				plog.Warningf("(try-read) - writer: %v", err)
				return
			}
			time.Sleep(10 * time.Microsecond)
			guard.Release()
		}
	}()

	op := func(int) {
		total.Add(1)
		guard, err := collection.TryRead[int](c, name)
		if errors.Is(err, port.ErrIsLocked) {
			locked.Add(1)
			return
		}
		if err != nil {
			plog.Warningf("(try-read) - %v", err)
			return
		}
		guard.Release()
	}
	cleanup := func() {
		close(stop)
		wg.Wait()
		if n := total.Load(); n > 0 {
			plog.Infof("(try-read) - %d of %d attempts found the port locked", locked.Load(), n)
		}
	}
	return op, cleanup
}

// newPorts creates a map of pre-filled read-write ports
func newPorts(n int) (*collection.Map, []string) {
	c := collection.NewMap()
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("port-%d", i)
		if err := c.Insert(names[i], port.ReadWriteVariantWithValue(i)); err != nil {
			plog.Panicf("duplicate port name %s", names[i])
		}
	}
	return c, names
}

// RunBenchmarks runs all benchmarks not skipped by conf
func RunBenchmarks(conf *util.PerfConfig) []result {
	results := make([]result, 0, len(benchmarks))

	for _, bm := range benchmarks {
		if conf.ShouldSkip(bm.name) {
			results = append(results, result{name: bm.name})
			continue
		}

		timer := gometrics.NewCustomTimer(
			gometrics.NewHistogram(gometrics.NewUniformSample(conf.Samples)),
			gometrics.NewMeter(),
		)

		bench := testing.Benchmark(func(b *testing.B) {
			c, names := newPorts(conf.Ports)
			op, cleanup := bm.setup(c, names)
			if cleanup != nil {
				b.Cleanup(cleanup)
			}

			b.SetParallelism(conf.Threads)
			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				counter := 0
				for pb.Next() {
					start := time.Now()
					op(counter)
					timer.UpdateSince(start)
					counter++
				}
			})
		})
		timer.Stop()

		ps := timer.Percentiles([]float64{0.5, 0.99})
		results = append(results, result{name: bm.name, bench: bench, p50: ps[0], p99: ps[1]})
	}

	return results
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// printResult prints the result of a benchmark test in a formatted way
func printResult(r result) {
	if r.skipped() {
		fmt.Printf("%-14sskipped\n", r.name)
		return
	}

	nsPerOp := math.Max(float64(r.bench.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	fmt.Printf("%-14s%.0fns/op\t%.0f ops/sec\tp50 %s\tp99 %s\n",
		r.name, nsPerOp, opsPerSec, time.Duration(r.p50), time.Duration(r.p99))
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results []result, conf *util.PerfConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"Test", "NsPerOp", "OpsPerSec", "P50Ns", "P99Ns", "Skipped",
		"Threads", "Ports", "Samples",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for _, r := range results {
		var nsPerOp, opsPerSec float64
		if !r.skipped() {
			nsPerOp = math.Max(float64(r.bench.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			r.name,
			fmt.Sprintf("%.0f", nsPerOp),
			fmt.Sprintf("%.0f", opsPerSec),
			fmt.Sprintf("%.0f", r.p50),
			fmt.Sprintf("%.0f", r.p99),
			strconv.FormatBool(r.skipped()),
			strconv.Itoa(conf.Threads),
			strconv.Itoa(conf.Ports),
			strconv.Itoa(conf.Samples),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", r.name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
