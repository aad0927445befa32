package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// PerfConfig holds the settings of the perf command
type PerfConfig struct {
	Threads  int      // Parallelism of the benchmarks
	Ports    int      // Number of ports the benchmarks spread over
	Samples  int      // Reservoir size of the latency histograms
	Skip     []string // Benchmarks not to run
	CSVPath  string   // Optional CSV export path
	LogLevel string
}

// GetPerfConfig reads the perf configuration from viper
func GetPerfConfig() *PerfConfig {
	conf := &PerfConfig{
		Threads:  viper.GetInt("threads"),
		Ports:    viper.GetInt("ports"),
		Samples:  viper.GetInt("samples"),
		CSVPath:  viper.GetString("csv"),
		LogLevel: viper.GetString("log-level"),
	}
	for _, s := range strings.Split(viper.GetString("skip"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			conf.Skip = append(conf.Skip, s)
		}
	}
	if conf.Threads < 1 {
		conf.Threads = 1
	}
	if conf.Ports < 1 {
		conf.Ports = 1
	}
	if conf.Samples < 1 {
		conf.Samples = 1028
	}
	return conf
}

// ShouldSkip reports whether the named benchmark is in the skip list
func (c *PerfConfig) ShouldSkip(test string) bool {
	for _, skip := range c.Skip {
		if test == skip {
			return true
		}
	}
	return false
}

// String returns a formatted string representation of the configuration
func (c *PerfConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Benchmark")
	addField("Threads", strconv.Itoa(c.Threads))
	addField("Ports", strconv.Itoa(c.Ports))
	addField("Histogram Samples", strconv.Itoa(c.Samples))
	if len(c.Skip) > 0 {
		addField("Skipped", strings.Join(c.Skip, ", "))
	}

	addSection("Output")
	addField("Log Level", c.LogLevel)
	if c.CSVPath != "" {
		addField("CSV Export", c.CSVPath)
	}

	return sb.String()
}
