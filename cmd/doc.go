// Package cmd implements the command-line interface of dPort. It is mostly
// a playground for the port library: it runs example scenarios and measures
// the throughput of port operations.
//
// The package is organized into several subpackages:
//
//   - demo: Runs example scenarios of binding and accessing ports
//   - perf: Parallel benchmarks of port operations with latency percentiles
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Flags can also be given as environment variables with the DPORT_ prefix
// (e.g. DPORT_LOG_LEVEL=debug), also read from .env and .env.local.
//
// See dport -help for a list of all commands.
package cmd
