// Command bucketbench runs a YAML-described concurrency workload against
// one of pkg/bucket's containers and writes a JSON throughput/latency
// report.
//
// Usage:
//
//	bucketbench --scenario scenario.yaml --out report.json
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/natefinch/atomic"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	scenarioPath := flag.StringP("scenario", "s", "scenario.yaml", "path to the YAML scenario file")
	outPath := flag.StringP("out", "o", "bucketbench-report.json", "path to write the JSON report to")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: bucketbench --scenario scenario.yaml --out report.json\n\n")
		fmt.Fprint(os.Stderr, "Run 'bucketseed' first to generate a starting scenario file.\n\n")
		fmt.Fprint(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	scenario, err := LoadScenario(*scenarioPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "running %s: %d goroutines x %d ops against a %s (capacity %d)\n",
		*scenarioPath, scenario.Goroutines, scenario.OpsPerGoroutine, scenario.Container, scenario.Capacity)

	report := Run(scenario)

	fmt.Fprintf(os.Stderr, "done: %d ops in %s (%.0f ops/sec)\n", report.TotalOps, report.Duration, report.OpsPerSecond)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	// Atomic rename-into-place: a benchmark killed mid-write must never
	// leave a half-written report file behind for a later tool to read.
	if err := atomic.WriteFile(*outPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing report %s: %w", *outPath, err)
	}

	fmt.Fprintf(os.Stderr, "wrote %s\n", *outPath)

	return nil
}
