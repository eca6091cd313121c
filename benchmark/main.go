// Package main provides a performance benchmarking tool for the fastball CLI.
// It measures how long 'fastball speeds' takes over several date ranges and
// cache backends, treating the first successful cached run as cold and
// averaging the rest as warm, and writes the timings to CSV.
//
// Prerequisites:
// - fastball binary installed and available in PATH
// - network access to the Stats API
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory used for the file cache and SQLite databases
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Backend     string
	Range       string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// DateRange is one --start/--end pair to benchmark.
type DateRange struct {
	Name  string
	Start string
	End   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Backends    []string
	Ranges      []DateRange
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     10 * time.Minute,
		NoCacheRuns: 2,
		CacheRuns:   4,
		Backends:    []string{"file", "sqlite"},
		Ranges: []DateRange{
			{Name: "1 day", Start: "2024-04-01", End: "2024-04-01"},
			{Name: "1 week", Start: "2024-04-01", End: "2024-04-07"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the fastball binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("fastball"); err != nil {
		return fmt.Errorf("fastball binary not found in PATH")
	}
	if info, err := os.Stat(config.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work directory %s not found", config.WorkDir)
	}
	return nil
}

// runBenchmarks executes every backend and range combination
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d backends, %d ranges, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Backends), len(config.Ranges), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, backend := range config.Backends {
		for _, r := range config.Ranges {
			results = append(results, runBenchmarkSuite(config, backend, r))
		}
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for one backend and range
func runBenchmarkSuite(config BenchmarkConfig, backend string, r DateRange) BenchmarkResult {
	fmt.Printf("Running speeds over %s with %s cache\n", r.Name, backend)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, r, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: every run downloads every feed
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: first run fills the cache, the rest read from it
	clearCache(config, backend)
	coldTime, warmAvg := runPhase(backend, config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Backend:     backend,
		Range:       r.Name,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// clearCache empties the cache of a backend before its cold run
func clearCache(config BenchmarkConfig, backend string) {
	cmd := exec.Command("fastball", "cache", "clear", "--cache-backend", backend)
	cmd.Dir = config.WorkDir
	if output, err := cmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	}
}

// runBenchmark executes fastball speeds multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, r DateRange, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{"speeds", "--start", r.Start, "--end", r.End, "--cache-backend", cacheBackend, "--limit", "5"}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()

		cmd := exec.CommandContext(ctx, "fastball", args...)
		cmd.Dir = config.WorkDir
		output, err := cmd.CombinedOutput()
		if err == nil && isSuccess(output) {
			times = append(times, time.Since(start).Seconds())
		}
		cancel()
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Aggregation completed in") &&
		strings.Contains(outputStr, "Cache backend")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/fastball_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"backend", "range", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Backend, result.Range, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Backend, result.Range, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
