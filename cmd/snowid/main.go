// snowid CLI - Command-line tool for dual-source ID generation and inspection
//
// Usage:
//   snowid generate [flags]        Generate backend IDs
//   snowid frontend [flags]        Generate frontend (randomness-based) IDs
//   snowid parse <id>              Parse and inspect an ID
//   snowid encode <id> <format>    Convert ID to a different format
//   snowid validate <id>           Validate an ID
//   snowid bench                   Run performance benchmarks
//
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/keiralis/snowid"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "generate", "gen", "g":
		cmdGenerate(os.Args[2:])
	case "frontend", "front", "f":
		cmdFrontend(os.Args[2:])
	case "parse", "p":
		cmdParse(os.Args[2:])
	case "encode", "enc", "e":
		cmdEncode(os.Args[2:])
	case "validate", "val", "v":
		cmdValidate(os.Args[2:])
	case "bench", "benchmark", "b":
		cmdBench(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("snowid CLI version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `snowid CLI - Dual-source 64-bit unique ID generator

Usage:
  snowid <command> [flags]

Commands:
  generate, gen, g      Generate backend IDs (machine + sequence)
  frontend, front, f    Generate frontend IDs (randomness)
  parse, p              Parse and inspect an ID
  encode, enc, e        Convert ID between formats
  validate, val, v      Validate an ID structure
  bench, b              Run performance benchmarks
  version               Show version information
  help                  Show this help message

Examples:
  # Generate a single backend ID
  snowid generate --machine 42

  # Generate 10 IDs in Base62 format
  snowid generate --count 10 --format base62 --machine 42

  # Generate a frontend ID (no machine coordination needed)
  snowid frontend

  # Parse and inspect an ID
  snowid parse 11742307678315614209

  # Convert ID to different format
  snowid encode 11742307678315614209 base62

  # Run benchmarks
  snowid bench --duration 5s

For detailed help on a command:
  snowid <command> --help

`)
}

// ============================================================================
// Generate Command
// ============================================================================

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	count := fs.Int("count", 1, "Number of IDs to generate")
	machineID := fs.Int64("machine", 0, "Machine ID (0-1023)")
	format := fs.String("format", "decimal", "Output format: decimal, base32, base58, base62, hex")
	jsonOutput := fs.Bool("json", false, "Output as JSON")
	batch := fs.Bool("batch", false, "Use batch generation for better performance")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: snowid generate [flags]

Generate one or more backend IDs.

Flags:
  --count N          Number of IDs to generate (default: 1)
  --machine N        Machine ID 0-1023 (default: 0)
  --format FORMAT    Output format: decimal, base32, base58, base62, hex (default: decimal)
  --json             Output as JSON with full details
  --batch            Use batch generation (faster for large counts)

Examples:
  snowid generate --machine 42
  snowid generate --count 1000 --format base62 --machine 42
  snowid generate --json --machine 5
`)
	}

	fs.Parse(args)

	gen, err := snowid.New(*machineID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating generator: %v\n", err)
		os.Exit(1)
	}

	var ids []snowid.ID
	var genErr error
	startTime := time.Now()
	ctx := context.Background()

	if *batch && *count > 1 {
		ids, genErr = gen.GenerateBatch(ctx, *count)
		if genErr != nil {
			fmt.Fprintf(os.Stderr, "Error generating batch: %v\n", genErr)
			os.Exit(1)
		}
	} else {
		ids = make([]snowid.ID, *count)
		for i := 0; i < *count; i++ {
			ids[i], genErr = gen.Generate()
			if genErr != nil {
				fmt.Fprintf(os.Stderr, "Error generating ID: %v\n", genErr)
				os.Exit(1)
			}
		}
	}

	duration := time.Since(startTime)

	if *jsonOutput {
		outputJSON(ids, duration)
	} else {
		for _, id := range ids {
			fmt.Println(formatID(id, *format))
		}

		// Show performance stats for large batches
		if *count > 100 {
			rate := float64(*count) / duration.Seconds()
			fmt.Fprintf(os.Stderr, "\nGenerated %d IDs in %v (%.0f IDs/sec)\n",
				*count, duration, rate)
		}
	}
}

// ============================================================================
// Frontend Command
// ============================================================================

func cmdFrontend(args []string) {
	fs := flag.NewFlagSet("frontend", flag.ExitOnError)
	count := fs.Int("count", 1, "Number of IDs to generate")
	format := fs.String("format", "decimal", "Output format: decimal, base32, base58, base62, hex")
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: snowid frontend [flags]

Generate one or more frontend IDs from time plus cryptographic randomness.
No machine ID assignment is needed, at the cost of a small per-millisecond
collision probability.

Flags:
  --count N          Number of IDs to generate (default: 1)
  --format FORMAT    Output format: decimal, base32, base58, base62, hex (default: decimal)
  --json             Output as JSON with full details

Examples:
  snowid frontend
  snowid frontend --count 10 --format hex
`)
	}

	fs.Parse(args)

	ids := make([]snowid.ID, *count)
	startTime := time.Now()
	for i := 0; i < *count; i++ {
		id, err := snowid.GenerateFrontendID()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating ID: %v\n", err)
			os.Exit(1)
		}
		ids[i] = id
	}
	duration := time.Since(startTime)

	if *jsonOutput {
		outputJSON(ids, duration)
	} else {
		for _, id := range ids {
			fmt.Println(formatID(id, *format))
		}
	}
}

func formatID(id snowid.ID, format string) string {
	switch strings.ToLower(format) {
	case "base32", "b32":
		return id.Base32()
	case "base58", "b58":
		return id.Base58()
	case "base62", "b62":
		return id.Base62()
	case "hex", "x":
		return id.Hex()
	case "binary", "bin":
		return id.Base2()
	default:
		return id.String()
	}
}

func outputJSON(ids []snowid.ID, duration time.Duration) {
	type IDInfo struct {
		ID         string    `json:"id"`
		Base62     string    `json:"base62"`
		Hex        string    `json:"hex"`
		Timestamp  time.Time `json:"timestamp"`
		Source     string    `json:"source"`
		Machine    *int64    `json:"machine,omitempty"`
		Sequence   *int64    `json:"sequence,omitempty"`
		Randomness *uint32   `json:"randomness,omitempty"`
	}

	type Output struct {
		Count      int      `json:"count"`
		Duration   string   `json:"duration"`
		RatePerSec float64  `json:"rate_per_sec"`
		IDs        []IDInfo `json:"ids"`
	}

	infos := make([]IDInfo, len(ids))
	for i, id := range ids {
		c := snowid.Decode(id)
		info := IDInfo{
			ID:        id.String(),
			Base62:    id.Base62(),
			Hex:       id.Hex(),
			Timestamp: c.Time(),
			Source:    c.Source.String(),
		}
		if c.Source == snowid.SourceBackend {
			machine, seq := c.MachineID, c.Sequence
			info.Machine = &machine
			info.Sequence = &seq
		} else {
			randomness := c.Randomness
			info.Randomness = &randomness
		}
		infos[i] = info
	}

	rate := float64(len(ids)) / duration.Seconds()
	output := Output{
		Count:      len(ids),
		Duration:   duration.String(),
		RatePerSec: rate,
		IDs:        infos,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}

// ============================================================================
// Parse Command
// ============================================================================

func cmdParse(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: snowid parse <id>\n")
		fmt.Fprintf(os.Stderr, "\nParse and inspect an ID.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  snowid parse 11742307678315614209\n")
		fmt.Fprintf(os.Stderr, "  snowid parse 7n42dgm5tflk  # Base62 format\n")
		os.Exit(1)
	}

	id, err := parseIDFlexible(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Unable to parse ID '%s'\n", args[0])
		os.Exit(1)
	}

	c := snowid.Decode(id)

	fmt.Printf("snowid ID: %s\n", id)
	fmt.Printf("\n")
	fmt.Printf("Components:\n")
	fmt.Printf("  Timestamp:  %s (%d ms since epoch)\n", c.Time().Format(time.RFC3339), c.Timestamp)
	fmt.Printf("  Source:     %s\n", c.Source)
	if c.Source == snowid.SourceBackend {
		fmt.Printf("  Machine ID: %d\n", c.MachineID)
		fmt.Printf("  Sequence:   %d\n", c.Sequence)
	} else {
		fmt.Printf("  Randomness: %d (0x%06x)\n", c.Randomness, c.Randomness)
	}
	fmt.Printf("\n")
	fmt.Printf("Encodings:\n")
	fmt.Printf("  Decimal:    %s\n", id.String())
	fmt.Printf("  Base62:     %s\n", id.Base62())
	fmt.Printf("  Base58:     %s\n", id.Base58())
	fmt.Printf("  Base32:     %s\n", id.Base32())
	fmt.Printf("  Hex:        %s\n", id.Hex())
	fmt.Printf("\n")
	fmt.Printf("Age:          %v\n", id.Age().Round(time.Millisecond))
	fmt.Printf("Valid:        %v\n", id.IsValid())
}

// ============================================================================
// Encode Command
// ============================================================================

func cmdEncode(args []string) {
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: snowid encode <id> <format>\n")
		fmt.Fprintf(os.Stderr, "\nConvert an ID to a different encoding format.\n")
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		fmt.Fprintf(os.Stderr, "  decimal, dec       Decimal string\n")
		fmt.Fprintf(os.Stderr, "  base62, b62        URL-safe Base62\n")
		fmt.Fprintf(os.Stderr, "  base58, b58        Bitcoin-style Base58\n")
		fmt.Fprintf(os.Stderr, "  base32, b32        z-base-32\n")
		fmt.Fprintf(os.Stderr, "  hex, x             Hexadecimal\n")
		fmt.Fprintf(os.Stderr, "  binary, bin        Binary string\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  snowid encode 11742307678315614209 base62\n")
		fmt.Fprintf(os.Stderr, "  snowid encode 7n42dgm5tflk decimal\n")
		os.Exit(1)
	}

	id, err := parseIDFlexible(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Unable to parse ID '%s': %v\n", args[0], err)
		os.Exit(1)
	}

	fmt.Println(formatID(id, args[1]))
}

func parseIDFlexible(idStr string) (snowid.ID, error) {
	// Try decimal first
	id, err := snowid.ParseString(idStr)
	if err == nil {
		return id, nil
	}

	id, err = snowid.ParseBase62(idStr)
	if err == nil {
		return id, nil
	}

	id, err = snowid.ParseBase58(idStr)
	if err == nil {
		return id, nil
	}

	id, err = snowid.ParseHex(idStr)
	if err == nil {
		return id, nil
	}

	return snowid.ParseBase32(idStr)
}

// ============================================================================
// Validate Command
// ============================================================================

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: snowid validate <id>\n")
		fmt.Fprintf(os.Stderr, "\nValidate the structure of an ID.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  snowid validate 11742307678315614209\n")
		os.Exit(1)
	}

	id, err := parseIDFlexible(args[0])
	if err != nil {
		fmt.Printf("INVALID: Unable to parse ID '%s'\n", args[0])
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	c := snowid.Decode(id)

	if !id.IsValid() {
		fmt.Printf("INVALID: ID structure is invalid\n")
		fmt.Printf("\nComponents:\n")
		fmt.Printf("  Timestamp:  %d ms since Unix epoch\n", c.Timestamp)
		fmt.Printf("  Source:     %s\n", c.Source)

		if c.Timestamp > time.Now().UnixMilli() {
			fmt.Printf("\n  Error: Timestamp is in the future\n")
		}
		os.Exit(1)
	}

	fmt.Printf("VALID: ID structure is valid\n")
	fmt.Printf("\nComponents:\n")
	fmt.Printf("  Timestamp:  %s\n", c.Time().Format(time.RFC3339))
	fmt.Printf("  Source:     %s\n", c.Source)
	if c.Source == snowid.SourceBackend {
		fmt.Printf("  Machine ID: %d\n", c.MachineID)
		fmt.Printf("  Sequence:   %d\n", c.Sequence)
	} else {
		fmt.Printf("  Randomness: %d\n", c.Randomness)
	}
	fmt.Printf("  Age:        %v\n", id.Age().Round(time.Millisecond))
}

// ============================================================================
// Benchmark Command
// ============================================================================

func cmdBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	duration := fs.Duration("duration", 3*time.Second, "Benchmark duration")
	machineID := fs.Int64("machine", 0, "Machine ID (0-1023)")
	batchSize := fs.Int("batch", 100, "Batch size for batch generation test")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: snowid bench [flags]

Run performance benchmarks for ID generation.

Flags:
  --duration D      Benchmark duration (default: 3s)
  --machine N       Machine ID 0-1023 (default: 0)
  --batch N         Batch size for batch test (default: 100)

Examples:
  snowid bench --duration 5s
  snowid bench --machine 42 --duration 10s
`)
	}

	fs.Parse(args)

	gen, err := snowid.New(*machineID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating generator: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Running benchmarks (duration: %v, machine: %d)\n\n", *duration, *machineID)
	ctx := context.Background()

	// Benchmark 1: Single backend generation
	fmt.Printf("1. Backend ID Generation:\n")
	count := 0
	start := time.Now()
	deadline := start.Add(*duration)
	for time.Now().Before(deadline) {
		if _, err := gen.Generate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating ID: %v\n", err)
			break
		}
		count++
	}
	elapsed := time.Since(start)
	rate := float64(count) / elapsed.Seconds()
	nsPerOp := float64(elapsed.Nanoseconds()) / float64(count)

	fmt.Printf("   Generated:      %d IDs\n", count)
	fmt.Printf("   Duration:       %v\n", elapsed)
	fmt.Printf("   Rate:           %.0f IDs/sec (%.0f ns/op)\n", rate, nsPerOp)
	fmt.Printf("\n")

	// Benchmark 2: Batch generation
	fmt.Printf("2. Batch Generation (batch size: %d):\n", *batchSize)
	count = 0
	batchCount := 0
	start = time.Now()
	deadline = start.Add(*duration)
	for time.Now().Before(deadline) {
		ids, err := gen.GenerateBatch(ctx, *batchSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating batch: %v\n", err)
			break
		}
		count += len(ids)
		batchCount++
	}
	elapsed = time.Since(start)
	rate = float64(count) / elapsed.Seconds()
	nsPerOp = float64(elapsed.Nanoseconds()) / float64(count)

	fmt.Printf("   Generated:      %d IDs in %d batches\n", count, batchCount)
	fmt.Printf("   Duration:       %v\n", elapsed)
	fmt.Printf("   Rate:           %.0f IDs/sec (%.0f ns/op)\n", rate, nsPerOp)
	fmt.Printf("\n")

	// Benchmark 3: Frontend generation
	fmt.Printf("3. Frontend ID Generation:\n")
	count = 0
	start = time.Now()
	deadline = start.Add(*duration)
	for time.Now().Before(deadline) {
		if _, err := snowid.GenerateFrontendID(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating ID: %v\n", err)
			break
		}
		count++
	}
	elapsed = time.Since(start)
	rate = float64(count) / elapsed.Seconds()
	nsPerOp = float64(elapsed.Nanoseconds()) / float64(count)

	fmt.Printf("   Generated:      %d IDs\n", count)
	fmt.Printf("   Duration:       %v\n", elapsed)
	fmt.Printf("   Rate:           %.0f IDs/sec (%.0f ns/op)\n", rate, nsPerOp)
	fmt.Printf("\n")

	// Benchmark 4: Encoding performance
	fmt.Printf("4. Encoding Performance (1000 operations):\n")
	testID, err := gen.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating test ID: %v\n", err)
		os.Exit(1)
	}

	encodingTests := []struct {
		name string
		fn   func() string
	}{
		{"Decimal", func() string { return testID.String() }},
		{"Base62", func() string { return testID.Base62() }},
		{"Base58", func() string { return testID.Base58() }},
		{"Base32", func() string { return testID.Base32() }},
		{"Hex", func() string { return testID.Hex() }},
	}

	for _, test := range encodingTests {
		start := time.Now()
		for i := 0; i < 1000; i++ {
			_ = test.fn()
		}
		elapsed := time.Since(start)
		nsPerOp := float64(elapsed.Nanoseconds()) / 1000
		fmt.Printf("   %-8s %6.0f ns/op\n", test.name+":", nsPerOp)
	}

	fmt.Printf("\nBenchmark complete!\n")
}
