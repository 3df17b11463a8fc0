// Package snowid generates and validates 64-bit unique, time-sortable
// identifiers with two distinct producers sharing one bit layout.
//
// # Overview
//
// snowid IDs are:
//   - Sortable by time (IDs generated later are numerically larger)
//   - Globally unique across machines (with proper machine ID assignment)
//   - Distinguishable by origin via a dedicated source flag bit
//
// # ID Structure (64 bits)
//
//	┌─────────────────────────────────────┬──────┬──────────────────────────┐
//	│   41 bits: Timestamp (milliseconds  │ 1bit │  22 bits:                │
//	│   since 2021-01-01T00:00:00Z)       │ flag │  machine(10) ‖ seq(12)   │
//	│                                     │      │  or randomness(22)       │
//	└─────────────────────────────────────┴──────┴──────────────────────────┘
//
// # Two Producers
//
// The Generator is the stateful backend producer: one instance per machine,
// sequence-aware, and strict about clock regression. The frontend producer
// (GenerateFrontendID, FrontendFactory) is stateless and combines the current
// time with cryptographically secure randomness, which makes it safe to run
// anywhere no sequence state can be kept.
//
// # Clock Handling
//
// The backend generator reads wall-clock milliseconds from its time source
// and refuses to produce an ID when the clock reads earlier than the last
// observed tick, returning ErrClockRegression. Producing one anyway could
// reissue a timestamp/sequence pair already emitted. When the sequence space
// for a millisecond is exhausted, the generator spins (yielding to the
// scheduler) until the time source reports the next millisecond.
//
// # Usage
//
//	// Simple usage with the default generator (machine ID 0)
//	id, err := snowid.Generate()
//
//	// Custom machine ID for multi-machine deployments
//	gen, err := snowid.New(42)
//	id, err := gen.Generate()
//
//	// Stateless frontend-style ID
//	id, err := snowid.GenerateFrontendID()
//
//	// Decode any 64-bit value
//	c := snowid.Decode(id)
//	fmt.Println(c.Source, c.Time())
package snowid

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds configuration options for the backend Generator.
//
// Only MachineID is required; zero values for the rest select sensible
// defaults via Validate().
type Config struct {
	// MachineID uniquely identifies this generator instance. It must be
	// unique among concurrently running backend generators and lie in
	// [0, 1023]. Assignment is externally coordinated (see
	// examples/distributed/redis for one approach).
	MachineID int64

	// TimeSource supplies the current time in milliseconds since the Unix
	// epoch. It is expected to be monotonic in the common case; the
	// generator fails explicitly when it regresses.
	// Default: time.Now().UnixMilli
	TimeSource func() int64

	// EnableMetrics determines whether to collect internal metrics.
	// Metrics use atomic operations and have negligible performance impact.
	// Default: true
	EnableMetrics bool
}

// DefaultConfig returns a Config with production-ready defaults for the
// given machine ID.
func DefaultConfig(machineID int64) Config {
	return Config{
		MachineID:     machineID,
		TimeSource:    nil, // wall clock
		EnableMetrics: true,
	}
}

// Validate checks the configuration and fills in defaults.
//
// Returns a ConfigError (unwrapping to ErrInvalidMachineID for the machine
// ID range check) with enough context to diagnose the failure.
func (c *Config) Validate() error {
	if c.MachineID < 0 || c.MachineID > MaxMachineID {
		return fmt.Errorf("%w: %w", ErrInvalidMachineID, newConfigError(
			"MachineID",
			fmt.Sprintf("%d", c.MachineID),
			"out of valid range",
			fmt.Sprintf("must be between 0 and %d (%d bits)", MaxMachineID, MachineIDBits),
		))
	}
	if c.TimeSource == nil {
		c.TimeSource = func() int64 { return time.Now().UnixMilli() }
	}
	return nil
}

// Metrics holds runtime counters for monitoring and observability.
//
// All counters are monotonically increasing and thread-safe via atomic
// operations. Use GetMetrics() to retrieve a consistent snapshot.
type Metrics struct {
	Generated          int64 // Total IDs successfully generated
	ClockRegressionErr int64 // Generation failures due to a backward clock
	SequenceOverflow   int64 // Sequence exhaustion events (waited for next millisecond)
	WaitTimeUs         int64 // Total time spent waiting, microseconds
}

// Generator is the stateful backend ID producer.
//
// # Thread Safety
//
// Generator is safe for concurrent use. Generate() is an exclusive critical
// section: the read-modify-write of lastTimestamp and sequence happens under
// a mutex so that no two callers can observe the same tick/sequence pair.
//
// # State
//
// lastTimestamp and sequence live only for the process lifetime; there is no
// external persistence. A restarted generator relies on the clock having
// advanced past the previous incarnation's last tick.
type Generator struct {
	mu            sync.Mutex   // Protects sequence and lastTimestamp
	now           func() int64 // Time source, milliseconds since Unix epoch
	machineID     int64        // Fixed at construction
	sequence      int64        // Counter within the current millisecond
	lastTimestamp int64        // Last millisecond an ID was issued for

	// Metrics counters using atomic operations for lock-free reads.
	// Separated from the hot path fields to avoid false sharing.
	generated          atomic.Int64
	clockRegressionErr atomic.Int64
	sequenceOverflow   atomic.Int64
	waitTimeUs         atomic.Int64
}

// New creates a backend Generator with default configuration.
//
// The machine ID must be unique among running backend instances (0-1023).
//
// Returns ErrInvalidMachineID if machineID is out of range.
func New(machineID int64) (*Generator, error) {
	return NewWithConfig(DefaultConfig(machineID))
}

// NewWithConfig creates a backend Generator with custom configuration.
//
// This is primarily useful for injecting a time source in tests or
// simulations; production callers normally use New().
func NewWithConfig(cfg Config) (*Generator, error) {
	if err := (&cfg).Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		now:       cfg.TimeSource,
		machineID: cfg.MachineID,
	}, nil
}

// Generate creates a new backend ID.
//
// Thread-safe. Fails with ErrClockRegression when the time source reads
// earlier than the last issued tick (state is left unchanged), and with
// ErrTimestampOverflow when the epoch-relative timestamp no longer fits in
// 41 bits. Both are unrecoverable for this call and must not be retried
// blindly: a generator that cannot guarantee uniqueness stops producing IDs
// rather than produce a wrong one.
func (g *Generator) Generate() (ID, error) {
	return g.GenerateWithContext(context.Background())
}

// GenerateWithContext creates a new backend ID with cancellation support.
//
// The context is consulted before any work and during the sequence-overflow
// wait, so a caller can bound the otherwise unbounded spin.
func (g *Generator) GenerateWithContext(ctx context.Context) (ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateLocked(ctx)
}

// generateLocked is the ID generation state machine. Callers hold g.mu.
//
// # Algorithm
//
// 1. Check context cancellation
// 2. Read the current millisecond from the time source
// 3. Clock regression: fail without touching state
// 4. Same millisecond: increment sequence, wait out an overflow
// 5. New millisecond: reset sequence
// 6. Bounds-check the epoch-relative timestamp (41 bits)
// 7. Compose the ID: (adjusted << 23) | (1 << 22) | (machine << 12) | seq
func (g *Generator) generateLocked(ctx context.Context) (ID, error) {
	select {
	case <-ctx.Done():
		return 0, ErrContextCanceled
	default:
	}

	timestamp := g.now()

	if timestamp < g.lastTimestamp {
		g.clockRegressionErr.Add(1)
		return 0, newClockRegressionError(timestamp, g.lastTimestamp, g.machineID)
	}

	if timestamp == g.lastTimestamp {
		// Bitwise AND with MaxSequence wraps to 0 on exhaustion.
		g.sequence = (g.sequence + 1) & MaxSequence

		// Sequence overflow: all 4096 slots for this millisecond are used.
		if g.sequence == 0 {
			g.sequenceOverflow.Add(1)
			next, err := g.waitNextMillis(ctx)
			if err != nil {
				// Undo the wrap so a retry in the same millisecond
				// overflows again instead of reissuing sequence 1.
				g.sequence = MaxSequence
				return 0, err
			}
			timestamp = next
		}
	} else {
		g.sequence = 0
	}

	g.lastTimestamp = timestamp

	adjusted := timestamp - Epoch
	if adjusted < 0 || adjusted > MaxTimestamp {
		// A clock before the custom epoch cannot be represented either.
		return 0, newOverflowError(timestamp, SourceBackend, g.machineID)
	}

	g.generated.Add(1)

	return ID(packBackend(adjusted, g.machineID, g.sequence)), nil
}

// waitNextMillis spins until the time source reports a millisecond strictly
// greater than lastTimestamp, then returns it.
//
// The loop yields with runtime.Gosched() on every iteration so it does not
// starve other goroutines, and checks the context so callers can abandon the
// wait. There is no upper bound: clocks are assumed to advance.
func (g *Generator) waitNextMillis(ctx context.Context) (int64, error) {
	waitStart := time.Now()
	for {
		select {
		case <-ctx.Done():
			return 0, ErrContextCanceled
		default:
		}

		now := g.now()
		if now > g.lastTimestamp {
			g.waitTimeUs.Add(time.Since(waitStart).Microseconds())
			return now, nil
		}
		runtime.Gosched()
	}
}

// MustGenerate generates a backend ID and panics on error.
//
// Only use this where ID generation failure is unrecoverable; most callers
// should use Generate() and handle the error.
func (g *Generator) MustGenerate() ID {
	id, err := g.Generate()
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateBatch generates count backend IDs in a single critical section.
//
// The mutex is acquired once for the whole batch, which is substantially
// faster than calling Generate() in a loop under contention. If an error
// occurs mid-batch (clock regression, cancellation, overflow), the IDs
// generated so far are returned alongside the error so callers can still
// use the partial batch.
func (g *Generator) GenerateBatch(ctx context.Context, count int) ([]ID, error) {
	if count <= 0 {
		return []ID{}, nil
	}

	ids := make([]ID, 0, count)

	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < count; i++ {
		id, err := g.generateLocked(ctx)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// MachineID returns the machine ID of this generator. It is immutable after
// construction.
func (g *Generator) MachineID() int64 {
	return g.machineID
}

// GetMetrics returns a snapshot of current metrics.
//
// All counters are read atomically; the returned struct is a plain value
// safe to use concurrently.
func (g *Generator) GetMetrics() Metrics {
	return Metrics{
		Generated:          g.generated.Load(),
		ClockRegressionErr: g.clockRegressionErr.Load(),
		SequenceOverflow:   g.sequenceOverflow.Load(),
		WaitTimeUs:         g.waitTimeUs.Load(),
	}
}

// ResetMetrics resets all metrics counters to zero.
//
// Primarily useful in tests; production counters should normally stay
// monotonic for rate calculations.
func (g *Generator) ResetMetrics() {
	g.generated.Store(0)
	g.clockRegressionErr.Store(0)
	g.sequenceOverflow.Store(0)
	g.waitTimeUs.Store(0)
}

// Default generator instance (machine ID 0) for convenient package-level
// functions. Initialized lazily via sync.Once so import never panics and
// errors surface on first use.
var (
	defaultGenerator     *Generator
	defaultGeneratorOnce sync.Once
	defaultGeneratorErr  error
)

func initDefaultGenerator() {
	defaultGenerator, defaultGeneratorErr = New(0)
}

// Generate generates a backend ID using the default generator.
//
// The default generator uses machine ID 0, suitable for single-machine
// deployments. Multi-machine deployments must create their own Generator
// with a coordinated machine ID:
//
//	gen, err := snowid.New(42)
//	id, err := gen.Generate()
func Generate() (ID, error) {
	defaultGeneratorOnce.Do(initDefaultGenerator)
	if defaultGeneratorErr != nil {
		return 0, defaultGeneratorErr
	}
	return defaultGenerator.Generate()
}

// GenerateWithContext generates a backend ID using the default generator
// with cancellation support.
func GenerateWithContext(ctx context.Context) (ID, error) {
	defaultGeneratorOnce.Do(initDefaultGenerator)
	if defaultGeneratorErr != nil {
		return 0, defaultGeneratorErr
	}
	return defaultGenerator.GenerateWithContext(ctx)
}

// MustGenerate generates a backend ID using the default generator and panics
// on error.
func MustGenerate() ID {
	id, err := Generate()
	if err != nil {
		panic(err)
	}
	return id
}

// GetDefaultMetrics returns metrics from the default generator.
func GetDefaultMetrics() (Metrics, error) {
	defaultGeneratorOnce.Do(initDefaultGenerator)
	if defaultGeneratorErr != nil {
		return Metrics{}, defaultGeneratorErr
	}
	return defaultGenerator.GetMetrics(), nil
}
