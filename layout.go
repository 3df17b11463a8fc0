// Package snowid - layout.go defines the fixed bit layout shared by every
// other component.
//
// The layout is compile-time constant. Unlike generators that make bit
// allocation configurable, this package commits to a single layout because
// the flag bit makes IDs from the two producers interchangeable only if
// every reader and writer agrees on the exact same field positions.

package snowid

// A snowid ID uses all 64 bits, most-significant first:
//
//	┌──────────────────────────────────┬──────┬───────────────────────────┐
//	│   41 bits: Timestamp (ms since   │ 1bit │  22 bits: payload         │
//	│   epoch 2021-01-01T00:00:00Z)    │ flag │  flag=1: machine ‖ seq    │
//	│                                  │      │  flag=0: randomness       │
//	└──────────────────────────────────┴──────┴───────────────────────────┘
//
// The flag bit selects how the low 22 bits are interpreted:
//   - 1: backend-issued; 10-bit machine ID followed by 12-bit sequence
//   - 0: frontend-issued; 22 bits of cryptographic randomness
const (
	// Epoch is the custom epoch (January 1, 2021 00:00:00 UTC) in milliseconds
	// since the Unix epoch. Timestamps are stored relative to it, which gives
	// the 41-bit field ~69.7 years of range (until roughly 2090).
	Epoch int64 = 1609459200000

	// TimestampBits is the width of the timestamp field.
	TimestampBits = 41

	// FlagBits is the width of the source flag field.
	FlagBits = 1

	// MachineIDBits is the width of the machine ID field (backend IDs only).
	MachineIDBits = 10

	// SequenceBits is the width of the per-millisecond sequence counter
	// (backend IDs only).
	SequenceBits = 12

	// RandomBits is the width of the randomness field (frontend IDs only).
	// It occupies the exact bit positions of machine ID and sequence combined.
	RandomBits = MachineIDBits + SequenceBits // 22

	// Shift offsets, computed bottom-up from the sequence field.
	MachineIDShift = SequenceBits                 // 12
	FlagShift      = MachineIDBits + SequenceBits // 22
	TimestampShift = FlagShift + FlagBits         // 23

	// MaxMachineID is the largest valid machine ID (1023).
	MaxMachineID = (1 << MachineIDBits) - 1

	// MaxSequence is the largest sequence value within one millisecond (4095).
	MaxSequence = (1 << SequenceBits) - 1

	// MaxRandomness is the largest frontend randomness value (2^22 - 1).
	MaxRandomness = (1 << RandomBits) - 1

	// MaxTimestamp is the largest epoch-relative timestamp the 41-bit field
	// can hold. Generation fails with ErrTimestampOverflow beyond it.
	MaxTimestamp = (1 << TimestampBits) - 1

	// timestampMask extracts the timestamp field after shifting.
	timestampMask = uint64(MaxTimestamp)

	// flagBackend is the flag bit in its final position.
	flagBackend = uint64(1) << FlagShift
)

// Source identifies which producer issued an ID. It is the decoded form of
// the flag bit.
type Source int

const (
	// SourceFrontend marks an ID assembled from time plus randomness
	// (flag bit 0).
	SourceFrontend Source = iota

	// SourceBackend marks an ID issued by a sequence-aware generator
	// (flag bit 1).
	SourceBackend
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceFrontend:
		return "frontend"
	case SourceBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// packBackend assembles a backend ID from pre-validated fields.
//
// adjusted is the epoch-relative timestamp in milliseconds. Callers must have
// bounds-checked all three fields; packBackend only positions bits.
func packBackend(adjusted, machineID, sequence int64) uint64 {
	return uint64(adjusted)<<TimestampShift |
		flagBackend |
		uint64(machineID)<<MachineIDShift |
		uint64(sequence)
}

// packFrontend assembles a frontend ID. randomness must already be masked to
// RandomBits.
func packFrontend(adjusted int64, randomness uint32) uint64 {
	return uint64(adjusted)<<TimestampShift | uint64(randomness)
}
