// Package snowid - id.go provides the ID type, the component codec, and the
// validation predicate, plus the encoding and integration surface.
//
// The ID type wraps a uint64 and offers multiple string encodings, JSON and
// SQL integration, component extraction for both producer kinds, and
// comparison helpers.

package snowid

import (
	"database/sql/driver"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"
)

// ID is a strongly-typed snowid identifier.
//
// # Why uint64
//
// The layout uses all 64 bits: 41-bit timestamp, 1 flag bit, 22 payload
// bits. Near the end of the epoch range the top bit is set, so a signed
// representation would go negative; the unsigned type keeps numeric order
// equal to generation order for the full lifespan.
//
// # Interface Implementations
//
//   - json.Marshaler/Unmarshaler: JavaScript-safe JSON encoding (string)
//   - encoding.TextMarshaler/Unmarshaler: for XML, YAML, TOML
//   - encoding.BinaryMarshaler/Unmarshaler: 8-byte big-endian
//   - sql.Scanner/driver.Valuer: BIGINT column round-trip
//   - fmt.Stringer: decimal string
//
// Example:
//
//	id, _ := snowid.Generate()
//	fmt.Printf("ID: %d\n", id.Uint64())
//	fmt.Printf("Base62: %s\n", id.Base62())
//	fmt.Printf("Machine: %d\n", id.MachineID())
//	fmt.Printf("Time: %v\n", id.Time())
type ID uint64

// Components is the decoded form of an ID.
//
// Exactly one of {MachineID, Sequence} or {Randomness} is meaningful,
// selected by Source: the two interpretations of the low 22 bits are
// mutually exclusive by construction, so treat this as a tagged variant
// rather than a struct of optional fields.
type Components struct {
	// Timestamp is absolute milliseconds since the Unix epoch.
	Timestamp int64

	// Source selects which of the remaining fields carry meaning.
	Source Source

	// MachineID identifies the issuing backend instance.
	// Meaningful only when Source == SourceBackend.
	MachineID int64

	// Sequence is the per-millisecond counter at issue time.
	// Meaningful only when Source == SourceBackend.
	Sequence int64

	// Randomness is the 22-bit random payload.
	// Meaningful only when Source == SourceFrontend.
	Randomness uint32
}

// Time returns the decoded timestamp as a time.Time.
func (c Components) Time() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// Decode splits any 64-bit value into its semantic fields.
//
// Decode is total: it accepts arbitrary input and never fails, because every
// bit pattern maps to some combination of fields. Whether those fields make
// sense is IsValid's job.
func Decode(id ID) Components {
	c := Components{
		Timestamp: id.Timestamp(),
	}
	if uint64(id)&flagBackend != 0 {
		c.Source = SourceBackend
		c.MachineID = id.MachineID()
		c.Sequence = id.Sequence()
	} else {
		c.Source = SourceFrontend
		c.Randomness = id.Randomness()
	}
	return c
}

// ============================================================================
// Component Extraction
// ============================================================================

// Timestamp returns the timestamp field in absolute milliseconds since the
// Unix epoch.
func (id ID) Timestamp() int64 {
	return int64(uint64(id)>>TimestampShift&timestampMask) + Epoch
}

// Time returns the timestamp field as a time.Time.
func (id ID) Time() time.Time {
	return time.UnixMilli(id.Timestamp())
}

// Source returns the producer that issued this ID, decoded from the flag
// bit.
func (id ID) Source() Source {
	if uint64(id)&flagBackend != 0 {
		return SourceBackend
	}
	return SourceFrontend
}

// MachineID returns the machine ID field.
//
// Meaningful only for backend-sourced IDs; for frontend IDs it returns the
// top 10 bits of the randomness.
func (id ID) MachineID() int64 {
	return int64(uint64(id) >> MachineIDShift & MaxMachineID)
}

// Sequence returns the sequence field.
//
// Meaningful only for backend-sourced IDs; for frontend IDs it returns the
// low 12 bits of the randomness.
func (id ID) Sequence() int64 {
	return int64(uint64(id) & MaxSequence)
}

// Randomness returns the low 22 bits as the frontend randomness payload.
//
// Meaningful only for frontend-sourced IDs.
func (id ID) Randomness() uint32 {
	return uint32(uint64(id) & MaxRandomness)
}

// Age returns the duration since the ID's timestamp.
func (id ID) Age() time.Duration {
	return time.Since(id.Time())
}

// ============================================================================
// Validation
// ============================================================================

// IsValid reports whether the ID is structurally and temporally
// well-formed.
//
// Checks:
//   - the flag bit is exactly 0 or 1 (always true for a 1-bit field;
//     retained for symmetry with Decode's bounds logic)
//   - the decoded timestamp is not strictly in the future
//   - backend-sourced: machine ID and sequence lie within their bit-width
//     ranges (always true after masking; the check keeps the validator
//     robust if extraction were ever altered)
//
// IsValid is a total, side-effect-free predicate over arbitrary 64-bit
// inputs: it returns false rather than raising on anything, including
// values that are not snowid IDs at all.
func (id ID) IsValid() bool {
	c := Decode(id)

	if c.Source != SourceBackend && c.Source != SourceFrontend {
		return false
	}

	// An ID claiming to originate in the future is invalid.
	if c.Timestamp > time.Now().UnixMilli() {
		return false
	}

	if c.Source == SourceBackend {
		if c.MachineID < 0 || c.MachineID > MaxMachineID {
			return false
		}
		if c.Sequence < 0 || c.Sequence > MaxSequence {
			return false
		}
	} else {
		if c.Randomness > MaxRandomness {
			return false
		}
	}

	return true
}

// ============================================================================
// Basic Conversions
// ============================================================================

// Uint64 returns the ID as a uint64.
func (id ID) Uint64() uint64 {
	return uint64(id)
}

// Int64 returns the ID reinterpreted as an int64 (two's complement).
//
// Use this when storing into signed BIGINT columns; ParseInt64 reverses it.
// Note that signed ordering diverges from generation order once the top bit
// is set, late in the epoch range.
func (id ID) Int64() int64 {
	return int64(id)
}

// String returns the decimal string representation of the ID.
//
// Implements fmt.Stringer.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ============================================================================
// Encoding Methods
// ============================================================================

// Base2 returns a binary string representation.
//
// Primarily useful for debugging the bit layout; up to 64 characters.
func (id ID) Base2() string {
	return strconv.FormatUint(uint64(id), 2)
}

// Base32 returns a z-base-32 encoded string.
//
// Douglas Crockford's z-base-32 alphabet avoids visually similar characters
// (0/O, 1/I/l). Case-insensitive, ~13 characters.
func (id ID) Base32() string {
	return encodeBase32(uint64(id))
}

// Base36 returns a base36 encoded string (0-9, a-z).
func (id ID) Base36() string {
	return strconv.FormatUint(uint64(id), 36)
}

// Base58 returns a Bitcoin-style base58 encoded string.
//
// Excludes visually similar characters (0, O, I, l); ~11 characters.
func (id ID) Base58() string {
	return encodeBase58(uint64(id))
}

// Base62 returns a URL-safe base62 encoded string (0-9, a-z, A-Z).
//
// The recommended encoding for REST APIs and URLs: compact and needs no
// escaping.
func (id ID) Base62() string {
	return encodeBase62(uint64(id))
}

// Base64 returns a standard base64 encoding of the decimal string.
func (id ID) Base64() string {
	return base64.StdEncoding.EncodeToString(id.Bytes())
}

// Base64URL returns a URL-safe base64 encoding of the decimal string.
func (id ID) Base64URL() string {
	return base64.URLEncoding.EncodeToString(id.Bytes())
}

// Hex returns a lowercase hexadecimal string representation.
func (id ID) Hex() string {
	return encodeHex(uint64(id))
}

// Format returns the ID encoded per the format specifier.
//
// Supported formats:
//   - "hex", "x": hexadecimal (lowercase)
//   - "binary", "bin", "b": binary string
//   - "base32", "b32", "32": z-base-32
//   - "base36", "b36", "36": base36
//   - "base58", "b58", "58": base58 (Bitcoin-style)
//   - "base62", "b62", "62": base62 (URL-safe)
//   - "base64", "b64", "64": base64
//   - "decimal", "dec", "d", "": decimal (default)
func (id ID) Format(format string) string {
	switch format {
	case "hex", "x":
		return id.Hex()
	case "binary", "bin", "b":
		return id.Base2()
	case "base32", "b32", "32":
		return id.Base32()
	case "base36", "b36", "36":
		return id.Base36()
	case "base58", "b58", "58":
		return id.Base58()
	case "base62", "b62", "62":
		return id.Base62()
	case "base64", "b64", "64":
		return id.Base64()
	case "decimal", "dec", "d", "":
		return id.String()
	default:
		return id.String()
	}
}

// ============================================================================
// Binary Encoding
// ============================================================================

// Bytes returns the decimal string representation as a byte slice.
//
// For the fixed-width binary integer form, use IntBytes().
func (id ID) Bytes() []byte {
	return []byte(id.String())
}

// IntBytes returns the ID as an 8-byte big-endian integer.
//
// Big-endian keeps byte-wise lexicographic order equal to numeric order,
// which matters for ordered key-value stores.
func (id ID) IntBytes() [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler (8-byte big-endian).
func (id ID) MarshalBinary() ([]byte, error) {
	b := id.IntBytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *ID) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return fmt.Errorf("invalid binary data length: %d", len(data))
	}
	*id = ID(binary.BigEndian.Uint64(data))
	return nil
}

// ============================================================================
// JSON and Text Marshaling
// ============================================================================

// MarshalJSON implements json.Marshaler.
//
// The ID is emitted as a JSON string, not a number: JavaScript's Number is
// an IEEE 754 double and silently loses precision above 2^53, which snowid
// IDs exceed within the first milliseconds of the epoch.
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
//
// Accepts both string and number forms for flexibility; string is the form
// MarshalJSON produces.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) < 1 {
		return fmt.Errorf("invalid JSON data: %s", string(data))
	}

	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	u, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid snowid ID: %w", err)
	}

	*id = ID(u)
	return nil
}

// MarshalText implements encoding.TextMarshaler (decimal string).
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	u, err := strconv.ParseUint(string(text), 10, 64)
	if err != nil {
		return err
	}
	*id = ID(u)
	return nil
}

// ============================================================================
// SQL Database Integration
// ============================================================================

// Scan implements sql.Scanner.
//
// Supported column types:
//   - int64: BIGINT columns (two's complement reinterpretation of uint64)
//   - []byte / string: VARCHAR/TEXT columns holding the decimal form
//   - nil: zero ID
//
// Example:
//
//	var id snowid.ID
//	err := db.QueryRow("SELECT id FROM events WHERE name = ?", name).Scan(&id)
func (id *ID) Scan(value interface{}) error {
	if value == nil {
		*id = 0
		return nil
	}

	switch v := value.(type) {
	case int64:
		*id = ID(uint64(v))
	case []byte:
		u, err := strconv.ParseUint(string(v), 10, 64)
		if err != nil {
			return err
		}
		*id = ID(u)
	case string:
		u, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		*id = ID(u)
	default:
		return fmt.Errorf("cannot scan %T into ID", value)
	}

	return nil
}

// Value implements driver.Valuer, storing the ID as int64 for BIGINT
// columns. The two's complement reinterpretation round-trips through Scan.
func (id ID) Value() (driver.Value, error) {
	return int64(id), nil
}

// ============================================================================
// Parsing Functions
// ============================================================================

// ParseString parses a decimal string into an ID.
func ParseString(s string) (ID, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(u), nil
}

// ParseUint64 converts a uint64 into an ID. Zero-cost type conversion.
func ParseUint64(u uint64) ID {
	return ID(u)
}

// ParseInt64 converts an int64 into an ID, reversing ID.Int64().
func ParseInt64(i int64) ID {
	return ID(uint64(i))
}

// ParseBase2 parses a binary string into an ID.
func ParseBase2(s string) (ID, error) {
	u, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, ErrInvalidBase2
	}
	return ID(u), nil
}

// ParseBase32 parses a z-base-32 string into an ID.
func ParseBase32(s string) (ID, error) {
	u, err := decodeBase32(s)
	if err != nil {
		return 0, err
	}
	return ID(u), nil
}

// ParseBase36 parses a base36 string into an ID.
func ParseBase36(s string) (ID, error) {
	u, err := strconv.ParseUint(s, 36, 64)
	if err != nil {
		return 0, ErrInvalidBase36
	}
	return ID(u), nil
}

// ParseBase58 parses a Bitcoin-style base58 string into an ID.
func ParseBase58(s string) (ID, error) {
	u, err := decodeBase58(s)
	if err != nil {
		return 0, err
	}
	return ID(u), nil
}

// ParseBase62 parses a URL-safe base62 string into an ID.
func ParseBase62(s string) (ID, error) {
	u, err := decodeBase62(s)
	if err != nil {
		return 0, err
	}
	return ID(u), nil
}

// ParseBase64 parses a standard base64 string into an ID.
func ParseBase64(s string) (ID, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return 0, ErrInvalidBase64
	}
	return ParseBytes(b)
}

// ParseBase64URL parses a URL-safe base64 string into an ID.
func ParseBase64URL(s string) (ID, error) {
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return 0, ErrInvalidBase64
	}
	return ParseBytes(b)
}

// ParseHex parses a hexadecimal string into an ID. Accepts both cases.
func ParseHex(s string) (ID, error) {
	u, err := decodeHex(s)
	if err != nil {
		return 0, err
	}
	return ID(u), nil
}

// ParseBytes parses a byte slice holding the decimal form into an ID.
func ParseBytes(b []byte) (ID, error) {
	return ParseString(string(b))
}

// ParseIntBytes parses an 8-byte big-endian integer into an ID.
func ParseIntBytes(b [8]byte) ID {
	return ID(binary.BigEndian.Uint64(b[:]))
}

// ============================================================================
// Comparison
// ============================================================================

// Before checks if this ID was generated before another ID.
//
// IDs are time-ordered, so this is a plain numeric comparison.
func (id ID) Before(other ID) bool {
	return id < other
}

// After checks if this ID was generated after another ID.
func (id ID) After(other ID) bool {
	return id > other
}

// Equal checks if two IDs are exactly equal.
func (id ID) Equal(other ID) bool {
	return id == other
}

// Compare returns -1, 0, or 1 as id is before, equal to, or after other.
func (id ID) Compare(other ID) int {
	if id < other {
		return -1
	}
	if id > other {
		return 1
	}
	return 0
}

// ============================================================================
// Sharding Helpers
// ============================================================================

// Shard calculates which shard this ID belongs to by simple modulo.
//
// Distributes IDs evenly but does not preserve time-ordering within shards.
func (id ID) Shard(numShards uint64) uint64 {
	if numShards == 0 {
		return 0
	}
	return uint64(id) % numShards
}

// ShardByMachine calculates a shard from the machine ID field, so all IDs
// from one backend instance land on the same shard. Only sensible for
// backend-sourced IDs.
func (id ID) ShardByMachine(numShards uint64) uint64 {
	if numShards == 0 {
		return 0
	}
	return uint64(id.MachineID()) % numShards
}

// ShardByTime calculates a time-bucket index for time-series partitioning.
//
// Example:
//
//	// Partition by hour
//	bucket := id.ShardByTime(time.Hour)
//	table := fmt.Sprintf("events_%d", bucket)
func (id ID) ShardByTime(bucketSize time.Duration) int64 {
	if bucketSize <= 0 {
		return 0
	}
	return id.Time().Unix() / int64(bucketSize.Seconds())
}
