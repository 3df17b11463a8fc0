package snowid

import (
	"database/sql/driver"
	"encoding/json"
	"testing"
	"time"
)

// TestDecodeTaggedVariant tests that Decode populates exactly the fields the
// source flag selects
func TestDecodeTaggedVariant(t *testing.T) {
	const adjusted = int64(500_000)

	t.Run("Backend", func(t *testing.T) {
		id := ID(packBackend(adjusted, 321, 99))

		c := Decode(id)
		if c.Source != SourceBackend {
			t.Fatalf("Source = %v, want SourceBackend", c.Source)
		}
		if c.Timestamp != Epoch+adjusted {
			t.Errorf("Timestamp = %d, want %d", c.Timestamp, Epoch+adjusted)
		}
		if c.MachineID != 321 {
			t.Errorf("MachineID = %d, want 321", c.MachineID)
		}
		if c.Sequence != 99 {
			t.Errorf("Sequence = %d, want 99", c.Sequence)
		}
		if c.Randomness != 0 {
			t.Errorf("Randomness = %d, should be zero for a backend ID", c.Randomness)
		}
	})

	t.Run("Frontend", func(t *testing.T) {
		id := ID(packFrontend(adjusted, 0x2ABCDE))

		c := Decode(id)
		if c.Source != SourceFrontend {
			t.Fatalf("Source = %v, want SourceFrontend", c.Source)
		}
		if c.Timestamp != Epoch+adjusted {
			t.Errorf("Timestamp = %d, want %d", c.Timestamp, Epoch+adjusted)
		}
		if c.Randomness != 0x2ABCDE {
			t.Errorf("Randomness = %#x, want 0x2ABCDE", c.Randomness)
		}
		if c.MachineID != 0 || c.Sequence != 0 {
			t.Errorf("MachineID/Sequence = %d/%d, should be zero for a frontend ID",
				c.MachineID, c.Sequence)
		}
	})

	t.Run("Zero", func(t *testing.T) {
		c := Decode(0)
		if c.Source != SourceFrontend {
			t.Errorf("Source = %v, want SourceFrontend (flag bit clear)", c.Source)
		}
		if c.Timestamp != Epoch {
			t.Errorf("Timestamp = %d, want the epoch %d", c.Timestamp, Epoch)
		}
	})
}

// TestDecodeMatchesMethods tests that Decode and the per-field methods agree
func TestDecodeMatchesMethods(t *testing.T) {
	gen, err := New(200)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	id, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	c := Decode(id)
	if c.Timestamp != id.Timestamp() {
		t.Errorf("Timestamp mismatch: %d vs %d", c.Timestamp, id.Timestamp())
	}
	if c.Source != id.Source() {
		t.Errorf("Source mismatch: %v vs %v", c.Source, id.Source())
	}
	if c.MachineID != id.MachineID() {
		t.Errorf("MachineID mismatch: %d vs %d", c.MachineID, id.MachineID())
	}
	if c.Sequence != id.Sequence() {
		t.Errorf("Sequence mismatch: %d vs %d", c.Sequence, id.Sequence())
	}
	if !c.Time().Equal(id.Time()) {
		t.Errorf("Time mismatch: %v vs %v", c.Time(), id.Time())
	}
}

// TestIsValid tests the validation predicate
func TestIsValid(t *testing.T) {
	t.Run("FreshBackendID", func(t *testing.T) {
		gen, _ := New(3)
		id, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if !id.IsValid() {
			t.Errorf("IsValid() = false for fresh backend ID %d", id)
		}
	})

	t.Run("FreshFrontendID", func(t *testing.T) {
		id, err := GenerateFrontendID()
		if err != nil {
			t.Fatalf("GenerateFrontendID() error = %v", err)
		}
		if !id.IsValid() {
			t.Errorf("IsValid() = false for fresh frontend ID %d", id)
		}
	})

	t.Run("FutureTimestamp", func(t *testing.T) {
		future := time.Now().UnixMilli() + 60_000 // one minute ahead
		backend := ID(packBackend(future-Epoch, 1, 0))
		frontend := ID(packFrontend(future-Epoch, 12345))

		if backend.IsValid() {
			t.Errorf("IsValid() = true for backend ID one minute in the future")
		}
		if frontend.IsValid() {
			t.Errorf("IsValid() = true for frontend ID one minute in the future")
		}
	})

	t.Run("PastTimestamp", func(t *testing.T) {
		past := time.Now().UnixMilli() - 60_000
		id := ID(packBackend(past-Epoch, 1, 0))
		if !id.IsValid() {
			t.Errorf("IsValid() = false for ID one minute in the past")
		}
	})

	t.Run("TotalOverArbitraryInput", func(t *testing.T) {
		// IsValid must return a boolean for anything, including values that
		// are not snowid IDs at all. IDs claiming maximal timestamps decode
		// far into the future and are therefore invalid, not errors.
		inputs := []ID{0, 1, ID(^uint64(0)), ID(1) << 63, ID(flagBackend)}
		for _, id := range inputs {
			_ = id.IsValid()
		}
		if max := ID(^uint64(0)); max.IsValid() {
			t.Errorf("IsValid() = true for all-ones input (timestamp far in the future)")
		}
	})
}

// TestIDConversions tests the basic numeric conversions
func TestIDConversions(t *testing.T) {
	// Top bit set: the case where int64 reinterpretation matters.
	id := ID(uint64(1)<<63 | 42)

	if id.Uint64() != uint64(1)<<63|42 {
		t.Errorf("Uint64() = %d", id.Uint64())
	}
	if back := ParseInt64(id.Int64()); back != id {
		t.Errorf("ParseInt64(Int64()) = %d, want %d", back, id)
	}
	if back := ParseUint64(id.Uint64()); back != id {
		t.Errorf("ParseUint64(Uint64()) = %d, want %d", back, id)
	}
}

// TestIDEncodings tests string encodings round-trip through their parsers
func TestIDEncodings(t *testing.T) {
	gen, _ := New(512)
	generated, _ := gen.Generate()

	// A spread of shapes: zero, small, generated, top-bit-set, all-ones.
	ids := []ID{0, 1, 61, generated, ID(uint64(1) << 63), ID(^uint64(0))}

	for _, id := range ids {
		if got, err := ParseString(id.String()); err != nil || got != id {
			t.Errorf("ParseString(String()) = %d, %v; want %d", got, err, id)
		}
		if got, err := ParseBase2(id.Base2()); err != nil || got != id {
			t.Errorf("ParseBase2(Base2()) = %d, %v; want %d", got, err, id)
		}
		if got, err := ParseBase32(id.Base32()); err != nil || got != id {
			t.Errorf("ParseBase32(Base32()) = %d, %v; want %d", got, err, id)
		}
		if got, err := ParseBase36(id.Base36()); err != nil || got != id {
			t.Errorf("ParseBase36(Base36()) = %d, %v; want %d", got, err, id)
		}
		if got, err := ParseBase58(id.Base58()); err != nil || got != id {
			t.Errorf("ParseBase58(Base58()) = %d, %v; want %d", got, err, id)
		}
		if got, err := ParseBase62(id.Base62()); err != nil || got != id {
			t.Errorf("ParseBase62(Base62()) = %d, %v; want %d", got, err, id)
		}
		if got, err := ParseBase64(id.Base64()); err != nil || got != id {
			t.Errorf("ParseBase64(Base64()) = %d, %v; want %d", got, err, id)
		}
		if got, err := ParseBase64URL(id.Base64URL()); err != nil || got != id {
			t.Errorf("ParseBase64URL(Base64URL()) = %d, %v; want %d", got, err, id)
		}
		if got, err := ParseHex(id.Hex()); err != nil || got != id {
			t.Errorf("ParseHex(Hex()) = %d, %v; want %d", got, err, id)
		}
		if got := ParseIntBytes(id.IntBytes()); got != id {
			t.Errorf("ParseIntBytes(IntBytes()) = %d, want %d", got, id)
		}
	}
}

// TestIDFormat tests the format specifier dispatch
func TestIDFormat(t *testing.T) {
	id := MustGenerate()

	tests := []struct {
		format string
		want   string
	}{
		{"hex", id.Hex()},
		{"x", id.Hex()},
		{"base58", id.Base58()},
		{"b62", id.Base62()},
		{"binary", id.Base2()},
		{"decimal", id.String()},
		{"", id.String()},
		{"bogus", id.String()},
	}

	for _, tt := range tests {
		if got := id.Format(tt.format); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

// TestIDJSON tests JavaScript-safe JSON marshaling
func TestIDJSON(t *testing.T) {
	id := ID(uint64(1)<<63 | 12345) // would be negative as int64

	data, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if data[0] != '"' {
		t.Errorf("MarshalJSON() = %s, want a string form", data)
	}

	var decoded ID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded != id {
		t.Errorf("JSON round-trip = %d, want %d", decoded, id)
	}

	// Number form is accepted too.
	var fromNumber ID
	if err := json.Unmarshal([]byte("12345"), &fromNumber); err != nil {
		t.Fatalf("json.Unmarshal(number) error = %v", err)
	}
	if fromNumber != 12345 {
		t.Errorf("JSON number form = %d, want 12345", fromNumber)
	}

	// Garbage is rejected.
	if err := json.Unmarshal([]byte(`"not-a-number"`), &decoded); err == nil {
		t.Error("json.Unmarshal() of garbage should fail")
	}
}

// TestIDText tests TextMarshaler/TextUnmarshaler
func TestIDText(t *testing.T) {
	id := MustGenerate()

	text, err := id.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}

	var decoded ID
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if decoded != id {
		t.Errorf("Text round-trip = %d, want %d", decoded, id)
	}
}

// TestIDBinary tests BinaryMarshaler/BinaryUnmarshaler
func TestIDBinary(t *testing.T) {
	id := ID(^uint64(0))

	data, err := id.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	if len(data) != 8 {
		t.Fatalf("MarshalBinary() length = %d, want 8", len(data))
	}

	var decoded ID
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if decoded != id {
		t.Errorf("Binary round-trip = %d, want %d", decoded, id)
	}

	if err := decoded.UnmarshalBinary([]byte{1, 2, 3}); err == nil {
		t.Error("UnmarshalBinary() with 3 bytes should fail")
	}
}

// TestIDSQL tests sql.Scanner and driver.Valuer
func TestIDSQL(t *testing.T) {
	id := ID(uint64(1)<<63 | 777) // top bit set: stored negative in BIGINT

	v, err := id.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	i64, ok := v.(int64)
	if !ok {
		t.Fatalf("Value() returned %T, want int64", v)
	}

	var scanned ID
	if err := scanned.Scan(i64); err != nil {
		t.Fatalf("Scan(int64) error = %v", err)
	}
	if scanned != id {
		t.Errorf("SQL round-trip = %d, want %d", scanned, id)
	}

	if err := scanned.Scan("424242"); err != nil {
		t.Fatalf("Scan(string) error = %v", err)
	}
	if scanned != 424242 {
		t.Errorf("Scan(string) = %d, want 424242", scanned)
	}

	if err := scanned.Scan([]byte("99")); err != nil {
		t.Fatalf("Scan([]byte) error = %v", err)
	}
	if scanned != 99 {
		t.Errorf("Scan([]byte) = %d, want 99", scanned)
	}

	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error = %v", err)
	}
	if scanned != 0 {
		t.Errorf("Scan(nil) = %d, want 0", scanned)
	}

	if err := scanned.Scan(3.14); err == nil {
		t.Error("Scan(float64) should fail")
	}

	var _ driver.Valuer = id
}

// TestIDComparison tests ordering helpers
func TestIDComparison(t *testing.T) {
	gen, _ := New(1)
	a, _ := gen.Generate()
	b, _ := gen.Generate()

	if !a.Before(b) {
		t.Errorf("Before() = false for earlier ID")
	}
	if !b.After(a) {
		t.Errorf("After() = false for later ID")
	}
	if !a.Equal(a) {
		t.Errorf("Equal() = false for identical IDs")
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare() results wrong: %d %d %d", a.Compare(b), b.Compare(a), a.Compare(a))
	}
}

// TestIDShard tests sharding helpers
func TestIDShard(t *testing.T) {
	gen, _ := New(17)
	id, _ := gen.Generate()

	if s := id.Shard(10); s > 9 {
		t.Errorf("Shard(10) = %d, want < 10", s)
	}
	if s := id.Shard(0); s != 0 {
		t.Errorf("Shard(0) = %d, want 0", s)
	}
	if s := id.ShardByMachine(8); s != 17%8 {
		t.Errorf("ShardByMachine(8) = %d, want %d", s, 17%8)
	}
	if s := id.ShardByTime(time.Hour); s != id.Time().Unix()/3600 {
		t.Errorf("ShardByTime(hour) = %d, want %d", s, id.Time().Unix()/3600)
	}
	if s := id.ShardByTime(0); s != 0 {
		t.Errorf("ShardByTime(0) = %d, want 0", s)
	}
}

// TestIDAge tests age calculation on a generated ID
func TestIDAge(t *testing.T) {
	id := MustGenerate()
	if age := id.Age(); age < 0 || age > time.Minute {
		t.Errorf("Age() = %v, want a small positive duration", age)
	}
}
