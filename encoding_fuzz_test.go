package snowid

import (
	"testing"
)

// FuzzBase32RoundTrip fuzzes the z-base-32 codec
func FuzzBase32RoundTrip(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(1))
	f.Add(uint64(1) << 63)
	f.Add(^uint64(0))

	f.Fuzz(func(t *testing.T, v uint64) {
		encoded := encodeBase32(v)
		decoded, err := decodeBase32(encoded)
		if err != nil {
			t.Fatalf("decodeBase32(%q) error = %v", encoded, err)
		}
		if decoded != v {
			t.Errorf("round trip: %d -> %q -> %d", v, encoded, decoded)
		}
		if len(encoded) > MaxBase32Len {
			t.Errorf("encodeBase32(%d) length = %d, exceeds MaxBase32Len", v, len(encoded))
		}
	})
}

// FuzzBase58RoundTrip fuzzes the base58 codec
func FuzzBase58RoundTrip(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(57))
	f.Add(uint64(58))
	f.Add(^uint64(0))

	f.Fuzz(func(t *testing.T, v uint64) {
		encoded := encodeBase58(v)
		decoded, err := decodeBase58(encoded)
		if err != nil {
			t.Fatalf("decodeBase58(%q) error = %v", encoded, err)
		}
		if decoded != v {
			t.Errorf("round trip: %d -> %q -> %d", v, encoded, decoded)
		}
	})
}

// FuzzBase62RoundTrip fuzzes the base62 codec
func FuzzBase62RoundTrip(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(61))
	f.Add(uint64(62))
	f.Add(^uint64(0))

	f.Fuzz(func(t *testing.T, v uint64) {
		encoded := encodeBase62(v)
		decoded, err := decodeBase62(encoded)
		if err != nil {
			t.Fatalf("decodeBase62(%q) error = %v", encoded, err)
		}
		if decoded != v {
			t.Errorf("round trip: %d -> %q -> %d", v, encoded, decoded)
		}
	})
}

// FuzzHexRoundTrip fuzzes the hex codec
func FuzzHexRoundTrip(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(0xDEADBEEF))
	f.Add(^uint64(0))

	f.Fuzz(func(t *testing.T, v uint64) {
		encoded := encodeHex(v)
		decoded, err := decodeHex(encoded)
		if err != nil {
			t.Fatalf("decodeHex(%q) error = %v", encoded, err)
		}
		if decoded != v {
			t.Errorf("round trip: %d -> %q -> %d", v, encoded, decoded)
		}
	})
}

// FuzzDecodeArbitraryStrings fuzzes the decoders with arbitrary input.
// Decoders must either return a value or an error, never panic, and
// anything they accept must re-encode consistently.
func FuzzDecodeArbitraryStrings(f *testing.F) {
	f.Add("")
	f.Add("0")
	f.Add("yyyyyyyyyyyyy")
	f.Add("zzzzzzzzzzzzzzzzzz")
	f.Add("OIl0")
	f.Add("hello world")
	f.Add("FFFFFFFFFFFFFFFF")
	f.Add("ffffffffffffffffff")

	f.Fuzz(func(t *testing.T, s string) {
		if v, err := decodeBase32(s); err == nil {
			if re, err2 := decodeBase32(encodeBase32(v)); err2 != nil || re != v {
				t.Errorf("base32 accepted %q as %d but re-encode round trip failed", s, v)
			}
		}
		if v, err := decodeBase58(s); err == nil {
			if re, err2 := decodeBase58(encodeBase58(v)); err2 != nil || re != v {
				t.Errorf("base58 accepted %q as %d but re-encode round trip failed", s, v)
			}
		}
		if v, err := decodeBase62(s); err == nil {
			if re, err2 := decodeBase62(encodeBase62(v)); err2 != nil || re != v {
				t.Errorf("base62 accepted %q as %d but re-encode round trip failed", s, v)
			}
		}
		if v, err := decodeHex(s); err == nil {
			if re, err2 := decodeHex(encodeHex(v)); err2 != nil || re != v {
				t.Errorf("hex accepted %q as %d but re-encode round trip failed", s, v)
			}
		}
	})
}
