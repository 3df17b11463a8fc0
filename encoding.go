// Package snowid - encoding.go provides the compact string codecs backing
// the ID encoding methods.
//
// # Performance Notes
//
//   - Bitshifting for power-of-2 bases (Base32, Hex) instead of div/mod
//   - Pre-computed 256-byte lookup tables for O(1) character mapping
//   - Pre-allocated buffers with exact capacity
//
// All functions here are safe for concurrent use; the lookup tables are
// built once at package init time and read-only afterwards.

package snowid

import (
	"errors"
)

// Maximum string lengths for each encoding of a uint64. Inputs longer than
// these are rejected before any arithmetic.
const (
	MaxBase32Len = 13 // ceil(64 / 5)
	MaxBase58Len = 11 // ceil(log58(2^64))
	MaxBase62Len = 11 // ceil(log62(2^64))
	MaxHexLen    = 16 // ceil(64 / 4)
)

// Encoding errors returned when parsing invalid encoded strings.
var (
	ErrInvalidBase2    = errors.New("invalid base2 encoding")
	ErrInvalidBase32   = errors.New("invalid base32 encoding")
	ErrInvalidBase36   = errors.New("invalid base36 encoding")
	ErrInvalidBase58   = errors.New("invalid base58 encoding")
	ErrInvalidBase62   = errors.New("invalid base62 encoding")
	ErrInvalidBase64   = errors.New("invalid base64 encoding")
	ErrInvalidHex      = errors.New("invalid hexadecimal encoding")
	ErrStringTooLong   = errors.New("encoded string exceeds maximum length")
	ErrIntegerOverflow = errors.New("decoded value would overflow uint64")
)

// Base32 uses the z-base-32 character set (Douglas Crockford's design),
// avoiding visually similar characters: 0/O, 1/I/l.
const encodeBase32Map = "ybndrfg8ejkmcpqxot1uwisza345h769"

// Base58 uses the Bitcoin-style alphabet, excluding 0, O, I, l.
const encodeBase58Map = "123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// Base62 uses standard alphanumeric characters (URL-safe).
const encodeBase62Map = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Hex uses lowercase hexadecimal characters.
const encodeHexMap = "0123456789abcdef"

// Decode maps provide O(1) character-to-value lookups. Invalid characters
// are marked with 0xFF.
var (
	decodeBase32Map [256]byte
	decodeBase58Map [256]byte
	decodeBase62Map [256]byte
	decodeHexMap    [256]byte
)

func init() {
	for i := 0; i < 256; i++ {
		decodeBase32Map[i] = 0xFF
		decodeBase58Map[i] = 0xFF
		decodeBase62Map[i] = 0xFF
		decodeHexMap[i] = 0xFF
	}

	for i := 0; i < len(encodeBase32Map); i++ {
		decodeBase32Map[encodeBase32Map[i]] = byte(i)
	}

	for i := 0; i < len(encodeBase58Map); i++ {
		decodeBase58Map[encodeBase58Map[i]] = byte(i)
	}

	for i := 0; i < len(encodeBase62Map); i++ {
		decodeBase62Map[encodeBase62Map[i]] = byte(i)
	}

	for i := 0; i < len(encodeHexMap); i++ {
		decodeHexMap[encodeHexMap[i]] = byte(i)
		if encodeHexMap[i] >= 'a' && encodeHexMap[i] <= 'f' {
			// Also map uppercase
			decodeHexMap[encodeHexMap[i]-32] = byte(i)
		}
	}
}

// encodeBase32 encodes a uint64 to a z-base-32 string using bitshifting.
//
// Base32 uses 5 bits per character, so extraction is a mask and shift
// instead of div/mod.
func encodeBase32(id uint64) string {
	if id == 0 {
		return "y" // First character of the alphabet
	}

	if id < 32 {
		return string(encodeBase32Map[id])
	}

	b := make([]byte, 0, MaxBase32Len)

	for id >= 32 {
		b = append(b, encodeBase32Map[id&0x1F]) // 0x1F = 0b11111 (5 bits)
		id >>= 5
	}
	b = append(b, encodeBase32Map[id])

	// Reverse in place
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return string(b)
}

// decodeBase32 decodes a z-base-32 string to uint64 using the lookup table.
//
// Returns an error on invalid characters, excessive length, or overflow.
func decodeBase32(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, ErrInvalidBase32
	}
	if len(s) > MaxBase32Len {
		return 0, ErrStringTooLong
	}

	var id uint64
	const maxSafeValue = ^uint64(0) >> 5 // Largest value the next shift cannot overflow

	for i := 0; i < len(s); i++ {
		if decodeBase32Map[s[i]] == 0xFF {
			return 0, ErrInvalidBase32
		}

		if id > maxSafeValue {
			return 0, ErrIntegerOverflow
		}

		id = (id << 5) + uint64(decodeBase32Map[s[i]])
	}

	return id, nil
}

// encodeBase58 encodes a uint64 to a Bitcoin-style base58 string.
//
// 58 is not a power of 2, so this uses div/mod with the lookup table.
func encodeBase58(id uint64) string {
	if id == 0 {
		return "1" // First character of the alphabet
	}

	if id < 58 {
		return string(encodeBase58Map[id])
	}

	b := make([]byte, 0, MaxBase58Len)

	for id >= 58 {
		b = append(b, encodeBase58Map[id%58])
		id /= 58
	}
	b = append(b, encodeBase58Map[id])

	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return string(b)
}

// decodeBase58 decodes a Bitcoin-style base58 string to uint64.
func decodeBase58(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, ErrInvalidBase58
	}
	if len(s) > MaxBase58Len {
		return 0, ErrStringTooLong
	}

	var id uint64
	const maxSafeValue = ^uint64(0) / 58

	for i := 0; i < len(s); i++ {
		if decodeBase58Map[s[i]] == 0xFF {
			return 0, ErrInvalidBase58
		}

		if id > maxSafeValue {
			return 0, ErrIntegerOverflow
		}

		next := id*58 + uint64(decodeBase58Map[s[i]])
		if next < id {
			return 0, ErrIntegerOverflow
		}
		id = next
	}

	return id, nil
}

// encodeBase62 encodes a uint64 to a URL-safe base62 string.
func encodeBase62(id uint64) string {
	if id == 0 {
		return "0" // First character of the alphabet
	}

	if id < 62 {
		return string(encodeBase62Map[id])
	}

	b := make([]byte, 0, MaxBase62Len)

	for id >= 62 {
		b = append(b, encodeBase62Map[id%62])
		id /= 62
	}
	b = append(b, encodeBase62Map[id])

	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return string(b)
}

// decodeBase62 decodes a URL-safe base62 string to uint64.
func decodeBase62(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, ErrInvalidBase62
	}
	if len(s) > MaxBase62Len {
		return 0, ErrStringTooLong
	}

	var id uint64
	const maxSafeValue = ^uint64(0) / 62

	for i := 0; i < len(s); i++ {
		if decodeBase62Map[s[i]] == 0xFF {
			return 0, ErrInvalidBase62
		}

		if id > maxSafeValue {
			return 0, ErrIntegerOverflow
		}

		next := id*62 + uint64(decodeBase62Map[s[i]])
		if next < id {
			return 0, ErrIntegerOverflow
		}
		id = next
	}

	return id, nil
}

// encodeHex encodes a uint64 to a lowercase hexadecimal string using
// bitshifting.
func encodeHex(id uint64) string {
	if id == 0 {
		return "0"
	}

	b := make([]byte, 0, MaxHexLen)

	for id > 0 {
		b = append(b, encodeHexMap[id&0x0F]) // 0x0F = 0b1111 (4 bits)
		id >>= 4
	}

	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return string(b)
}

// decodeHex decodes a hexadecimal string to uint64 using the lookup table.
// Supports both uppercase and lowercase.
func decodeHex(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, ErrInvalidHex
	}
	if len(s) > MaxHexLen {
		return 0, ErrStringTooLong
	}

	var id uint64
	const maxSafeValue = ^uint64(0) >> 4

	for i := 0; i < len(s); i++ {
		if decodeHexMap[s[i]] == 0xFF {
			return 0, ErrInvalidHex
		}

		if id > maxSafeValue {
			return 0, ErrIntegerOverflow
		}

		id = (id << 4) + uint64(decodeHexMap[s[i]])
	}

	return id, nil
}
