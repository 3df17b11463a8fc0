// Package snowid - frontend.go provides the stateless frontend ID producer.
//
// Frontend IDs carry no machine ID or sequence: uniqueness within a
// millisecond rests entirely on 22 bits of cryptographic randomness. No
// state is retained between calls and no collision avoidance is attempted
// beyond the birthday bound those 22 bits imply, which is the right trade
// for producers that cannot keep sequence state (browsers, edge functions,
// short-lived processes).

package snowid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// FrontendConfig holds configuration for a FrontendFactory.
//
// Both fields exist for tests and simulations; the zero value selects the
// real clock and crypto/rand.
type FrontendConfig struct {
	// TimeSource supplies the current time in milliseconds since the Unix
	// epoch. Default: time.Now().UnixMilli
	TimeSource func() int64

	// Rand supplies cryptographically secure random bytes. Exactly 4 bytes
	// are consumed per generated ID. Default: crypto/rand.Reader
	Rand io.Reader
}

// FrontendFactory produces frontend IDs.
//
// The factory holds no mutable state and is trivially safe for concurrent,
// unsynchronized use.
type FrontendFactory struct {
	now  func() int64
	rand io.Reader
}

// NewFrontendFactory creates a frontend ID factory.
func NewFrontendFactory(cfg FrontendConfig) *FrontendFactory {
	if cfg.TimeSource == nil {
		cfg.TimeSource = func() int64 { return time.Now().UnixMilli() }
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Reader
	}
	return &FrontendFactory{now: cfg.TimeSource, rand: cfg.Rand}
}

// Generate creates a new frontend ID.
//
// It reads the current millisecond, draws exactly 4 random bytes,
// interprets them as a big-endian uint32, and keeps the low 22 bits. The
// flag bit is always 0. Fails with ErrTimestampOverflow under the same
// 41-bit bound as the backend generator, or with the random source's error
// if it cannot supply 4 bytes.
func (f *FrontendFactory) Generate() (ID, error) {
	timestamp := f.now()

	adjusted := timestamp - Epoch
	if adjusted < 0 || adjusted > MaxTimestamp {
		return 0, newOverflowError(timestamp, SourceFrontend, 0)
	}

	var buf [4]byte
	if _, err := io.ReadFull(f.rand, buf[:]); err != nil {
		return 0, fmt.Errorf("reading randomness: %w", err)
	}

	// Top 10 bits of the 32 drawn are discarded.
	randomness := binary.BigEndian.Uint32(buf[:]) & MaxRandomness

	return ID(packFrontend(adjusted, randomness)), nil
}

// MustGenerate generates a frontend ID and panics on error.
func (f *FrontendFactory) MustGenerate() ID {
	id, err := f.Generate()
	if err != nil {
		panic(err)
	}
	return id
}

// defaultFrontendFactory backs the package-level GenerateFrontendID. Unlike
// the default backend generator it needs no lazy error handling: the zero
// config cannot fail.
var defaultFrontendFactory = NewFrontendFactory(FrontendConfig{})

// GenerateFrontendID creates a frontend ID using the real clock and
// crypto/rand.
//
// Example:
//
//	id, err := snowid.GenerateFrontendID()
//	c := snowid.Decode(id)
//	// c.Source == snowid.SourceFrontend
func GenerateFrontendID() (ID, error) {
	return defaultFrontendFactory.Generate()
}

// MustGenerateFrontendID generates a frontend ID and panics on error.
func MustGenerateFrontendID() ID {
	id, err := GenerateFrontendID()
	if err != nil {
		panic(err)
	}
	return id
}
