// Package snowid - errors.go provides custom error types with rich context.
//
// These error types carry the timing and configuration details needed to
// debug NTP issues, exhausted sequence space, or bad machine ID assignment,
// while remaining compatible with errors.Is() / errors.As() chains.

package snowid

import (
	"errors"
	"fmt"
	"time"
)

// Errors returned by the snowid generators.
var (
	// ErrInvalidMachineID is returned at construction time when the machine ID
	// is not in range [0, 1023].
	ErrInvalidMachineID = errors.New("machine ID must be between 0 and 1023")

	// ErrClockRegression is returned when the wall clock reads earlier than
	// the last observed tick. The generator refuses to produce an ID in that
	// state because it could reissue a timestamp/sequence pair already
	// emitted. Check NTP configuration if this occurs frequently.
	ErrClockRegression = errors.New("clock moved backwards")

	// ErrTimestampOverflow is returned when the epoch-relative timestamp no
	// longer fits in 41 bits. This bounds the usable lifetime of the layout
	// to ~69.7 years past the custom epoch.
	ErrTimestampOverflow = errors.New("timestamp exceeds 41-bit capacity")

	// ErrContextCanceled is returned when the context is canceled during ID
	// generation, typically while waiting out a sequence overflow.
	ErrContextCanceled = errors.New("context canceled")

	// ErrInvalidConfig is returned when Config validation fails.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ClockRegressionError reports a wall clock reading earlier than the last
// tick the generator observed.
//
// Example usage:
//
//	if _, err := gen.Generate(); err != nil {
//	    var clockErr *snowid.ClockRegressionError
//	    if errors.As(err, &clockErr) {
//	        log.Printf("clock went back %dms on machine %d",
//	            clockErr.Regression(), clockErr.MachineID)
//	    }
//	}
type ClockRegressionError struct {
	// CurrentTimestamp is what the time source reported, in milliseconds
	// since the Unix epoch.
	CurrentTimestamp int64

	// LastTimestamp is the last tick an ID was issued for.
	LastTimestamp int64

	// MachineID identifies the generator that refused to produce an ID.
	MachineID int64
}

// Error implements the error interface.
func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("clock moved backwards: current=%d last=%d regression=%dms machine=%d",
		e.CurrentTimestamp, e.LastTimestamp, e.Regression(), e.MachineID)
}

// Unwrap returns ErrClockRegression for errors.Is() compatibility.
func (e *ClockRegressionError) Unwrap() error {
	return ErrClockRegression
}

// Regression returns the backward jump in milliseconds (always positive).
func (e *ClockRegressionError) Regression() int64 {
	return e.LastTimestamp - e.CurrentTimestamp
}

// RegressionDuration returns the backward jump as a time.Duration.
func (e *ClockRegressionError) RegressionDuration() time.Duration {
	return time.Duration(e.Regression()) * time.Millisecond
}

// ConfigError reports which configuration field failed validation and why.
//
// Example usage:
//
//	if _, err := snowid.NewWithConfig(cfg); err != nil {
//	    var configErr *snowid.ConfigError
//	    if errors.As(err, &configErr) {
//	        log.Printf("bad config: %s=%s (%s)",
//	            configErr.Field, configErr.Value, configErr.Reason)
//	    }
//	}
type ConfigError struct {
	// Field is the name of the configuration field that failed validation.
	Field string

	// Value is the invalid value, formatted for logging.
	Value string

	// Reason is a human-readable explanation of why the value is invalid.
	Reason string

	// Constraint describes the valid range.
	// Example: "must be between 0 and 1023"
	Constraint string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%s (%s) - %s",
		e.Field, e.Value, e.Reason, e.Constraint)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// OverflowError reports a timestamp past the 41-bit limit. Seeing one means
// the deployment has outlived the layout's epoch range and needs a new epoch
// (and therefore a new, incompatible ID space).
type OverflowError struct {
	// Timestamp is the wall-clock reading in milliseconds since the Unix
	// epoch that no longer fits.
	Timestamp int64

	// Source identifies which producer hit the limit.
	Source Source

	// MachineID identifies the backend generator, if Source is SourceBackend.
	MachineID int64
}

// Error implements the error interface.
func (e *OverflowError) Error() string {
	if e.Source == SourceBackend {
		return fmt.Sprintf("timestamp overflow: %d exceeds 41-bit range from epoch %d (machine=%d)",
			e.Timestamp, Epoch, e.MachineID)
	}
	return fmt.Sprintf("timestamp overflow: %d exceeds 41-bit range from epoch %d (frontend)",
		e.Timestamp, Epoch)
}

// Unwrap returns ErrTimestampOverflow for errors.Is() compatibility.
func (e *OverflowError) Unwrap() error {
	return ErrTimestampOverflow
}

// IsClockRegression checks if an error is or wraps a ClockRegressionError.
func IsClockRegression(err error) bool {
	var clockErr *ClockRegressionError
	return errors.As(err, &clockErr)
}

// IsConfigError checks if an error is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsTimestampOverflow checks if an error is or wraps an OverflowError.
func IsTimestampOverflow(err error) bool {
	var overflowErr *OverflowError
	return errors.As(err, &overflowErr)
}

// GetClockRegressionError extracts the ClockRegressionError from an error
// chain. Returns the error and true if found, nil and false otherwise.
func GetClockRegressionError(err error) (*ClockRegressionError, bool) {
	var clockErr *ClockRegressionError
	if errors.As(err, &clockErr) {
		return clockErr, true
	}
	return nil, false
}

// GetConfigError extracts the ConfigError from an error chain.
func GetConfigError(err error) (*ConfigError, bool) {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr, true
	}
	return nil, false
}

// GetOverflowError extracts the OverflowError from an error chain.
func GetOverflowError(err error) (*OverflowError, bool) {
	var overflowErr *OverflowError
	if errors.As(err, &overflowErr) {
		return overflowErr, true
	}
	return nil, false
}

// newClockRegressionError creates a ClockRegressionError with consistent
// formatting.
func newClockRegressionError(currentTs, lastTs, machineID int64) *ClockRegressionError {
	return &ClockRegressionError{
		CurrentTimestamp: currentTs,
		LastTimestamp:    lastTs,
		MachineID:        machineID,
	}
}

// newConfigError creates a ConfigError with consistent formatting.
func newConfigError(field, value, reason, constraint string) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Reason:     reason,
		Constraint: constraint,
	}
}

// newOverflowError creates an OverflowError for the given producer.
func newOverflowError(timestamp int64, source Source, machineID int64) *OverflowError {
	return &OverflowError{
		Timestamp: timestamp,
		Source:    source,
		MachineID: machineID,
	}
}
