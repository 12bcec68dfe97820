// Package converterror defines the typed errors surfaced by the conversion
// pipeline. Every error aborts the run; there are no retries.
package converterror

import "fmt"

// ConfigError reports invalid configuration: a malformed column map, a bad
// skiprows value, an unknown encoding name or date layout.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

// InputError reports that the input file could not be read or decoded.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("cannot read input file %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// RowParseError reports that a specific cell of a specific row could not be
// parsed. Line is 1-based and counted from the start of the raw file, skipped
// header lines included.
type RowParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("row %d: failed to parse %s='%s': %v",
		e.Line, e.Field, e.Value, e.Err)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}

// OutputError reports that the OFX document could not be written to its
// destination path.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("cannot write output file %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}
