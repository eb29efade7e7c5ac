package internal

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned when no storage base path can be
// resolved on the host. It is the only hard failure discovery can signal;
// everything else degrades to logged skips.
var ErrUnsupportedPlatform = errors.New("unsupported platform: cannot resolve a storage base path")

// SourceReadError represents a session file that cannot be opened or is
// not valid JSON. Caught at the adapter boundary, never fatal.
type SourceReadError struct {
	Path string
	Op   string // "open", "stat", "parse"
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("source read error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// ExportError represents errors writing an export sink
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
