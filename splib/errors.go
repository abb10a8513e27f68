package splib

import "errors"

// Common errors for the speech-library access layer.
var (
	// Lifecycle errors
	ErrNotReady           = errors.New("speech library is not initialized")
	ErrTerminated         = errors.New("speech library has been terminated")
	ErrAlreadyInitialized = errors.New("speech library is already initialized")
	ErrStateTransition    = errors.New("invalid lifecycle transition")

	// Query-contract errors
	ErrInvalidCode     = errors.New("phoneme code out of range")
	ErrIndexOutOfRange = errors.New("unit index out of range")
	ErrInvalidCapacity = errors.New("negative retrieval capacity")

	// Store errors
	ErrLibraryNotFound   = errors.New("voice library not found at path")
	ErrCorruptLibrary    = errors.New("voice library data is corrupt")
	ErrInvalidDescriptor = errors.New("invalid library descriptor")

	// Configuration errors
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrBackendUnknown = errors.New("unknown library backend")
)

// IsContractViolation reports whether an error marks a caller-contract
// violation (bad code, index, or capacity) rather than a store or
// lifecycle failure. Contract violations are side-effect free: the query
// refuses rather than answering over absent data.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrInvalidCode) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrInvalidCapacity)
}

// LibError carries an access-layer error with its backend and operation.
type LibError struct {
	Err     error                  // The underlying sentinel
	Backend string                 // Backend name, "" for the contract layer
	Op      string                 // Operation being performed
	Context map[string]interface{} // Additional context
}

// Error implements the error interface.
func (e *LibError) Error() string {
	msg := e.Err.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Backend != "" {
		msg = e.Backend + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *LibError) Unwrap() error {
	return e.Err
}

// NewLibError creates a new access-layer error.
func NewLibError(err error, backend, op string) *LibError {
	return &LibError{
		Err:     err,
		Backend: backend,
		Op:      op,
	}
}

// WithContext adds context to the error.
func (e *LibError) WithContext(key string, value interface{}) *LibError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}
