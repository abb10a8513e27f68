// Package splib defines the speech-unit inventory access layer used by the
// synthesis pipeline: one polymorphic contract over a persisted voice
// database of phonemes, per-unit context/prosody metadata, and raw waveform
// segments. Concrete storage backends live in splib/backends.
package splib

// PhonemeCode is the dense internal identifier assigned to a phoneme symbol
// by an initialized library. Valid codes occupy [0, PhonemeCount()) and are
// only meaningful relative to the instance that issued them; compare
// InstanceID before reusing a stored code against another accessor.
type PhonemeCode int32

// InvalidCode marks a symbol the library does not support. Resolving an
// unknown symbol is a normal outcome, not an error.
const InvalidCode PhonemeCode = -1

// Valid reports whether the code could name a phoneme in a library with the
// given phoneme count.
func (c PhonemeCode) Valid(phonemeCount int) bool {
	return c >= 0 && int(c) < phonemeCount
}

// AudioFormat is the fixed sample format shared by every waveform a library
// returns. It never varies per unit within one library instance.
type AudioFormat struct {
	SamplesPerSecond int // Sample rate in Hz
	BitsPerSample    int // Sample precision (8 or 16)
	Channels         int // Channel count (1 = mono)
}

// BytesPerSample returns the size of one frame across all channels.
func (f AudioFormat) BytesPerSample() int {
	return f.BitsPerSample / 8 * f.Channels
}

// Validate checks the format triple for values no PCM library can carry.
func (f AudioFormat) Validate() error {
	if f.SamplesPerSecond <= 0 {
		return NewLibError(ErrInvalidConfig, "", "format").
			WithContext("samples_per_second", f.SamplesPerSecond)
	}
	if f.BitsPerSample != 8 && f.BitsPerSample != 16 {
		return NewLibError(ErrInvalidConfig, "", "format").
			WithContext("bits_per_sample", f.BitsPerSample)
	}
	if f.Channels <= 0 {
		return NewLibError(ErrInvalidConfig, "", "format").
			WithContext("channels", f.Channels)
	}
	return nil
}

// Accessor is the contract every physical voice-library backend satisfies.
//
// Lifecycle: an accessor starts Uninitialized, becomes Ready after a
// successful Initialize, and is Terminated after Terminate. Data queries
// outside Ready fail with ErrNotReady or ErrTerminated; re-initializing a
// non-Uninitialized instance fails with ErrAlreadyInitialized.
//
// Concurrency: data queries against a Ready instance are read-only and safe
// to issue from multiple goroutines. Initialize and Terminate are not safe
// to race with queries or with each other.
type Accessor interface {
	// Initialize opens the backing store at path and loads the phoneme
	// table and descriptor. On failure the instance stays Uninitialized
	// with no partial state.
	Initialize(path string) error

	// Terminate releases every resource acquired by Initialize. Calling it
	// on an instance that never initialized is a successful no-op.
	Terminate() error

	// IsReady reports whether the accessor accepts data queries.
	IsReady() bool

	// InstanceID identifies one initialized library instance. Phoneme codes
	// and unit indices are comparable only between equal instance IDs.
	// Empty until Initialize succeeds.
	InstanceID() string

	// CodeFromPhoneme resolves a phoneme symbol to its internal code,
	// returning InvalidCode for unknown or unsupported symbols.
	CodeFromPhoneme(symbol string) PhonemeCode

	// PhonemeFromCode is the inverse mapping; it returns "" for a code
	// outside [0, PhonemeCount()).
	PhonemeFromCode(code PhonemeCode) string

	// PhonemeCount returns the number of distinct phoneme codes, defining
	// the valid code range.
	PhonemeCount() int

	// UnitCount returns the number of candidate units stored for code.
	UnitCount(code PhonemeCode) (int, error)

	// ContextLabels retrieves up to capacity context labels for code along
	// with the true number of units available. Callers detect truncation
	// by comparing the returned count against len(labels).
	ContextLabels(code PhonemeCode, capacity int) (labels []ContextLabel, total int, err error)

	// ContextLabel retrieves the context label of one unit.
	ContextLabel(code PhonemeCode, index int) (ContextLabel, error)

	// ProsodyTag retrieves the prosodic annotation of one unit.
	ProsodyTag(code PhonemeCode, index int) (ProsodyTag, error)

	// WaveLength returns the exact byte length of a unit's waveform without
	// transferring data, so callers can size buffers before Wave.
	WaveLength(code PhonemeCode, index int) (int, error)

	// Wave retrieves up to capacity bytes of a unit's waveform along with
	// the unit's true byte length. When capacity >= WaveLength the returned
	// bytes are the complete segment, byte-exact.
	Wave(code PhonemeCode, index int, capacity int) (data []byte, length int, err error)

	// Descriptor returns the library's static metadata. Valid any time
	// after a successful Initialize, including after Terminate.
	Descriptor() Descriptor

	// Format returns the audio format shared by all waveforms.
	Format() AudioFormat
}
