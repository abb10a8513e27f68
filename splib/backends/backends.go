// Package backends resolves a library configuration to a concrete
// Accessor implementation.
package backends

import (
	"github.com/unitvox/voicebank/splib"
	"github.com/unitvox/voicebank/splib/backends/badgerlib"
	"github.com/unitvox/voicebank/splib/backends/dirlib"
	"github.com/unitvox/voicebank/splib/backends/memlib"
)

// New creates an uninitialized accessor for the configured backend. The
// caller still runs Initialize against cfg.Path.
func New(cfg splib.Config) (splib.Accessor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case splib.BackendMemory:
		return memlib.NewBuilder().Build(), nil
	case splib.BackendDir:
		return dirlib.New(dirlib.Config{CacheMaxBytes: cfg.CacheMaxBytes}), nil
	case splib.BackendBadger:
		return badgerlib.New(badgerlib.Config{InMemory: cfg.Badger.InMemory}), nil
	default:
		return nil, splib.NewLibError(splib.ErrBackendUnknown, "", "backends.New").
			WithContext("backend", cfg.Backend)
	}
}

// Open creates the configured accessor and initializes it at cfg.Path.
// On initialization failure nothing is left open.
func Open(cfg splib.Config) (splib.Accessor, error) {
	acc, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := acc.Initialize(cfg.Path); err != nil {
		return nil, err
	}
	return acc, nil
}
