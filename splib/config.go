package splib

// Backend names accepted by Config and the backends registry.
const (
	BackendMemory = "memory"
	BackendDir    = "dir"
	BackendBadger = "badger"
)

// Config selects and tunes a library backend.
type Config struct {
	// Backend is the backend name: "memory", "dir" or "badger".
	Backend string

	// Path is the location of the backing store, passed to Initialize.
	Path string

	// CacheMaxBytes bounds the in-process wave cache used by file-backed
	// backends. Zero disables caching.
	CacheMaxBytes int64

	// Badger holds badger-specific settings.
	Badger BadgerConfig
}

// BadgerConfig holds settings specific to the badger backend.
type BadgerConfig struct {
	// InMemory runs badger without disk persistence. Useful for tests.
	InMemory bool
}

// DefaultConfig returns the default library configuration.
func DefaultConfig() Config {
	return Config{
		Backend:       BackendDir,
		CacheMaxBytes: 16 << 20,
	}
}

// Validate checks the configuration for values no backend can serve.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendDir, BackendBadger:
	default:
		return NewLibError(ErrBackendUnknown, "", "config").
			WithContext("backend", c.Backend)
	}
	if c.CacheMaxBytes < 0 {
		return NewLibError(ErrInvalidConfig, "", "config").
			WithContext("cache_max_bytes", c.CacheMaxBytes)
	}
	if c.Backend != BackendMemory && c.Path == "" && !c.Badger.InMemory {
		return NewLibError(ErrInvalidConfig, "", "config").
			WithContext("reason", "library path required")
	}
	return nil
}
