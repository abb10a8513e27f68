package memlib

import "github.com/unitvox/voicebank/splib"

// Builder assembles an in-memory Library. Phoneme codes are assigned in
// the order symbols first appear; the assembled accessor still has to be
// Initialized before it answers queries.
type Builder struct {
	desc    splib.Descriptor
	format  splib.AudioFormat
	symbols []string
	staged  map[string][]unit
}

// NewBuilder creates a builder preloaded with a one-language neutral
// descriptor and 16-bit 16 kHz mono audio, so small test libraries only
// have to add units.
func NewBuilder() *Builder {
	return &Builder{
		desc: splib.Descriptor{
			Gender:    "neutral",
			Age:       30,
			Variant:   1,
			Name:      "memlib",
			Languages: []string{"en"},
			Accents:   []string{""},
		},
		format: splib.AudioFormat{
			SamplesPerSecond: 16000,
			BitsPerSample:    16,
			Channels:         1,
		},
		staged: make(map[string][]unit),
	}
}

// WithDescriptor replaces the library descriptor.
func (b *Builder) WithDescriptor(desc splib.Descriptor) *Builder {
	b.desc = desc
	return b
}

// WithFormat replaces the audio format.
func (b *Builder) WithFormat(format splib.AudioFormat) *Builder {
	b.format = format
	return b
}

// AddUnit appends one candidate unit for symbol. The first AddUnit for a
// new symbol claims the next phoneme code.
func (b *Builder) AddUnit(symbol string, label splib.ContextLabel, tag splib.ProsodyTag, wave []byte) *Builder {
	if _, seen := b.staged[symbol]; !seen {
		b.symbols = append(b.symbols, symbol)
		b.staged[symbol] = nil
	}
	w := make([]byte, len(wave))
	copy(w, wave)
	b.staged[symbol] = append(b.staged[symbol], unit{label: label, tag: tag, wave: w})
	return b
}

// AddPhoneme registers a symbol with no units yet, claiming its code.
func (b *Builder) AddPhoneme(symbol string) *Builder {
	if _, seen := b.staged[symbol]; !seen {
		b.symbols = append(b.symbols, symbol)
		b.staged[symbol] = nil
	}
	return b
}

// Build produces the uninitialized Library.
func (b *Builder) Build() *Library {
	symbols := make([]string, len(b.symbols))
	copy(symbols, b.symbols)
	staged := make(map[string][]unit, len(b.staged))
	for sym, units := range b.staged {
		staged[sym] = append([]unit(nil), units...)
	}
	return &Library{
		life:    splib.NewLifecycle(),
		desc:    b.desc,
		format:  b.format,
		symbols: symbols,
		staged:  staged,
	}
}
