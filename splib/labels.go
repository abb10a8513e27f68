package splib

// LabelKind discriminates concrete ContextLabel variants. Backends attach
// their own metadata shapes behind the shared retrieval signature; callers
// branch on Kind and type-switch instead of downcasting blindly.
type LabelKind int

const (
	// LabelUnknown is the zero value, carried by no real label.
	LabelUnknown LabelKind = iota
	// LabelPhonetic marks a PhoneticContext.
	LabelPhonetic
)

// String returns the string representation of the kind.
func (k LabelKind) String() string {
	switch k {
	case LabelPhonetic:
		return "phonetic"
	default:
		return "unknown"
	}
}

// ContextLabel is per-unit linguistic-context metadata. The base contract
// guarantees only the Kind discriminator; fields live on concrete variants.
type ContextLabel interface {
	Kind() LabelKind
}

// PhoneticContext is the common context-label variant: the phonetic
// environment a unit was recorded in.
type PhoneticContext struct {
	LeftPhoneme  string // Symbol preceding the unit, "" at utterance start
	RightPhoneme string // Symbol following the unit, "" at utterance end
	SyllablePos  int    // Zero-based position within the syllable
	WordPos      int    // Zero-based position within the word
	Stressed     bool   // Whether the carrying syllable is stressed
}

// Kind implements ContextLabel.
func (PhoneticContext) Kind() LabelKind { return LabelPhonetic }

// TagKind discriminates concrete ProsodyTag variants. It is an independent
// hierarchy from LabelKind and is never unified with it.
type TagKind int

const (
	// TagUnknown is the zero value, carried by no real tag.
	TagUnknown TagKind = iota
	// TagPitch marks a PitchProsody.
	TagPitch
)

// String returns the string representation of the kind.
func (k TagKind) String() string {
	switch k {
	case TagPitch:
		return "pitch"
	default:
		return "unknown"
	}
}

// ProsodyTag is per-unit prosodic annotation, same polymorphism discipline
// as ContextLabel.
type ProsodyTag interface {
	Kind() TagKind
}

// PitchProsody is the common prosody-tag variant.
type PitchProsody struct {
	PitchMeanHz  float64 // Mean fundamental frequency over the unit
	PitchRangeHz float64 // F0 range over the unit
	DurationMs   float64 // Unit duration in milliseconds
	Energy       float64 // RMS energy, normalized to [0, 1]
	StressLevel  int     // 0 = unstressed, 1 = secondary, 2 = primary
}

// Kind implements ProsodyTag.
func (PitchProsody) Kind() TagKind { return TagPitch }
