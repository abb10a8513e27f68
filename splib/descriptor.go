package splib

import "fmt"

// Descriptor is the static metadata of a whole voice library. Backends
// populate it during Initialize and treat it as immutable afterward.
//
// Languages and Accents are parallel: position i of Accents is the accent
// for position i of Languages, and an accent is "" when the language has no
// distinguished accent. "zh-cmn" with accent "zh-HK" means Putonghua spoken
// with a Hong Kong accent; "zh-yue" with accent "" does not care.
type Descriptor struct {
	Gender    string   // Speaker gender ("female", "male", "neutral")
	Age       int      // Speaker age in years
	Variant   int      // Disambiguates same gender/age speakers
	Name      string   // Display name of the voice
	Languages []string // Languages the speaker can speak
	Accents   []string // Accents, one per language
}

// Validate checks the parallel-slice invariant and basic field sanity.
func (d Descriptor) Validate() error {
	if len(d.Languages) != len(d.Accents) {
		return NewLibError(ErrInvalidDescriptor, "", "descriptor").
			WithContext("languages", len(d.Languages)).
			WithContext("accents", len(d.Accents))
	}
	if len(d.Languages) == 0 {
		return NewLibError(ErrInvalidDescriptor, "", "descriptor").
			WithContext("reason", "no languages")
	}
	for i, lang := range d.Languages {
		if lang == "" {
			return NewLibError(ErrInvalidDescriptor, "", "descriptor").
				WithContext("reason", fmt.Sprintf("empty language at %d", i))
		}
	}
	if d.Age < 0 {
		return NewLibError(ErrInvalidDescriptor, "", "descriptor").
			WithContext("age", d.Age)
	}
	return nil
}

// Locale renders the language/accent pair at position i, in the
// "language:accent" form when an accent is present.
func (d Descriptor) Locale(i int) string {
	if i < 0 || i >= len(d.Languages) {
		return ""
	}
	if i < len(d.Accents) && d.Accents[i] != "" {
		return d.Languages[i] + ":" + d.Accents[i]
	}
	return d.Languages[i]
}
