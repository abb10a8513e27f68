package badgerlib

import "github.com/unitvox/voicebank/splib"

// manifestRecord is the msgpack shape of the library-wide record.
type manifestRecord struct {
	Name      string   `msgpack:"name"`
	Gender    string   `msgpack:"gender"`
	Age       int      `msgpack:"age"`
	Variant   int      `msgpack:"variant"`
	Languages []string `msgpack:"languages"`
	Accents   []string `msgpack:"accents"`

	SamplesPerSecond int `msgpack:"samples_per_second"`
	BitsPerSample    int `msgpack:"bits_per_sample"`
	Channels         int `msgpack:"channels"`

	// Symbols in code order; Counts holds the unit count per code.
	Symbols []string `msgpack:"symbols"`
	Counts  []int    `msgpack:"counts"`
}

func (r *manifestRecord) descriptor() splib.Descriptor {
	return splib.Descriptor{
		Gender:    r.Gender,
		Age:       r.Age,
		Variant:   r.Variant,
		Name:      r.Name,
		Languages: r.Languages,
		Accents:   r.Accents,
	}
}

func (r *manifestRecord) audioFormat() splib.AudioFormat {
	return splib.AudioFormat{
		SamplesPerSecond: r.SamplesPerSecond,
		BitsPerSample:    r.BitsPerSample,
		Channels:         r.Channels,
	}
}

// unitRecord is the msgpack shape of one unit's metadata. The wave length
// lives here so WaveLength never loads segment bytes.
type unitRecord struct {
	Left        string `msgpack:"left"`
	Right       string `msgpack:"right"`
	SyllablePos int    `msgpack:"syllable_pos"`
	WordPos     int    `msgpack:"word_pos"`
	Stressed    bool   `msgpack:"stressed"`

	PitchMeanHz  float64 `msgpack:"pitch_mean_hz"`
	PitchRangeHz float64 `msgpack:"pitch_range_hz"`
	DurationMs   float64 `msgpack:"duration_ms"`
	Energy       float64 `msgpack:"energy"`
	Stress       int     `msgpack:"stress"`

	WaveLen int `msgpack:"wave_len"`
}

func (r *unitRecord) label() splib.PhoneticContext {
	return splib.PhoneticContext{
		LeftPhoneme:  r.Left,
		RightPhoneme: r.Right,
		SyllablePos:  r.SyllablePos,
		WordPos:      r.WordPos,
		Stressed:     r.Stressed,
	}
}

func (r *unitRecord) tag() splib.PitchProsody {
	return splib.PitchProsody{
		PitchMeanHz:  r.PitchMeanHz,
		PitchRangeHz: r.PitchRangeHz,
		DurationMs:   r.DurationMs,
		Energy:       r.Energy,
		StressLevel:  r.Stress,
	}
}
