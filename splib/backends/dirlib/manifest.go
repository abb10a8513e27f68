package dirlib

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/unitvox/voicebank/splib"
)

// ManifestName is the manifest file every library directory carries.
const ManifestName = "voicelib.yaml"

// manifest is the on-disk shape of voicelib.yaml. Phoneme codes are the
// manifest order of the phonemes list.
type manifest struct {
	Name      string         `yaml:"name"`
	Gender    string         `yaml:"gender"`
	Age       int            `yaml:"age"`
	Variant   int            `yaml:"variant"`
	Languages []string       `yaml:"languages"`
	Accents   []string       `yaml:"accents"`
	Format    formatEntry    `yaml:"format"`
	Phonemes  []phonemeEntry `yaml:"phonemes"`
}

type formatEntry struct {
	SamplesPerSecond int `yaml:"samples_per_second"`
	BitsPerSample    int `yaml:"bits_per_sample"`
	Channels         int `yaml:"channels"`
}

type phonemeEntry struct {
	Symbol string      `yaml:"symbol"`
	Units  []unitEntry `yaml:"units"`
}

type unitEntry struct {
	Wave    string       `yaml:"wave"`  // path relative to the library root
	Bytes   int          `yaml:"bytes"` // declared waveform length
	Context contextEntry `yaml:"context"`
	Prosody prosodyEntry `yaml:"prosody"`
}

type contextEntry struct {
	Left        string `yaml:"left"`
	Right       string `yaml:"right"`
	SyllablePos int    `yaml:"syllable_pos"`
	WordPos     int    `yaml:"word_pos"`
	Stressed    bool   `yaml:"stressed"`
}

type prosodyEntry struct {
	PitchMeanHz  float64 `yaml:"pitch_mean_hz"`
	PitchRangeHz float64 `yaml:"pitch_range_hz"`
	DurationMs   float64 `yaml:"duration_ms"`
	Energy       float64 `yaml:"energy"`
	Stress       int     `yaml:"stress"`
}

// loadManifest reads and parses voicelib.yaml under root.
func loadManifest(root string) (*manifest, error) {
	raw, err := os.ReadFile(filepath.Join(root, ManifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, splib.NewLibError(splib.ErrLibraryNotFound, backendName, "Initialize").
			WithContext("path", root)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, splib.NewLibError(splib.ErrCorruptLibrary, backendName, "Initialize").
			WithContext("reason", err.Error())
	}
	return &m, nil
}

// descriptor maps manifest metadata to the contract descriptor.
func (m *manifest) descriptor() splib.Descriptor {
	return splib.Descriptor{
		Gender:    m.Gender,
		Age:       m.Age,
		Variant:   m.Variant,
		Name:      m.Name,
		Languages: m.Languages,
		Accents:   m.Accents,
	}
}

// audioFormat maps the manifest format block to the contract triple.
func (m *manifest) audioFormat() splib.AudioFormat {
	return splib.AudioFormat{
		SamplesPerSecond: m.Format.SamplesPerSecond,
		BitsPerSample:    m.Format.BitsPerSample,
		Channels:         m.Format.Channels,
	}
}

// symbols returns the phoneme symbols in code order.
func (m *manifest) symbols() []string {
	out := make([]string, len(m.Phonemes))
	for i, p := range m.Phonemes {
		out[i] = p.Symbol
	}
	return out
}

// verifyWaves stats every declared wave file under root and checks the
// on-disk size against the declared byte length, so a truncated library
// fails at Initialize instead of mid-synthesis.
func (m *manifest) verifyWaves(root string) error {
	for _, p := range m.Phonemes {
		for i, u := range p.Units {
			if u.Bytes < 0 || u.Wave == "" {
				return splib.NewLibError(splib.ErrCorruptLibrary, backendName, "Initialize").
					WithContext("symbol", p.Symbol).
					WithContext("index", i)
			}
			info, err := os.Stat(filepath.Join(root, filepath.FromSlash(u.Wave)))
			if err != nil {
				return splib.NewLibError(splib.ErrCorruptLibrary, backendName, "Initialize").
					WithContext("wave", u.Wave).
					WithContext("reason", err.Error())
			}
			if info.Size() != int64(u.Bytes) {
				return splib.NewLibError(splib.ErrCorruptLibrary, backendName, "Initialize").
					WithContext("wave", u.Wave).
					WithContext("declared", u.Bytes).
					WithContext("actual", info.Size())
			}
		}
	}
	return nil
}
