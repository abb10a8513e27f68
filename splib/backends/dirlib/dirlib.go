// Package dirlib provides a directory-backed voice-library backend: a
// voicelib.yaml manifest describing the phoneme inventory and per-unit
// metadata, next to raw PCM segment files read lazily on demand. Hot
// segments are kept in a bounded LRU cache.
package dirlib

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/unitvox/voicebank/internal/cache"
	"github.com/unitvox/voicebank/splib"
)

const backendName = "dirlib"

// Config tunes the directory backend.
type Config struct {
	// CacheMaxBytes bounds the in-process wave cache. Zero disables it.
	CacheMaxBytes int64
}

type unitMeta struct {
	wavePath string // absolute path of the segment file
	waveLen  int
	label    splib.PhoneticContext
	tag      splib.PitchProsody
}

// Library implements splib.Accessor over a manifest-described directory.
type Library struct {
	cfg    Config
	life   *splib.Lifecycle
	id     string
	root   string
	table  *splib.CodeTable
	units  [][]unitMeta
	desc   splib.Descriptor
	format splib.AudioFormat
	waves  *cache.WaveCache
}

// New creates an uninitialized directory-backed library.
func New(cfg Config) *Library {
	return &Library{
		cfg:  cfg,
		life: splib.NewLifecycle(),
	}
}

// Initialize loads and verifies the manifest at path. On any failure the
// instance stays Uninitialized with nothing held open.
func (l *Library) Initialize(path string) error {
	if err := l.life.CheckUninitialized(); err != nil {
		return err
	}

	m, err := loadManifest(path)
	if err != nil {
		return err
	}

	desc := m.descriptor()
	if err := desc.Validate(); err != nil {
		return err
	}
	format := m.audioFormat()
	if err := format.Validate(); err != nil {
		return err
	}
	table, err := splib.NewCodeTable(m.symbols())
	if err != nil {
		return err
	}
	if err := m.verifyWaves(path); err != nil {
		return err
	}

	units := make([][]unitMeta, len(m.Phonemes))
	for code, p := range m.Phonemes {
		metas := make([]unitMeta, len(p.Units))
		for i, u := range p.Units {
			metas[i] = unitMeta{
				wavePath: filepath.Join(path, filepath.FromSlash(u.Wave)),
				waveLen:  u.Bytes,
				label: splib.PhoneticContext{
					LeftPhoneme:  u.Context.Left,
					RightPhoneme: u.Context.Right,
					SyllablePos:  u.Context.SyllablePos,
					WordPos:      u.Context.WordPos,
					Stressed:     u.Context.Stressed,
				},
				tag: splib.PitchProsody{
					PitchMeanHz:  u.Prosody.PitchMeanHz,
					PitchRangeHz: u.Prosody.PitchRangeHz,
					DurationMs:   u.Prosody.DurationMs,
					Energy:       u.Prosody.Energy,
					StressLevel:  u.Prosody.Stress,
				},
			}
		}
		units[code] = metas
	}

	l.root = path
	l.table = table
	l.units = units
	l.desc = desc
	l.format = format
	if l.cfg.CacheMaxBytes > 0 {
		l.waves = cache.New(l.cfg.CacheMaxBytes)
	}
	l.id = uuid.NewString()

	log.Debug("voice library opened",
		"backend", backendName,
		"path", path,
		"phonemes", table.Len(),
		"voice", desc.Name)
	return l.life.Transition(splib.StateReady)
}

// Terminate drops the decoded tables and purges the wave cache. Safe to
// call before Initialize ever ran.
func (l *Library) Terminate() error {
	if l.life.Current() == splib.StateTerminated {
		return nil
	}
	if l.waves != nil {
		l.waves.Close()
		l.waves = nil
	}
	l.table = nil
	l.units = nil
	if l.life.Ready() {
		log.Debug("voice library closed", "backend", backendName, "path", l.root)
	}
	return l.life.Transition(splib.StateTerminated)
}

// IsReady reports whether the library accepts data queries.
func (l *Library) IsReady() bool { return l.life.Ready() }

// InstanceID identifies this initialized instance.
func (l *Library) InstanceID() string { return l.id }

// CodeFromPhoneme resolves a symbol, InvalidCode when unsupported.
func (l *Library) CodeFromPhoneme(symbol string) splib.PhonemeCode {
	if !l.life.Ready() {
		return splib.InvalidCode
	}
	return l.table.Code(symbol)
}

// PhonemeFromCode is the inverse mapping, "" outside the valid range.
func (l *Library) PhonemeFromCode(code splib.PhonemeCode) string {
	if !l.life.Ready() {
		return ""
	}
	return l.table.Symbol(code)
}

// PhonemeCount returns the number of distinct phoneme codes.
func (l *Library) PhonemeCount() int {
	if !l.life.Ready() {
		return 0
	}
	return l.table.Len()
}

// UnitCount returns the number of candidate units stored for code.
func (l *Library) UnitCount(code splib.PhonemeCode) (int, error) {
	if err := l.checkCode(code, "UnitCount"); err != nil {
		return 0, err
	}
	return len(l.units[code]), nil
}

// ContextLabels retrieves up to capacity labels plus the true unit count.
func (l *Library) ContextLabels(code splib.PhonemeCode, capacity int) ([]splib.ContextLabel, int, error) {
	if err := l.checkCode(code, "ContextLabels"); err != nil {
		return nil, 0, err
	}
	if capacity < 0 {
		return nil, 0, splib.NewLibError(splib.ErrInvalidCapacity, backendName, "ContextLabels")
	}
	all := l.units[code]
	n := len(all)
	if capacity < n {
		n = capacity
	}
	labels := make([]splib.ContextLabel, n)
	for i := 0; i < n; i++ {
		labels[i] = all[i].label
	}
	return labels, len(all), nil
}

// ContextLabel retrieves the context label of one unit.
func (l *Library) ContextLabel(code splib.PhonemeCode, index int) (splib.ContextLabel, error) {
	if err := l.checkUnit(code, index, "ContextLabel"); err != nil {
		return nil, err
	}
	return l.units[code][index].label, nil
}

// ProsodyTag retrieves the prosodic annotation of one unit.
func (l *Library) ProsodyTag(code splib.PhonemeCode, index int) (splib.ProsodyTag, error) {
	if err := l.checkUnit(code, index, "ProsodyTag"); err != nil {
		return nil, err
	}
	return l.units[code][index].tag, nil
}

// WaveLength answers from the manifest without touching the segment file.
func (l *Library) WaveLength(code splib.PhonemeCode, index int) (int, error) {
	if err := l.checkUnit(code, index, "WaveLength"); err != nil {
		return 0, err
	}
	return l.units[code][index].waveLen, nil
}

// Wave reads a unit's segment file (or serves it from the cache) and
// returns up to capacity bytes plus the true byte length.
func (l *Library) Wave(code splib.PhonemeCode, index int, capacity int) ([]byte, int, error) {
	if err := l.checkUnit(code, index, "Wave"); err != nil {
		return nil, 0, err
	}
	if capacity < 0 {
		return nil, 0, splib.NewLibError(splib.ErrInvalidCapacity, backendName, "Wave")
	}

	meta := l.units[code][index]
	wave, err := l.readWave(code, index, meta)
	if err != nil {
		return nil, 0, err
	}

	n := len(wave)
	if capacity < n {
		n = capacity
	}
	data := make([]byte, n)
	copy(data, wave[:n])
	return data, len(wave), nil
}

// Descriptor returns the library's static metadata.
func (l *Library) Descriptor() splib.Descriptor { return l.desc }

// Format returns the audio format shared by all waveforms.
func (l *Library) Format() splib.AudioFormat { return l.format }

// CacheStats exposes wave-cache counters for diagnostics. Zero when the
// cache is disabled.
func (l *Library) CacheStats() cache.Stats {
	if l.waves == nil {
		return cache.Stats{}
	}
	return l.waves.Stats()
}

func (l *Library) readWave(code splib.PhonemeCode, index int, meta unitMeta) ([]byte, error) {
	key := fmt.Sprintf("%d/%d", code, index)
	if l.waves != nil {
		if wave, ok := l.waves.Get(key); ok {
			return wave, nil
		}
	}

	wave, err := os.ReadFile(meta.wavePath)
	if err != nil {
		return nil, splib.NewLibError(splib.ErrCorruptLibrary, backendName, "Wave").
			WithContext("wave", meta.wavePath).
			WithContext("reason", err.Error())
	}
	// The file was verified at Initialize; a size drift since then means
	// the store changed underneath the instance.
	if len(wave) != meta.waveLen {
		return nil, splib.NewLibError(splib.ErrCorruptLibrary, backendName, "Wave").
			WithContext("wave", meta.wavePath).
			WithContext("declared", meta.waveLen).
			WithContext("actual", len(wave))
	}
	if l.waves != nil {
		// An oversized segment simply bypasses the cache.
		_ = l.waves.Put(key, wave)
	}
	return wave, nil
}

func (l *Library) checkCode(code splib.PhonemeCode, op string) error {
	if err := l.life.CheckReady(); err != nil {
		return err
	}
	if !code.Valid(l.table.Len()) {
		return splib.NewLibError(splib.ErrInvalidCode, backendName, op).
			WithContext("code", int(code))
	}
	return nil
}

func (l *Library) checkUnit(code splib.PhonemeCode, index int, op string) error {
	if err := l.checkCode(code, op); err != nil {
		return err
	}
	if index < 0 || index >= len(l.units[code]) {
		return splib.NewLibError(splib.ErrIndexOutOfRange, backendName, op).
			WithContext("code", int(code)).
			WithContext("index", index)
	}
	return nil
}
