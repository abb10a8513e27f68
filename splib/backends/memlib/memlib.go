// Package memlib provides an in-memory voice-library backend. Libraries
// are assembled programmatically through a Builder, which makes memlib the
// reference backend for contract tests and fixtures.
package memlib

import (
	"github.com/google/uuid"

	"github.com/unitvox/voicebank/splib"
)

const backendName = "memlib"

type unit struct {
	label splib.ContextLabel
	tag   splib.ProsodyTag
	wave  []byte
}

// Library implements splib.Accessor over units held entirely in memory.
type Library struct {
	life   *splib.Lifecycle
	id     string
	table  *splib.CodeTable
	units  [][]unit
	desc   splib.Descriptor
	format splib.AudioFormat

	// Builder output, consumed by Initialize.
	symbols []string
	staged  map[string][]unit
}

// Initialize builds the code table from the staged units and transitions
// to Ready. The path argument is ignored: a memory library carries its own
// data. Initialize on a Ready or Terminated instance fails.
func (l *Library) Initialize(_ string) error {
	if err := l.life.CheckUninitialized(); err != nil {
		return err
	}
	if err := l.desc.Validate(); err != nil {
		return err
	}
	if err := l.format.Validate(); err != nil {
		return err
	}

	table, err := splib.NewCodeTable(l.symbols)
	if err != nil {
		return err
	}
	units := make([][]unit, table.Len())
	for code := 0; code < table.Len(); code++ {
		units[code] = l.staged[table.Symbol(splib.PhonemeCode(code))]
	}

	l.table = table
	l.units = units
	l.id = uuid.NewString()
	return l.life.Transition(splib.StateReady)
}

// Terminate drops the unit store. Safe to call before Initialize.
func (l *Library) Terminate() error {
	if l.life.Current() == splib.StateTerminated {
		return nil
	}
	l.table = nil
	l.units = nil
	l.staged = nil
	return l.life.Transition(splib.StateTerminated)
}

// IsReady reports whether the library accepts data queries.
func (l *Library) IsReady() bool { return l.life.Ready() }

// InstanceID identifies this initialized instance.
func (l *Library) InstanceID() string { return l.id }

// CodeFromPhoneme resolves a symbol, returning InvalidCode when the symbol
// is unsupported or the library is not Ready.
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

// WaveLength returns the byte length of a unit's waveform.
func (l *Library) WaveLength(code splib.PhonemeCode, index int) (int, error) {
	if err := l.checkUnit(code, index, "WaveLength"); err != nil {
		return 0, err
	}
	return len(l.units[code][index].wave), nil
}

// Wave retrieves up to capacity bytes of a unit's waveform plus its true
// byte length.
func (l *Library) Wave(code splib.PhonemeCode, index int, capacity int) ([]byte, int, error) {
	if err := l.checkUnit(code, index, "Wave"); err != nil {
		return nil, 0, err
	}
	if capacity < 0 {
		return nil, 0, splib.NewLibError(splib.ErrInvalidCapacity, backendName, "Wave")
	}
	wave := l.units[code][index].wave
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
