package badgerlib

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/unitvox/voicebank/splib"
)

// Writer populates a badger store with a voice library. Build flow:
// NewWriter, SetDescriptor/SetFormat, AddUnit per segment, Commit, then
// either Close (on-disk) or Library (shared in-memory store).
type Writer struct {
	lib     *Library
	desc    splib.Descriptor
	format  splib.AudioFormat
	symbols []string
	units   map[string][]stagedUnit
}

type stagedUnit struct {
	record unitRecord
	wave   []byte
}

// NewWriter opens (creating if needed) a badger store at path. With
// inMemory set, path is ignored and the store lives until Close.
func NewWriter(path string, inMemory bool) (*Writer, error) {
	db, err := openStore(path, inMemory)
	if err != nil {
		return nil, err
	}
	lib := New(Config{InMemory: inMemory})
	lib.db = db
	return &Writer{
		lib:   lib,
		units: make(map[string][]stagedUnit),
	}, nil
}

// SetDescriptor records the library descriptor written at Commit.
func (w *Writer) SetDescriptor(desc splib.Descriptor) { w.desc = desc }

// SetFormat records the audio format written at Commit.
func (w *Writer) SetFormat(format splib.AudioFormat) { w.format = format }

// AddUnit stages one candidate unit for symbol. The first unit of a new
// symbol claims the next phoneme code.
func (w *Writer) AddUnit(symbol string, label splib.PhoneticContext, tag splib.PitchProsody, wave []byte) {
	if _, seen := w.units[symbol]; !seen {
		w.symbols = append(w.symbols, symbol)
	}
	record := unitRecord{
		Left:         label.LeftPhoneme,
		Right:        label.RightPhoneme,
		SyllablePos:  label.SyllablePos,
		WordPos:      label.WordPos,
		Stressed:     label.Stressed,
		PitchMeanHz:  tag.PitchMeanHz,
		PitchRangeHz: tag.PitchRangeHz,
		DurationMs:   tag.DurationMs,
		Energy:       tag.Energy,
		Stress:       tag.StressLevel,
		WaveLen:      len(wave),
	}
	staged := stagedUnit{record: record, wave: append([]byte(nil), wave...)}
	w.units[symbol] = append(w.units[symbol], staged)
}

// Commit validates the staged library and flushes it in one write batch.
func (w *Writer) Commit() error {
	if err := w.desc.Validate(); err != nil {
		return err
	}
	if err := w.format.Validate(); err != nil {
		return err
	}
	if _, err := splib.NewCodeTable(w.symbols); err != nil {
		return err
	}

	record := manifestRecord{
		Name:             w.desc.Name,
		Gender:           w.desc.Gender,
		Age:              w.desc.Age,
		Variant:          w.desc.Variant,
		Languages:        w.desc.Languages,
		Accents:          w.desc.Accents,
		SamplesPerSecond: w.format.SamplesPerSecond,
		BitsPerSample:    w.format.BitsPerSample,
		Channels:         w.format.Channels,
		Symbols:          w.symbols,
		Counts:           make([]int, len(w.symbols)),
	}

	wb := w.lib.db.NewWriteBatch()
	defer wb.Cancel()

	for code, symbol := range w.symbols {
		staged := w.units[symbol]
		record.Counts[code] = len(staged)
		for index, u := range staged {
			encoded, err := msgpack.Marshal(&u.record)
			if err != nil {
				return err
			}
			if err := wb.Set(unitKey(code, index), encoded); err != nil {
				return err
			}
			if err := wb.Set(waveKey(code, index), u.wave); err != nil {
				return err
			}
		}
	}

	encoded, err := msgpack.Marshal(&record)
	if err != nil {
		return err
	}
	if err := wb.Set(manifestKey, encoded); err != nil {
		return err
	}
	return wb.Flush()
}

// Library returns an accessor sharing the writer's store. The accessor
// does not own the store, so Terminate leaves it open; use this for
// in-memory libraries where Close would destroy the data.
func (w *Writer) Library() *Library {
	return w.lib
}

// Close closes the underlying store. On-disk libraries are then opened
// through a fresh accessor's Initialize.
func (w *Writer) Close() error {
	if w.lib.db == nil {
		return nil
	}
	err := w.lib.db.Close()
	w.lib.db = nil
	return err
}
