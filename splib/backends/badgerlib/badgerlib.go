// Package badgerlib provides a voice-library backend persisted in a
// BadgerDB key-value store: one manifest record for the descriptor, audio
// format and phoneme table, plus msgpack unit records and raw PCM segments
// fetched on demand inside read transactions.
package badgerlib

import (
	"errors"

	"github.com/charmbracelet/log"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/unitvox/voicebank/splib"
)

const backendName = "badgerlib"

// Config tunes the badger backend.
type Config struct {
	// InMemory runs badger without disk persistence. The Initialize path
	// is ignored in that mode; pair it with a Writer over the same
	// Library for tests.
	InMemory bool
}

// Library implements splib.Accessor over a badger store.
type Library struct {
	cfg    Config
	life   *splib.Lifecycle
	id     string
	db     *badger.DB
	ownsDB bool
	table  *splib.CodeTable
	counts []int
	desc   splib.Descriptor
	format splib.AudioFormat
}

// New creates an uninitialized badger-backed library.
func New(cfg Config) *Library {
	return &Library{
		cfg:  cfg,
		life: splib.NewLifecycle(),
	}
}

// Initialize opens the badger store at path and loads the manifest
// record. On any failure nothing stays open and the instance remains
// Uninitialized.
func (l *Library) Initialize(path string) error {
	if err := l.life.CheckUninitialized(); err != nil {
		return err
	}

	db := l.db
	if db == nil {
		opened, err := openStore(path, l.cfg.InMemory)
		if err != nil {
			return err
		}
		db = opened
		l.ownsDB = true
	}

	record, err := loadManifestRecord(db)
	if err != nil {
		if l.ownsDB {
			_ = db.Close()
			l.ownsDB = false
		}
		return err
	}

	desc := record.descriptor()
	format := record.audioFormat()
	table, terr := splib.NewCodeTable(record.Symbols)
	verr := errors.Join(desc.Validate(), format.Validate(), terr)
	if verr == nil && len(record.Counts) != len(record.Symbols) {
		verr = splib.NewLibError(splib.ErrCorruptLibrary, backendName, "Initialize").
			WithContext("reason", "unit counts do not match phoneme table")
	}
	if verr != nil {
		if l.ownsDB {
			_ = db.Close()
			l.ownsDB = false
		}
		return verr
	}

	l.db = db
	l.table = table
	l.counts = record.Counts
	l.desc = desc
	l.format = format
	l.id = uuid.NewString()

	log.Debug("voice library opened",
		"backend", backendName,
		"path", path,
		"phonemes", table.Len(),
		"voice", desc.Name)
	return l.life.Transition(splib.StateReady)
}

// Terminate closes the badger store. Safe to call before Initialize.
func (l *Library) Terminate() error {
	if l.life.Current() == splib.StateTerminated {
		return nil
	}
	if l.db != nil && l.ownsDB {
		if err := l.db.Close(); err != nil {
			return err
		}
	}
	l.db = nil
	l.table = nil
	l.counts = nil
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

// UnitCount answers from the manifest record without touching the store.
func (l *Library) UnitCount(code splib.PhonemeCode) (int, error) {
	if err := l.checkCode(code, "UnitCount"); err != nil {
		return 0, err
	}
	return l.counts[code], nil
}

// ContextLabels retrieves up to capacity labels plus the true unit count.
func (l *Library) ContextLabels(code splib.PhonemeCode, capacity int) ([]splib.ContextLabel, int, error) {
	if err := l.checkCode(code, "ContextLabels"); err != nil {
		return nil, 0, err
	}
	if capacity < 0 {
		return nil, 0, splib.NewLibError(splib.ErrInvalidCapacity, backendName, "ContextLabels")
	}
	total := l.counts[code]
	n := total
	if capacity < n {
		n = capacity
	}
	labels := make([]splib.ContextLabel, 0, n)
	err := l.db.View(func(txn *badger.Txn) error {
		for i := 0; i < n; i++ {
			record, err := readUnitRecord(txn, int(code), i)
			if err != nil {
				return err
			}
			labels = append(labels, record.label())
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return labels, total, nil
}

// ContextLabel retrieves the context label of one unit.
func (l *Library) ContextLabel(code splib.PhonemeCode, index int) (splib.ContextLabel, error) {
	record, err := l.unitRecord(code, index, "ContextLabel")
	if err != nil {
		return nil, err
	}
	return record.label(), nil
}

// ProsodyTag retrieves the prosodic annotation of one unit.
func (l *Library) ProsodyTag(code splib.PhonemeCode, index int) (splib.ProsodyTag, error) {
	record, err := l.unitRecord(code, index, "ProsodyTag")
	if err != nil {
		return nil, err
	}
	return record.tag(), nil
}

// WaveLength answers from the unit record without loading segment bytes.
func (l *Library) WaveLength(code splib.PhonemeCode, index int) (int, error) {
	record, err := l.unitRecord(code, index, "WaveLength")
	if err != nil {
		return 0, err
	}
	return record.WaveLen, nil
}

// Wave retrieves up to capacity bytes of a unit's segment plus its true
// byte length.
func (l *Library) Wave(code splib.PhonemeCode, index int, capacity int) ([]byte, int, error) {
	if err := l.checkUnit(code, index, "Wave"); err != nil {
		return nil, 0, err
	}
	if capacity < 0 {
		return nil, 0, splib.NewLibError(splib.ErrInvalidCapacity, backendName, "Wave")
	}

	var wave []byte
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(waveKey(int(code), index))
		if err != nil {
			return err
		}
		wave, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, 0, splib.NewLibError(splib.ErrCorruptLibrary, backendName, "Wave").
			WithContext("code", int(code)).
			WithContext("index", index)
	}
	if err != nil {
		return nil, 0, err
	}

	n := len(wave)
	if capacity < n {
		n = capacity
	}
	return wave[:n], len(wave), nil
}

// Descriptor returns the library's static metadata.
func (l *Library) Descriptor() splib.Descriptor { return l.desc }

// Format returns the audio format shared by all waveforms.
func (l *Library) Format() splib.AudioFormat { return l.format }

func (l *Library) unitRecord(code splib.PhonemeCode, index int, op string) (*unitRecord, error) {
	if err := l.checkUnit(code, index, op); err != nil {
		return nil, err
	}
	var record *unitRecord
	err := l.db.View(func(txn *badger.Txn) error {
		var rerr error
		record, rerr = readUnitRecord(txn, int(code), index)
		return rerr
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func readUnitRecord(txn *badger.Txn, code, index int) (*unitRecord, error) {
	item, err := txn.Get(unitKey(code, index))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, splib.NewLibError(splib.ErrCorruptLibrary, backendName, "unit record").
			WithContext("code", code).
			WithContext("index", index)
	}
	if err != nil {
		return nil, err
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var record unitRecord
	if err := msgpack.Unmarshal(raw, &record); err != nil {
		return nil, splib.NewLibError(splib.ErrCorruptLibrary, backendName, "unit record").
			WithContext("code", code).
			WithContext("index", index).
			WithContext("reason", err.Error())
	}
	return &record, nil
}

func loadManifestRecord(db *badger.DB) (*manifestRecord, error) {
	var raw []byte
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(manifestKey)
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, splib.NewLibError(splib.ErrLibraryNotFound, backendName, "Initialize")
	}
	if err != nil {
		return nil, err
	}
	var record manifestRecord
	if err := msgpack.Unmarshal(raw, &record); err != nil {
		return nil, splib.NewLibError(splib.ErrCorruptLibrary, backendName, "Initialize").
			WithContext("reason", err.Error())
	}
	return &record, nil
}

func openStore(path string, inMemory bool) (*badger.DB, error) {
	if !inMemory && path == "" {
		return nil, splib.NewLibError(splib.ErrInvalidConfig, backendName, "Initialize").
			WithContext("reason", "library path required for on-disk mode")
	}
	opts := badger.DefaultOptions(path).WithLogger(quietLogger{})
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(quietLogger{})
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, splib.NewLibError(splib.ErrLibraryNotFound, backendName, "Initialize").
			WithContext("path", path).
			WithContext("reason", err.Error())
	}
	return db, nil
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
	if index < 0 || index >= l.counts[code] {
		return splib.NewLibError(splib.ErrIndexOutOfRange, backendName, op).
			WithContext("code", int(code)).
			WithContext("index", index)
	}
	return nil
}

// quietLogger routes badger's chatter through the structured logger,
// dropping info and debug noise.
type quietLogger struct{}

func (quietLogger) Errorf(f string, v ...interface{})   { log.Errorf("badger: "+f, v...) }
func (quietLogger) Warningf(f string, v ...interface{}) { log.Warnf("badger: "+f, v...) }
func (quietLogger) Infof(string, ...interface{})        {}
func (quietLogger) Debugf(string, ...interface{})       {}
