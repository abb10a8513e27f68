package badgerlib

import (
	"bytes"
	"errors"
	"testing"

	"github.com/unitvox/voicebank/splib"
)

func wavePattern(n int, seed byte) []byte {
	w := make([]byte, n)
	for i := range w {
		w[i] = seed + byte(i)
	}
	return w
}

func testDescriptor() splib.Descriptor {
	return splib.Descriptor{
		Gender:    "male",
		Age:       40,
		Variant:   1,
		Name:      "badger-fixture",
		Languages: []string{"en"},
		Accents:   []string{"gb"},
	}
}

func testFormat() splib.AudioFormat {
	return splib.AudioFormat{SamplesPerSecond: 16000, BitsPerSample: 16, Channels: 1}
}

func stageFixture(t *testing.T, w *Writer) {
	t.Helper()
	w.SetDescriptor(testDescriptor())
	w.SetFormat(testFormat())
	w.AddUnit("a",
		splib.PhoneticContext{LeftPhoneme: "sil", RightPhoneme: "b", Stressed: true},
		splib.PitchProsody{PitchMeanHz: 112, DurationMs: 70, StressLevel: 1},
		wavePattern(256, 1))
	w.AddUnit("a",
		splib.PhoneticContext{LeftPhoneme: "b", RightPhoneme: "sil"},
		splib.PitchProsody{PitchMeanHz: 100, DurationMs: 88},
		wavePattern(512, 2))
	w.AddUnit("b",
		splib.PhoneticContext{LeftPhoneme: "a", RightPhoneme: "sil"},
		splib.PitchProsody{PitchMeanHz: 92, DurationMs: 55},
		wavePattern(128, 3))
}

// openInMemory builds an in-memory store and an accessor sharing it.
func openInMemory(t *testing.T) *Library {
	t.Helper()
	w, err := NewWriter("", true)
	if err != nil {
		t.Fatalf("NewWriter() failed: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	stageFixture(t, w)
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}

	lib := w.Library()
	if err := lib.Initialize(""); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	return lib
}

func TestInMemoryRoundTrip(t *testing.T) {
	lib := openInMemory(t)

	if !lib.IsReady() {
		t.Fatal("IsReady() = false after Initialize")
	}
	if lib.PhonemeCount() != 2 {
		t.Errorf("PhonemeCount() = %d, want 2", lib.PhonemeCount())
	}
	if lib.Descriptor().Name != "badger-fixture" {
		t.Errorf("Descriptor().Name = %q", lib.Descriptor().Name)
	}
	if lib.Format() != testFormat() {
		t.Errorf("Format() = %+v", lib.Format())
	}

	code := lib.CodeFromPhoneme("a")
	if code != 0 {
		t.Fatalf("CodeFromPhoneme(a) = %d, want 0", code)
	}
	if n, err := lib.UnitCount(code); err != nil || n != 2 {
		t.Errorf("UnitCount(a) = %d, %v, want 2, nil", n, err)
	}

	data, total, err := lib.Wave(code, 1, 1024)
	if err != nil {
		t.Fatalf("Wave() failed: %v", err)
	}
	if total != 512 || !bytes.Equal(data, wavePattern(512, 2)) {
		t.Errorf("Wave(a, 1) = %d bytes, total %d", len(data), total)
	}

	// Truncated read keeps the true length.
	data, total, err = lib.Wave(code, 1, 64)
	if err != nil {
		t.Fatalf("Wave() failed: %v", err)
	}
	if len(data) != 64 || total != 512 {
		t.Errorf("Wave(a, 1, 64) = %d bytes, total %d, want 64, 512", len(data), total)
	}
}

func TestUnitRecords(t *testing.T) {
	lib := openInMemory(t)

	cl, err := lib.ContextLabel(0, 0)
	if err != nil {
		t.Fatalf("ContextLabel() failed: %v", err)
	}
	pc, ok := cl.(splib.PhoneticContext)
	if !ok {
		t.Fatalf("label kind = %v, want PhoneticContext", cl.Kind())
	}
	if pc.LeftPhoneme != "sil" || !pc.Stressed {
		t.Errorf("ContextLabel(0, 0) = %+v", pc)
	}

	pt, err := lib.ProsodyTag(0, 1)
	if err != nil {
		t.Fatalf("ProsodyTag() failed: %v", err)
	}
	pp, ok := pt.(splib.PitchProsody)
	if !ok {
		t.Fatalf("tag kind = %v, want PitchProsody", pt.Kind())
	}
	if pp.PitchMeanHz != 100 || pp.DurationMs != 88 {
		t.Errorf("ProsodyTag(0, 1) = %+v", pp)
	}

	if n, err := lib.WaveLength(1, 0); err != nil || n != 128 {
		t.Errorf("WaveLength(1, 0) = %d, %v, want 128, nil", n, err)
	}

	labels, total, err := lib.ContextLabels(0, 1)
	if err != nil {
		t.Fatalf("ContextLabels() failed: %v", err)
	}
	if len(labels) != 1 || total != 2 {
		t.Errorf("ContextLabels(0, 1) = %d labels, total %d, want 1, 2", len(labels), total)
	}
}

func TestErrorPaths(t *testing.T) {
	lib := openInMemory(t)

	if _, err := lib.UnitCount(splib.InvalidCode); !errors.Is(err, splib.ErrInvalidCode) {
		t.Errorf("UnitCount(InvalidCode) = %v, want ErrInvalidCode", err)
	}
	if _, _, err := lib.Wave(0, 9, 64); !errors.Is(err, splib.ErrIndexOutOfRange) {
		t.Errorf("Wave(0, 9) = %v, want ErrIndexOutOfRange", err)
	}
	if _, _, err := lib.Wave(0, 0, -1); !errors.Is(err, splib.ErrInvalidCapacity) {
		t.Errorf("Wave() with negative capacity = %v, want ErrInvalidCapacity", err)
	}
	if code := lib.CodeFromPhoneme("zz"); code != splib.InvalidCode {
		t.Errorf("CodeFromPhoneme(zz) = %d, want InvalidCode", code)
	}
}

func TestOnDiskRoundTrip(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir, false)
	if err != nil {
		t.Fatalf("NewWriter() failed: %v", err)
	}
	stageFixture(t, w)
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	lib := New(Config{})
	if err := lib.Initialize(dir); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	defer lib.Terminate()

	if lib.PhonemeCount() != 2 {
		t.Errorf("PhonemeCount() = %d, want 2", lib.PhonemeCount())
	}
	data, total, err := lib.Wave(1, 0, 1024)
	if err != nil {
		t.Fatalf("Wave() failed: %v", err)
	}
	if total != 128 || !bytes.Equal(data, wavePattern(128, 3)) {
		t.Errorf("Wave(1, 0) = %d bytes, total %d", len(data), total)
	}
}

func TestInitializeEmptyStore(t *testing.T) {
	w, err := NewWriter("", true)
	if err != nil {
		t.Fatalf("NewWriter() failed: %v", err)
	}
	defer w.Close()

	// No Commit, so no manifest record exists.
	if err := w.Library().Initialize(""); !errors.Is(err, splib.ErrLibraryNotFound) {
		t.Errorf("Initialize() on empty store = %v, want ErrLibraryNotFound", err)
	}
}

func TestCommitValidation(t *testing.T) {
	w, err := NewWriter("", true)
	if err != nil {
		t.Fatalf("NewWriter() failed: %v", err)
	}
	defer w.Close()

	w.SetFormat(testFormat())
	w.AddUnit("a", splib.PhoneticContext{}, splib.PitchProsody{}, wavePattern(16, 1))

	// Descriptor never set: no languages.
	if err := w.Commit(); !errors.Is(err, splib.ErrInvalidDescriptor) {
		t.Errorf("Commit() without descriptor = %v, want ErrInvalidDescriptor", err)
	}
}

func TestTerminate(t *testing.T) {
	lib := openInMemory(t)

	if err := lib.Terminate(); err != nil {
		t.Fatalf("Terminate() failed: %v", err)
	}
	if _, err := lib.UnitCount(0); !errors.Is(err, splib.ErrTerminated) {
		t.Errorf("UnitCount() after Terminate = %v, want ErrTerminated", err)
	}
	if err := lib.Initialize(""); !errors.Is(err, splib.ErrAlreadyInitialized) {
		t.Errorf("Initialize() after Terminate = %v, want ErrAlreadyInitialized", err)
	}
	if err := lib.Terminate(); err != nil {
		t.Errorf("second Terminate() = %v, want nil", err)
	}
}

func TestOnDiskMissingPath(t *testing.T) {
	lib := New(Config{})
	if err := lib.Initialize(""); !errors.Is(err, splib.ErrInvalidConfig) {
		t.Errorf("Initialize(\"\") = %v, want ErrInvalidConfig", err)
	}
}
