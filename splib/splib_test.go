package splib

import (
	"errors"
	"testing"
)

// TestPhonemeCodeValid tests code range checking.
func TestPhonemeCodeValid(t *testing.T) {
	tests := []struct {
		code     PhonemeCode
		count    int
		expected bool
	}{
		{0, 1, true},
		{4, 5, true},
		{5, 5, false},
		{InvalidCode, 5, false},
		{-2, 5, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		if got := tt.code.Valid(tt.count); got != tt.expected {
			t.Errorf("PhonemeCode(%d).Valid(%d) = %v, want %v", tt.code, tt.count, got, tt.expected)
		}
	}
}

// TestAudioFormatBytesPerSample tests frame size math.
func TestAudioFormatBytesPerSample(t *testing.T) {
	tests := []struct {
		format   AudioFormat
		expected int
	}{
		{AudioFormat{16000, 16, 1}, 2},
		{AudioFormat{44100, 16, 2}, 4},
		{AudioFormat{8000, 8, 1}, 1},
	}

	for _, tt := range tests {
		if got := tt.format.BytesPerSample(); got != tt.expected {
			t.Errorf("%+v BytesPerSample() = %d, want %d", tt.format, got, tt.expected)
		}
	}
}

// TestAudioFormatValidate tests format sanity checks.
func TestAudioFormatValidate(t *testing.T) {
	tests := []struct {
		name    string
		format  AudioFormat
		wantErr bool
	}{
		{"valid 16-bit mono", AudioFormat{16000, 16, 1}, false},
		{"valid 8-bit stereo", AudioFormat{8000, 8, 2}, false},
		{"zero sample rate", AudioFormat{0, 16, 1}, true},
		{"negative sample rate", AudioFormat{-1, 16, 1}, true},
		{"unsupported precision", AudioFormat{16000, 24, 1}, true},
		{"zero channels", AudioFormat{16000, 16, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

// TestLabelKindDiscrimination tests that callers can branch on kinds
// without downcasting blindly.
func TestLabelKindDiscrimination(t *testing.T) {
	var label ContextLabel = PhoneticContext{LeftPhoneme: "a", RightPhoneme: "b"}
	if label.Kind() != LabelPhonetic {
		t.Errorf("Kind() = %v, want LabelPhonetic", label.Kind())
	}
	if label.Kind().String() != "phonetic" {
		t.Errorf("Kind().String() = %q, want %q", label.Kind().String(), "phonetic")
	}
	if LabelUnknown.String() != "unknown" {
		t.Errorf("LabelUnknown.String() = %q, want %q", LabelUnknown.String(), "unknown")
	}

	var tag ProsodyTag = PitchProsody{PitchMeanHz: 200}
	if tag.Kind() != TagPitch {
		t.Errorf("Kind() = %v, want TagPitch", tag.Kind())
	}
	if tag.Kind().String() != "pitch" {
		t.Errorf("Kind().String() = %q, want %q", tag.Kind().String(), "pitch")
	}
	if TagUnknown.String() != "unknown" {
		t.Errorf("TagUnknown.String() = %q, want %q", TagUnknown.String(), "unknown")
	}
}
