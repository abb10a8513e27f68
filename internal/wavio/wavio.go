// Package wavio renders raw PCM segments retrieved through the library
// contract as RIFF/WAVE files and derives timing from the library's audio
// format triple.
package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/unitvox/voicebank/splib"
)

const riffHeaderSize = 44

// WriteWAV writes a complete WAVE file (header plus data chunk) for one
// PCM segment in the given format.
func WriteWAV(w io.Writer, format splib.AudioFormat, pcm []byte) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if err := ValidatePCM(pcm, format); err != nil {
		return err
	}

	bytesPerSec := format.SamplesPerSecond * format.BytesPerSample()
	header := make([]byte, riffHeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(pcm)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM, uncompressed
	binary.LittleEndian.PutUint16(header[22:24], uint16(format.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(format.SamplesPerSecond))
	binary.LittleEndian.PutUint32(header[28:32], uint32(bytesPerSec))
	binary.LittleEndian.PutUint16(header[32:34], uint16(format.BytesPerSample()))
	binary.LittleEndian.PutUint16(header[34:36], uint16(format.BitsPerSample))
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(pcm)))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("unable to write WAV header: %w", err)
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("unable to write WAV data: %w", err)
	}
	return nil
}

// ValidatePCM checks that data is frame-aligned for the format.
func ValidatePCM(data []byte, format splib.AudioFormat) error {
	if len(data) == 0 {
		return errors.New("empty PCM data")
	}
	frame := format.BytesPerSample()
	if frame == 0 || len(data)%frame != 0 {
		return fmt.Errorf("PCM data length %d is not aligned to %d-byte frames", len(data), frame)
	}
	return nil
}

// Duration converts a byte length to playback time in the given format.
func Duration(byteLen int, format splib.AudioFormat) time.Duration {
	frame := format.BytesPerSample()
	if frame == 0 || format.SamplesPerSecond == 0 {
		return 0
	}
	frames := byteLen / frame
	return time.Duration(frames) * time.Second / time.Duration(format.SamplesPerSecond)
}
