// Package audio plays raw PCM segments retrieved through the library
// contract, for auditioning individual units from the CLI.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/unitvox/voicebank/splib"
)

// otoFormat maps the library's sample precision to an oto buffer format.
func otoFormat(format splib.AudioFormat) (oto.Format, error) {
	switch format.BitsPerSample {
	case 16:
		return oto.FormatSignedInt16LE, nil
	case 8:
		return oto.FormatUnsignedInt8, nil
	default:
		return 0, fmt.Errorf("unsupported sample precision: %d bits", format.BitsPerSample)
	}
}

// Play blocks until the segment finished playing through the default
// audio device.
func Play(format splib.AudioFormat, pcm []byte) error {
	if len(pcm) == 0 {
		return errors.New("empty audio data")
	}
	if len(pcm)%format.BytesPerSample() != 0 {
		return fmt.Errorf("PCM data length %d is not aligned to %d-byte frames",
			len(pcm), format.BytesPerSample())
	}

	bufFormat, err := otoFormat(format)
	if err != nil {
		return err
	}

	options := &oto.NewContextOptions{
		SampleRate:   format.SamplesPerSecond,
		ChannelCount: format.Channels,
		Format:       bufFormat,
	}

	// Platform-specific buffer size adjustments.
	switch runtime.GOOS {
	case "darwin":
		options.BufferSize = time.Millisecond * 100
	default:
		options.BufferSize = time.Millisecond * 50
	}

	ctx, readyChan, err := oto.NewContext(options)
	if err != nil {
		return fmt.Errorf("failed to create audio context: %w", err)
	}
	<-readyChan

	player := ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
}
