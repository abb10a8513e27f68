package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unitvox/voicebank/internal/wavio"
	"github.com/unitvox/voicebank/splib"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export PATH PHONEME INDEX",
	Short: "Export one unit's waveform as a WAV file",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid unit index %q", args[2])
		}

		lib, err := openLibrary(args[0])
		if err != nil {
			return err
		}
		defer lib.Terminate() //nolint:errcheck

		code := lib.CodeFromPhoneme(args[1])
		if code == splib.InvalidCode {
			return fmt.Errorf("phoneme %q is not in this library", args[1])
		}

		pcm, err := fetchWave(lib, code, index)
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = fmt.Sprintf("%s-%d.wav", args[1], index)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("unable to create output file: %w", err)
		}
		defer f.Close() //nolint:errcheck

		if err := wavio.WriteWAV(f, lib.Format(), pcm); err != nil {
			return err
		}
		fmt.Println("Wrote", out)
		return nil
	},
}

// fetchWave sizes the buffer with WaveLength before retrieving, so the
// negotiated read is never truncated.
func fetchWave(lib splib.Accessor, code splib.PhonemeCode, index int) ([]byte, error) {
	length, err := lib.WaveLength(code, index)
	if err != nil {
		return nil, err
	}
	pcm, actual, err := lib.Wave(code, index, length)
	if err != nil {
		return nil, err
	}
	if actual != length || len(pcm) != length {
		return nil, fmt.Errorf("wave length changed during retrieval: declared %d, got %d", length, actual)
	}
	return pcm, nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default PHONEME-INDEX.wav)")
}
