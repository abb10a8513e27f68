package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unitvox/voicebank/internal/audio"
	"github.com/unitvox/voicebank/splib"
)

var playCmd = &cobra.Command{
	Use:   "play PATH PHONEME INDEX",
	Short: "Play one unit's waveform on the default audio device",
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
		return audio.Play(lib.Format(), pcm)
	},
}
