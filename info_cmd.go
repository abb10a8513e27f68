package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/unitvox/voicebank/splib"
)

var infoCmd = &cobra.Command{
	Use:   "info PATH",
	Short: "Show voice library metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		lib, err := openLibrary(args[0])
		if err != nil {
			return err
		}
		defer lib.Terminate() //nolint:errcheck

		desc := lib.Descriptor()
		format := lib.Format()

		totalUnits := 0
		var totalBytes int64
		for code := 0; code < lib.PhonemeCount(); code++ {
			n, err := lib.UnitCount(splib.PhonemeCode(code))
			if err != nil {
				return err
			}
			totalUnits += n
			for i := 0; i < n; i++ {
				length, err := lib.WaveLength(splib.PhonemeCode(code), i)
				if err != nil {
					return err
				}
				totalBytes += int64(length)
			}
		}

		locales := make([]string, len(desc.Languages))
		for i := range desc.Languages {
			locales[i] = desc.Locale(i)
		}

		fmt.Printf("%s %s\n", keyword(desc.Name), subtle(fmt.Sprintf("(instance %s)", lib.InstanceID())))
		fmt.Printf("  gender:    %s\n", desc.Gender)
		fmt.Printf("  age:       %d\n", desc.Age)
		fmt.Printf("  variant:   %d\n", desc.Variant)
		fmt.Printf("  locales:   %s\n", strings.Join(locales, ", "))
		fmt.Printf("  format:    %d Hz, %d-bit, %d channel(s)\n",
			format.SamplesPerSecond, format.BitsPerSample, format.Channels)
		fmt.Printf("  phonemes:  %d\n", lib.PhonemeCount())
		fmt.Printf("  units:     %d\n", totalUnits)
		fmt.Printf("  waveforms: %s\n", humanize.Bytes(uint64(totalBytes)))
		return nil
	},
}
