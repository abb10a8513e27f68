package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/unitvox/voicebank/internal/wavio"
	"github.com/unitvox/voicebank/splib"
)

var unitsCmd = &cobra.Command{
	Use:   "units PATH PHONEME",
	Short: "List the candidate units of one phoneme",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		lib, err := openLibrary(args[0])
		if err != nil {
			return err
		}
		defer lib.Terminate() //nolint:errcheck

		code := lib.CodeFromPhoneme(args[1])
		if code == splib.InvalidCode {
			return fmt.Errorf("phoneme %q is not in this library", args[1])
		}

		count, err := lib.UnitCount(code)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", keyword(args[1]), subtle(fmt.Sprintf("code %d, %d unit(s)", code, count)))

		for i := 0; i < count; i++ {
			label, err := lib.ContextLabel(code, i)
			if err != nil {
				return err
			}
			tag, err := lib.ProsodyTag(code, i)
			if err != nil {
				return err
			}
			length, err := lib.WaveLength(code, i)
			if err != nil {
				return err
			}

			fmt.Printf("  [%d] %s, %s\n", i,
				humanize.Bytes(uint64(length)),
				wavio.Duration(length, lib.Format()))
			fmt.Printf("      context: %s\n", describeLabel(label))
			fmt.Printf("      prosody: %s\n", describeTag(tag))
		}
		return nil
	},
}

// describeLabel renders the variants this tool knows; foreign kinds fall
// back to their discriminator.
func describeLabel(label splib.ContextLabel) string {
	switch l := label.(type) {
	case splib.PhoneticContext:
		return fmt.Sprintf("left=%q right=%q syllable=%d word=%d stressed=%v",
			l.LeftPhoneme, l.RightPhoneme, l.SyllablePos, l.WordPos, l.Stressed)
	default:
		return fmt.Sprintf("(%s label)", label.Kind())
	}
}

func describeTag(tag splib.ProsodyTag) string {
	switch t := tag.(type) {
	case splib.PitchProsody:
		return fmt.Sprintf("pitch=%.1fHz range=%.1fHz duration=%.1fms energy=%.2f stress=%d",
			t.PitchMeanHz, t.PitchRangeHz, t.DurationMs, t.Energy, t.StressLevel)
	default:
		return fmt.Sprintf("(%s tag)", tag.Kind())
	}
}
