package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unitvox/voicebank/splib"
)

var phonemesCmd = &cobra.Command{
	Use:   "phonemes PATH",
	Short: "List the phoneme inventory with internal codes and unit counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		lib, err := openLibrary(args[0])
		if err != nil {
			return err
		}
		defer lib.Terminate() //nolint:errcheck

		fmt.Printf("%s\n", tableHeader(fmt.Sprintf("%-6s %-12s %s", "CODE", "PHONEME", "UNITS")))
		for code := 0; code < lib.PhonemeCount(); code++ {
			c := splib.PhonemeCode(code)
			n, err := lib.UnitCount(c)
			if err != nil {
				return err
			}
			fmt.Printf("%-6d %-12s %d\n", code, lib.PhonemeFromCode(c), n)
		}
		return nil
	},
}
