package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/rasterop-cli/internal/codec"
	"github.com/AnyUserName/rasterop-cli/internal/remap"
)

var (
	adjustOut        string
	adjustInvert     bool
	adjustBrightness int
	adjustContrast   float64
	adjustGamma      float64
)

var adjustCmd = &cobra.Command{
	Use:   "adjust <input>",
	Short: "Apply point operations through a lookup table",
	Long: `Builds a 256-entry lookup table from the selected adjustments and
remaps every sample of the image through it in place. Adjustments
compose in the order invert, brightness, contrast, gamma.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdjust,
}

func init() {
	adjustCmd.Flags().StringVarP(&adjustOut, "out", "o", "", "output file (required)")
	adjustCmd.Flags().BoolVar(&adjustInvert, "invert", false, "negate all values")
	adjustCmd.Flags().IntVar(&adjustBrightness, "brightness", 0, "add a constant to all values")
	adjustCmd.Flags().Float64Var(&adjustContrast, "contrast", 1, "linear stretch factor around mid-gray")
	adjustCmd.Flags().Float64Var(&adjustGamma, "gamma", 1, "power-law correction")
	adjustCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(adjustCmd)
}

func runAdjust(_ *cobra.Command, args []string) error {
	var tables []*[256]uint8
	if adjustInvert {
		tables = append(tables, remap.Invert())
	}
	if adjustBrightness != 0 {
		tables = append(tables, remap.Brightness(adjustBrightness))
	}
	if adjustContrast != 1 {
		tables = append(tables, remap.Contrast(adjustContrast))
	}
	if adjustGamma != 1 {
		lut, err := remap.Gamma(adjustGamma)
		if err != nil {
			return err
		}
		tables = append(tables, lut)
	}
	if len(tables) == 0 {
		return fmt.Errorf("no adjustment selected")
	}

	// Compose all tables into one so the image is swept once.
	var lut [256]uint8
	for i := range lut {
		v := uint8(i)
		for _, t := range tables {
			v = t[v]
		}
		lut[i] = v
	}

	buf, _, err := codec.Load(args[0])
	if err != nil {
		return err
	}
	if err := remap.Apply(buf, &lut); err != nil {
		return err
	}
	return codec.Save(buf, adjustOut)
}
