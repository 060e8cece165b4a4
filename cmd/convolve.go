package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/rasterop-cli/internal/codec"
	"github.com/AnyUserName/rasterop-cli/internal/convolve"
	"github.com/AnyUserName/rasterop-cli/internal/hasher"
	"github.com/AnyUserName/rasterop-cli/internal/kernel"
)

var (
	convOut       string
	convPreset    string
	convSeparable bool
	convMatrix    string
	convDen       int
	convOffset    int
)

var convolveCmd = &cobra.Command{
	Use:   "convolve <input>",
	Short: "Convolve an image with a 2D or separable kernel",
	Long: `Convolves the input with either a named preset kernel or an explicit
weight matrix. Borders are handled by mirroring out-of-range coordinates
back into the image.

An explicit matrix is written row by row, rows separated by ';':

  rasterop convolve in.png -o out.png --matrix "1,2,1;2,4,2;1,2,1" --den 16

With --separable the preset's row and column vectors run as two 1D passes.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvolve,
}

func init() {
	convolveCmd.Flags().StringVarP(&convOut, "out", "o", "", "output file (required)")
	convolveCmd.Flags().StringVarP(&convPreset, "preset", "p", "", "preset kernel name")
	convolveCmd.Flags().BoolVar(&convSeparable, "separable", false, "use the separable two-pass variant of the preset")
	convolveCmd.Flags().StringVar(&convMatrix, "matrix", "", "explicit weight matrix, rows separated by ';'")
	convolveCmd.Flags().IntVar(&convDen, "den", 1, "normalization denominator for --matrix")
	convolveCmd.Flags().IntVar(&convOffset, "offset", 0, "intensity offset for --matrix")
	convolveCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(convolveCmd)
}

func runConvolve(_ *cobra.Command, args []string) error {
	if (convPreset == "") == (convMatrix == "") {
		return fmt.Errorf("exactly one of --preset and --matrix is required")
	}
	if convSeparable && convMatrix != "" {
		return fmt.Errorf("--separable only applies to presets")
	}

	buf, model, err := codec.Load(args[0])
	if err != nil {
		return err
	}
	log.Debug().
		Str("input", args[0]).
		Int("width", buf.Width).Int("height", buf.Height).
		Stringer("model", model).
		Msg("loaded")

	start := time.Now()

	out := buf
	switch {
	case convSeparable:
		sep, err := kernel.SeparablePreset(convPreset)
		if err != nil {
			return err
		}
		if out, err = convolve.ApplySeparable(buf, model, sep); err != nil {
			return err
		}
	case convPreset != "":
		k, err := kernel.Preset(convPreset)
		if err != nil {
			return err
		}
		if out, err = convolve.Apply(buf, model, k); err != nil {
			return err
		}
	default:
		k, err := parseKernel(convMatrix, convDen, convOffset)
		if err != nil {
			return err
		}
		if out, err = convolve.Apply(buf, model, k); err != nil {
			return err
		}
	}

	log.Debug().
		Dur("elapsed", time.Since(start)).
		Str("hash", hasher.BufferHash(out)).
		Msg("convolved")

	return codec.Save(out, convOut)
}

// parseKernel parses "1,2,1;2,4,2;1,2,1" into a kernel and validates it.
func parseKernel(s string, den, offset int) (kernel.Kernel, error) {
	var weights [][]int
	for _, rowStr := range strings.Split(s, ";") {
		var row []int
		for _, cell := range strings.Split(rowStr, ",") {
			w, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return kernel.Kernel{}, fmt.Errorf("bad kernel weight %q: %w", cell, err)
			}
			row = append(row, w)
		}
		weights = append(weights, row)
	}
	k := kernel.Kernel{Weights: weights, Den: den, Offset: offset}
	if err := k.Validate(); err != nil {
		return kernel.Kernel{}, err
	}
	return k, nil
}
