package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/rasterop-cli/internal/codec"
	"github.com/AnyUserName/rasterop-cli/internal/region"
)

var (
	cropOut  string
	cropRect string

	insertOut string
	insertAt  string
)

var cropCmd = &cobra.Command{
	Use:   "crop <input>",
	Short: "Extract a rectangular region into a new image",
	Args:  cobra.ExactArgs(1),
	RunE:  runCrop,
}

var insertCmd = &cobra.Command{
	Use:   "insert <base> <patch>",
	Short: "Paste one image into another at a given position",
	Long: `Copies the patch into the base image at --at, clipping silently where
the patch extends past the base's right or bottom edge. Both images must
have the same bit depth.`,
	Args: cobra.ExactArgs(2),
	RunE: runInsert,
}

func init() {
	cropCmd.Flags().StringVarP(&cropOut, "out", "o", "", "output file (required)")
	cropCmd.Flags().StringVar(&cropRect, "rect", "", "region as x,y,w,h (required)")
	cropCmd.MarkFlagRequired("out")
	cropCmd.MarkFlagRequired("rect")

	insertCmd.Flags().StringVarP(&insertOut, "out", "o", "", "output file (required)")
	insertCmd.Flags().StringVar(&insertAt, "at", "0,0", "insertion position as x,y")
	insertCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(cropCmd)
	rootCmd.AddCommand(insertCmd)
}

func runCrop(_ *cobra.Command, args []string) error {
	coords, err := parseInts(cropRect, 4)
	if err != nil {
		return fmt.Errorf("bad --rect: %w", err)
	}
	x, y, w, h := coords[0], coords[1], coords[2], coords[3]
	if w <= 0 || h <= 0 {
		return fmt.Errorf("bad --rect: non-positive size %dx%d", w, h)
	}

	buf, _, err := codec.Load(args[0])
	if err != nil {
		return err
	}
	// The kernel layer treats an out-of-bounds rect as a programmer
	// error; the CLI validates user input before crossing that boundary.
	if x < 0 || y < 0 || x+w > buf.Width || y+h > buf.Height {
		return fmt.Errorf("rect %d,%d %dx%d outside image %dx%d",
			x, y, w, h, buf.Width, buf.Height)
	}

	return codec.Save(region.Crop(buf, x, y, w, h), cropOut)
}

func runInsert(_ *cobra.Command, args []string) error {
	coords, err := parseInts(insertAt, 2)
	if err != nil {
		return fmt.Errorf("bad --at: %w", err)
	}
	x, y := coords[0], coords[1]
	if x < 0 || y < 0 {
		return fmt.Errorf("bad --at: negative position %d,%d", x, y)
	}

	base, _, err := codec.Load(args[0])
	if err != nil {
		return err
	}
	patch, _, err := codec.Load(args[1])
	if err != nil {
		return err
	}

	if err := region.Insert(base, patch, x, y); err != nil {
		return err
	}
	return codec.Save(base, insertOut)
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated integers, have %d", n, len(parts))
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
