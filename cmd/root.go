package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rasterop",
	Short: "Pixel and neighborhood kernels for raster images",
	Long: `rasterop — applies per-pixel and neighborhood image operations to
raster files: 2D and separable convolution with reflective borders,
histograms, PSNR comparison, crop/insert and lookup-table point ops.

Images are processed as raw sample buffers (grayscale, indexed-palette
or direct RGB); file decoding and encoding happen only at the edges.`,
	Version: version,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"rasterop %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}
