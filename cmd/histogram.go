package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/rasterop-cli/internal/codec"
	"github.com/AnyUserName/rasterop-cli/internal/hasher"
	"github.com/AnyUserName/rasterop-cli/internal/raster"
	"github.com/AnyUserName/rasterop-cli/internal/stats"
)

var (
	histClasses int
	histChannel string
	histJSON    bool
)

var histogramCmd = &cobra.Command{
	Use:   "histogram <input>",
	Short: "Compute an image histogram",
	Long: `Buckets all samples into --classes uniform classes, or — with
--channel on a direct-RGB image — counts raw values of one channel
into 256 classes.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistogram,
}

// histogramReport is the machine-readable output of the histogram command.
type histogramReport struct {
	Input   string `json:"input"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Model   string `json:"model"`
	Hash    string `json:"hash"`
	Channel string `json:"channel,omitempty"`
	Classes int    `json:"classes"`
	Counts  []int  `json:"counts"`
}

func init() {
	histogramCmd.Flags().IntVarP(&histClasses, "classes", "c", 256, "number of histogram classes")
	histogramCmd.Flags().StringVar(&histChannel, "channel", "", "channel to extract: red, green or blue")
	histogramCmd.Flags().BoolVar(&histJSON, "json", false, "emit the report as JSON")
	rootCmd.AddCommand(histogramCmd)
}

func runHistogram(_ *cobra.Command, args []string) error {
	buf, model, err := codec.Load(args[0])
	if err != nil {
		return err
	}

	var counts []int
	if histChannel != "" {
		ch, err := parseChannel(histChannel)
		if err != nil {
			return err
		}
		if counts, err = stats.ChannelHistogram(buf, ch); err != nil {
			return err
		}
	} else {
		if counts, err = stats.Histogram(buf, histClasses); err != nil {
			return err
		}
	}

	report := histogramReport{
		Input:   args[0],
		Width:   buf.Width,
		Height:  buf.Height,
		Model:   model.String(),
		Hash:    hasher.BufferHash(buf),
		Channel: histChannel,
		Classes: len(counts),
		Counts:  counts,
	}

	if histJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printHistogram(report)
	return nil
}

func printHistogram(r histogramReport) {
	fmt.Printf("  %s  %dx%d %s  hash=%s\n", r.Input, r.Width, r.Height, r.Model, r.Hash)
	if r.Channel != "" {
		fmt.Printf("  channel: %s\n", r.Channel)
	}
	fmt.Printf("  classes: %d\n\n", r.Classes)

	maxCount := 0
	for _, n := range r.Counts {
		if n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		return
	}
	// Compact bar chart: only non-empty classes.
	for i, n := range r.Counts {
		if n == 0 {
			continue
		}
		bar := strings.Repeat("█", 1+n*40/maxCount)
		fmt.Printf("  %4d  %8d  %s\n", i, n, bar)
	}
}

func parseChannel(s string) (raster.Channel, error) {
	switch strings.ToLower(s) {
	case "red", "r":
		return raster.Red, nil
	case "green", "g":
		return raster.Green, nil
	case "blue", "b":
		return raster.Blue, nil
	}
	return 0, fmt.Errorf("unknown channel %q (want red, green or blue)", s)
}
