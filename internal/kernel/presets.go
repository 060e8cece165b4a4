package kernel

import (
	"fmt"
	"sort"
)

// Stock presets matching the filters a kernel editor usually ships with.
var presets = map[string]Kernel{
	"identity": {
		Weights: [][]int{{1}},
		Den:     1,
	},
	"box3": {
		Weights: [][]int{
			{1, 1, 1},
			{1, 1, 1},
			{1, 1, 1},
		},
		Den: 9,
	},
	"gaussian3": {
		Weights: [][]int{
			{1, 2, 1},
			{2, 4, 2},
			{1, 2, 1},
		},
		Den: 16,
	},
	"gaussian5": {
		Weights: [][]int{
			{1, 4, 6, 4, 1},
			{4, 16, 24, 16, 4},
			{6, 24, 36, 24, 6},
			{4, 16, 24, 16, 4},
			{1, 4, 6, 4, 1},
		},
		Den: 256,
	},
	"sharpen": {
		Weights: [][]int{
			{0, -1, 0},
			{-1, 5, -1},
			{0, -1, 0},
		},
		Den: 1,
	},
	"laplace": {
		Weights: [][]int{
			{0, 1, 0},
			{1, -4, 1},
			{0, 1, 0},
		},
		Den:    1,
		Offset: 128,
	},
	"emboss": {
		Weights: [][]int{
			{-2, -1, 0},
			{-1, 1, 1},
			{0, 1, 2},
		},
		Den:    1,
		Offset: 0,
	},
	"sobelx": {
		Weights: [][]int{
			{-1, 0, 1},
			{-2, 0, 2},
			{-1, 0, 1},
		},
		Den:    1,
		Offset: 128,
	},
	"sobely": {
		Weights: [][]int{
			{-1, -2, -1},
			{0, 0, 0},
			{1, 2, 1},
		},
		Den:    1,
		Offset: 128,
	},
}

// Separable presets for the two-pass engine.
var separablePresets = map[string]Separable{
	"gaussian5": {
		Row:    []int{1, 4, 6, 4, 1},
		Col:    []int{1, 4, 6, 4, 1},
		RowDen: 16,
		ColDen: 16,
	},
	"box5": {
		Row:    []int{1, 1, 1, 1, 1},
		Col:    []int{1, 1, 1, 1, 1},
		RowDen: 5,
		ColDen: 5,
	},
}

// Preset returns a stock kernel by name.
func Preset(name string) (Kernel, error) {
	k, ok := presets[name]
	if !ok {
		return Kernel{}, fmt.Errorf("kernel: unknown preset %q (available: %v)", name, PresetNames())
	}
	return k, nil
}

// SeparablePreset returns a stock separable pair by name.
func SeparablePreset(name string) (Separable, error) {
	s, ok := separablePresets[name]
	if !ok {
		return Separable{}, fmt.Errorf("kernel: unknown separable preset %q (available: %v)", name, SeparablePresetNames())
	}
	return s, nil
}

// PresetNames lists full-matrix presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SeparablePresetNames lists separable presets, sorted.
func SeparablePresetNames() []string {
	names := make([]string, 0, len(separablePresets))
	for n := range separablePresets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
