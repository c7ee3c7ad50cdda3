package pipeline

import "github.com/samber/lo"

// Six-colour qualitative palettes.
var (
	Spectral6   = []string{"#3288bd", "#99d594", "#e6f598", "#fee08b", "#fc8d59", "#d53e4f"}
	Colorblind6 = []string{"#0072B2", "#E69F00", "#F0E442", "#009E73", "#56B4E9", "#D55E00"}
)

// AssignColors returns the colour of every label, parallel to labels. Distinct
// labels take palette slots in order of first occurrence and the palette
// cycles once exhausted; a repeated label keeps its first colour.
func AssignColors(labels []string, palette []string) []string {
	if len(palette) == 0 {
		return make([]string, len(labels))
	}
	slots := make(map[string]int, len(labels))
	for i, label := range lo.Uniq(labels) {
		slots[label] = i
	}
	return lo.Map(labels, func(label string, _ int) string {
		return palette[slots[label]%len(palette)]
	})
}
