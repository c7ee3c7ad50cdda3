package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignColors(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		palette []string
		want    []string
	}{
		{
			name:    "first occurrence order",
			labels:  []string{"Hungary", "Austria", "Slovakia", "Czechia"},
			palette: Spectral6,
			want:    []string{"#3288bd", "#99d594", "#e6f598", "#fee08b"},
		},
		{
			name:    "repeated label keeps its colour",
			labels:  []string{"Hungary", "Austria", "Hungary"},
			palette: Colorblind6,
			want:    []string{"#0072B2", "#E69F00", "#0072B2"},
		},
		{
			name:    "palette cycles",
			labels:  []string{"a", "b", "c"},
			palette: []string{"red", "blue"},
			want:    []string{"red", "blue", "red"},
		},
		{
			name:    "empty palette",
			labels:  []string{"a"},
			palette: nil,
			want:    []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignColors(tt.labels, tt.palette))
		})
	}
}
