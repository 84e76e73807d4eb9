package normalize_test

import (
	"testing"

	"github.com/barcraft/bardb/pkg/normalize"
	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "Tequila", "tequila"},
		{"a family", "àáâãäå", "aaaaaa"},
		{"e family", "crème de cassÈ", "creme de casse"},
		{"i family", "maraschìnò", "maraschino"},
		{"o family", "añejo ôõö", "anejo ooo"},
		{"u family", "Curaçao Ùúûü", "curacao uuuu"},
		{"jagermeister", "Jägermeister", "jagermeister"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Fold(tt.input))
		})
	}
}

// Fold applied twice must equal Fold applied once for any input.
func TestFoldIdempotent(t *testing.T) {
	inputs := []string{
		"Jägermeister",
		"Crème de Banane",
		"Añejo Rum",
		"151 proof rum",
		"whisky",
		"",
	}

	for _, s := range inputs {
		once := normalize.Fold(s)
		assert.Equal(t, once, normalize.Fold(once), s)
	}
}

func TestFixEncoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			// "Jägermeister" whose UTF-8 bytes were read as Latin-1
			name:  "mis-decoded utf-8",
			input: "JÃ¤germeister",
			want:  "Jägermeister",
		},
		{
			name:  "already correct text unchanged",
			input: "Jägermeister",
			want:  "Jägermeister",
		},
		{
			name:  "plain ascii unchanged",
			input: "Tequila",
			want:  "Tequila",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.FixEncoding(tt.input))
		})
	}
}

func TestKey(t *testing.T) {
	// A mention and a canonical stored name must collapse to one key.
	mention := normalize.Key("JÃ¤germeister")
	stored := normalize.Key("jagermeister")
	assert.Equal(t, stored, mention)
}
