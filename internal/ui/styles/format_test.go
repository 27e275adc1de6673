package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 6, "hello…"},
		{"zero width", "hello", 0, ""},
		{"single cell", "hello", 1, "…"},
		{"wide runes", "日本語テキスト", 5, "日本…"},
		{"keeps grapheme clusters", "e\u0301e\u0301e\u0301", 2, "e\u0301…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TruncateString(tt.input, tt.maxWidth))
		})
	}
}

func TestPadRight(t *testing.T) {
	require.Equal(t, "ab   ", PadRight("ab", 5))
	require.Equal(t, "abcd…", PadRight("abcdefgh", 5))
}
