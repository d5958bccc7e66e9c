package normalize_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"news-sentiment-go/internal/normalize"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "shorter than limit", input: "hello", limit: 10, want: "hello"},
		{name: "exact limit", input: "hello", limit: 5, want: "hello"},
		{name: "over limit", input: "hello world", limit: 5, want: "hello"},
		{name: "zero limit", input: "hello", limit: 0, want: ""},
		{name: "empty", input: "", limit: 5, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, normalize.Truncate(tt.input, tt.limit))
		})
	}
}

func TestTruncateExactLengthAtProviderLimit(t *testing.T) {
	long := strings.Repeat("a", normalize.ProviderLimit+1234)
	got := normalize.Truncate(long, normalize.ProviderLimit)
	require.Equal(t, normalize.ProviderLimit, utf8.RuneCountInString(got))
}

func TestTruncateMultibyte(t *testing.T) {
	// counts characters, not bytes
	got := normalize.Truncate("zürich zürich", 7)
	require.Equal(t, "zürich ", got)
	require.Equal(t, 7, utf8.RuneCountInString(got))
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "paragraph breaks", input: "one\n\ntwo\t three", want: "one two three"},
		{name: "leading trailing", input: "  padded  ", want: "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, normalize.Collapse(tt.input))
		})
	}
}
