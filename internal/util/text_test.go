package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollapseSpaces(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "  Maps   of\tOhio \n", want: "Maps of Ohio"},
		{input: "plain", want: "plain"},
		{input: "   ", want: ""},
		{input: "", want: ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CollapseSpaces(tc.input), "input %q", tc.input)
	}
}

func TestSplitSemicolons(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, SplitSemicolons("a;b; c"))
	require.Equal(t, []string{"a"}, SplitSemicolons(";; a ;"))
	require.Empty(t, SplitSemicolons(" ; "))
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"english":     "English",
		"FRENCH":      "French",
		"old ENGLISH": "Old english",
		"élan":        "Élan",
		"":            "",
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			require.Equal(t, want, Capitalize(input))
		})
	}
}

func TestFlatten(t *testing.T) {
	nested := []any{1, []any{2, []any{3, 4}, 5}}
	require.Equal(t, []any{1, 2, 3, 4, 5}, Flatten(nested))

	require.Equal(t, []any{"x"}, Flatten("x"))
	require.Equal(t, []any{}, Flatten([]any{}))
	require.Equal(t, []any{"a", "b"}, Flatten([]any{[]string{"a"}, []any{[]any{}, "b"}}))
	require.Equal(t, []any{nil}, Flatten(nil))
}

func TestFlattenDeepNesting(t *testing.T) {
	var v any = "leaf"
	for i := 0; i < 200; i++ {
		v = []any{v}
	}
	require.Equal(t, []any{"leaf"}, Flatten(v))
}
