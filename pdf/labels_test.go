package pdf

import (
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRoman(t *testing.T) {
	tests := map[int]string{
		1:    "I",
		2:    "II",
		4:    "IV",
		9:    "IX",
		14:   "XIV",
		40:   "XL",
		90:   "XC",
		444:  "CDXLIV",
		1990: "MCMXC",
		2026: "MMXXVI",
	}

	for n, expected := range tests {
		assert.Equal(t, expected, toRoman(n), "toRoman(%d)", n)
	}
}

func TestToLetters(t *testing.T) {
	tests := map[int]string{
		1:  "A",
		2:  "B",
		26: "Z",
		27: "AA",
		28: "BB",
		52: "ZZ",
		53: "AAA",
	}

	for n, expected := range tests {
		assert.Equal(t, expected, toLetters(n), "toLetters(%d)", n)
	}
}

func TestLabelRangeFormat(t *testing.T) {
	tests := []struct {
		name     string
		lr       labelRange
		n        int
		expected string
	}{
		{"decimal", labelRange{style: "D"}, 7, "7"},
		{"decimal with prefix", labelRange{style: "D", prefix: "A-"}, 3, "A-3"},
		{"upper roman", labelRange{style: "R"}, 4, "IV"},
		{"lower roman", labelRange{style: "r"}, 4, "iv"},
		{"upper letters", labelRange{style: "A"}, 27, "AA"},
		{"lower letters", labelRange{style: "a"}, 2, "b"},
		{"prefix only", labelRange{prefix: "Appendix"}, 9, "Appendix"},
		{"no style no prefix", labelRange{}, 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.lr.format(tt.n))
		})
	}
}

func TestExpandLabelRanges(t *testing.T) {
	tests := []struct {
		name      string
		entries   map[int]labelRange
		pageCount int
		expected  []string
	}{
		{
			"no entries yields decimal defaults",
			nil, 3,
			[]string{"1", "2", "3"},
		},
		{
			"front matter then decimal restart",
			map[int]labelRange{
				0: {style: "r", start: 1},
				3: {style: "D", start: 1},
			},
			5,
			[]string{"i", "ii", "iii", "1", "2"},
		},
		{
			"range not starting at page 0 leaves defaults before it",
			map[int]labelRange{2: {style: "A", start: 1}},
			4,
			[]string{"1", "2", "A", "B"},
		},
		{
			"start offset continues within the range",
			map[int]labelRange{0: {style: "D", start: 10}},
			3,
			[]string{"10", "11", "12"},
		},
		{
			"style-less prefix range labels every page the same",
			map[int]labelRange{
				0: {style: "D", start: 1},
				2: {prefix: "Index", start: 1},
			},
			4,
			[]string{"1", "2", "Index", "Index"},
		},
		{
			"entries past the page count are ignored",
			map[int]labelRange{
				0: {style: "D", start: 1},
				9: {style: "r", start: 1},
			},
			2,
			[]string{"1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandLabelRanges(tt.entries, tt.pageCount))
		})
	}
}

func TestCollectLabelRangesNestedTree(t *testing.T) {
	ctx := &model.Context{XRefTable: &model.XRefTable{}}

	leafFront := types.Dict{
		"Nums": types.Array{
			types.Integer(0),
			types.Dict{"S": types.Name("r")},
		},
	}
	leafBody := types.Dict{
		"Nums": types.Array{
			types.Integer(3),
			types.Dict{
				"S":  types.Name("D"),
				"P":  types.StringLiteral("B-"),
				"St": types.Integer(7),
			},
		},
	}
	root := types.Dict{"Kids": types.Array{leafFront, leafBody}}

	entries := map[int]labelRange{}
	require.NoError(t, collectLabelRanges(ctx, root, entries))

	assert.Equal(t, map[int]labelRange{
		0: {style: "r", start: 1},
		3: {style: "D", prefix: "B-", start: 7},
	}, entries)

	labels := expandLabelRanges(entries, 5)
	assert.Equal(t, []string{"i", "ii", "iii", "B-7", "B-8"}, labels)
}

func TestCollectLabelRangesRejectsNonDictEntry(t *testing.T) {
	ctx := &model.Context{XRefTable: &model.XRefTable{}}

	tree := types.Dict{
		"Nums": types.Array{types.Integer(0), types.Integer(42)},
	}

	entries := map[int]labelRange{}
	assert.Error(t, collectLabelRanges(ctx, tree, entries))
}

// A style-less entry labels every page in its range with the bare prefix;
// the selector must then send all of them to the first page of the range.
func TestPrefixOnlyRangeYieldsDuplicateLabels(t *testing.T) {
	lr := labelRange{prefix: "Index"}
	assert.Equal(t, lr.format(1), lr.format(2))

	s := NewSelector(3, []string{"Index", "Index", "Index"})
	indices, err := s.Parse("Index", true)
	assert.NoError(t, err)
	assert.Equal(t, []int{0}, indices)
}
