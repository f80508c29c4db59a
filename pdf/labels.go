package pdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// labelRange is one entry of the catalog's PageLabels number tree: it labels
// all pages from its start index up to the next entry (PDF 32000-1, 12.4.2).
type labelRange struct {
	style  string // D, R, r, A, a or empty
	prefix string
	start  int // value of the first page in the range, default 1
}

// pageLabels expands the document's PageLabels number tree into one display
// label per page. Documents without a PageLabels entry get the viewer
// default of decimal labels "1".."N".
func pageLabels(ctx *model.Context) ([]string, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to read document catalog: %v", err)
	}

	entries := map[int]labelRange{}
	if obj, found := rootDict.Find("PageLabels"); found {
		if err := collectLabelRanges(ctx, obj, entries); err != nil {
			return nil, err
		}
	}

	return expandLabelRanges(entries, ctx.PageCount), nil
}

// expandLabelRanges assigns each page the label of the range it falls into:
// a range entry at start index s labels pages s up to the next entry, with
// numbering values continuing from its start value. Pages not covered by
// any entry keep the default decimal label.
func expandLabelRanges(entries map[int]labelRange, pageCount int) []string {
	labels := make([]string, pageCount)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}

	starts := make([]int, 0, len(entries))
	for start := range entries {
		if start >= 0 && start < pageCount {
			starts = append(starts, start)
		}
	}
	sort.Ints(starts)

	for i, start := range starts {
		end := pageCount
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		lr := entries[start]
		for page := start; page < end; page++ {
			labels[page] = lr.format(lr.start + page - start)
		}
	}

	return labels
}

// collectLabelRanges walks a number tree node, descending into Kids and
// reading Nums pairs of [page-index, label-dict].
func collectLabelRanges(ctx *model.Context, obj types.Object, entries map[int]labelRange) error {
	d, err := ctx.DereferenceDict(obj)
	if err != nil {
		return fmt.Errorf("invalid PageLabels tree node: %v", err)
	}
	if d == nil {
		return nil
	}

	if kids, found := d.Find("Kids"); found {
		arr, err := ctx.DereferenceArray(kids)
		if err != nil {
			return fmt.Errorf("invalid PageLabels Kids array: %v", err)
		}
		for _, kid := range arr {
			if err := collectLabelRanges(ctx, kid, entries); err != nil {
				return err
			}
		}
	}

	nums, found := d.Find("Nums")
	if !found {
		return nil
	}
	arr, err := ctx.DereferenceArray(nums)
	if err != nil {
		return fmt.Errorf("invalid PageLabels Nums array: %v", err)
	}

	for i := 0; i+1 < len(arr); i += 2 {
		idxObj, err := ctx.Dereference(arr[i])
		if err != nil {
			return err
		}
		idx, ok := idxObj.(types.Integer)
		if !ok {
			return fmt.Errorf("PageLabels Nums key is not an integer: %v", idxObj)
		}
		lr, err := labelRangeDict(ctx, arr[i+1])
		if err != nil {
			return err
		}
		entries[idx.Value()] = lr
	}

	return nil
}

// labelRangeDict reads one page label dictionary (S, P, St entries).
func labelRangeDict(ctx *model.Context, obj types.Object) (labelRange, error) {
	lr := labelRange{start: 1}

	d, err := ctx.DereferenceDict(obj)
	if err != nil {
		return lr, fmt.Errorf("invalid page label dict: %v", err)
	}
	if d == nil {
		return lr, fmt.Errorf("page label entry is not a dictionary")
	}

	if o, found := d.Find("S"); found {
		name, err := ctx.Dereference(o)
		if err != nil {
			return lr, err
		}
		if n, ok := name.(types.Name); ok {
			lr.style = n.Value()
		}
	}

	if o, found := d.Find("P"); found {
		prefix, err := ctx.Dereference(o)
		if err != nil {
			return lr, err
		}
		switch p := prefix.(type) {
		case types.StringLiteral:
			s, err := types.StringLiteralToString(p)
			if err != nil {
				return lr, err
			}
			lr.prefix = s
		case types.HexLiteral:
			s, err := types.HexLiteralToString(p)
			if err != nil {
				return lr, err
			}
			lr.prefix = s
		}
	}

	if o, found := d.Find("St"); found {
		st, err := ctx.Dereference(o)
		if err != nil {
			return lr, err
		}
		if n, ok := st.(types.Integer); ok && n.Value() >= 1 {
			lr.start = n.Value()
		}
	}

	return lr, nil
}

// format renders the label for numbering value n in this range's style.
func (lr labelRange) format(n int) string {
	switch lr.style {
	case "D":
		return lr.prefix + strconv.Itoa(n)
	case "R":
		return lr.prefix + toRoman(n)
	case "r":
		return lr.prefix + strings.ToLower(toRoman(n))
	case "A":
		return lr.prefix + toLetters(n)
	case "a":
		return lr.prefix + strings.ToLower(toLetters(n))
	}
	return lr.prefix
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// toRoman converts n >= 1 to an uppercase roman numeral.
func toRoman(n int) string {
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String()
}

// toLetters converts n >= 1 to the alphabetic numbering A..Z, AA..ZZ, ...
// used by the A and a label styles: 27 is AA, not a base-26 positional AB.
func toLetters(n int) string {
	if n < 1 {
		return ""
	}
	letter := string(rune('A' + (n-1)%26))
	return strings.Repeat(letter, (n-1)/26+1)
}
