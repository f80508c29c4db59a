package pdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Selector resolves page selection expressions against a single document's
// page count and label sequence. Resolved pages are zero-based indices.
type Selector struct {
	pageCount int
	labels    map[string]int
}

// NewSelector builds a selector for a document with pageCount pages and the
// given ordered label sequence. A label occurring on more than one page
// resolves to its first occurrence.
func NewSelector(pageCount int, labels []string) *Selector {
	s := &Selector{
		pageCount: pageCount,
		labels:    make(map[string]int, len(labels)),
	}
	for i, label := range labels {
		if _, ok := s.labels[label]; !ok {
			s.labels[label] = i
		}
	}
	return s
}

// Parse resolves a comma-separated selection expression like "1,3,5-7"
// (or "i,iii,v-vii" with byLabel) into zero-based page indices. Order and
// duplicates in the expression are preserved; a reversed range is
// normalized to ascending order.
func (s *Selector) Parse(expr string, byLabel bool) ([]int, error) {
	var indices []int

	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("empty token in page expression %q", expr)
		}

		if i := strings.Index(token, "-"); i >= 0 {
			lo, err := s.resolve(token[:i], byLabel)
			if err != nil {
				return nil, err
			}
			hi, err := s.resolve(token[i+1:], byLabel)
			if err != nil {
				return nil, err
			}
			indices = appendRun(indices, lo, hi)
			continue
		}

		idx, err := s.resolve(token, byLabel)
		if err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}

	return indices, nil
}

// Span resolves the inclusive run between two endpoints. An empty "to"
// yields a single-page selection. Reversed endpoints are swapped.
func (s *Selector) Span(from, to string, byLabel bool) ([]int, error) {
	lo, err := s.resolve(from, byLabel)
	if err != nil {
		return nil, err
	}
	if to == "" {
		return []int{lo}, nil
	}
	hi, err := s.resolve(to, byLabel)
	if err != nil {
		return nil, err
	}
	return appendRun(nil, lo, hi), nil
}

// resolve maps a single token to a zero-based page index, either by parsing
// it as a 1-based page number or by looking it up in the label table.
func (s *Selector) resolve(token string, byLabel bool) (int, error) {
	token = strings.TrimSpace(token)

	if byLabel {
		idx, ok := s.labels[token]
		if !ok {
			return 0, &LabelNotFoundError{Label: token}
		}
		// A label table longer than the document must not yield an index
		// past the last page.
		if idx >= s.pageCount {
			return 0, &RangeError{Page: idx + 1, TotalPages: s.pageCount}
		}
		return idx, nil
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("invalid page number %q", token)
	}
	if n < 1 || n > s.pageCount {
		return 0, &RangeError{Page: n, TotalPages: s.pageCount}
	}
	return n - 1, nil
}

func appendRun(indices []int, lo, hi int) []int {
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		indices = append(indices, i)
	}
	return indices
}
