package pdf

import (
	"fmt"
	"os"
	"strings"
)

// Request describes one page extraction. Exactly one of Pages or From must
// be set; To is only meaningful together with From. With ByLabel set, Pages,
// From and To are interpreted as page labels instead of 1-based numbers.
type Request struct {
	Pages    string
	From     string
	To       string
	ByLabel  bool
	Optimize bool
}

// Validate checks that the request selects pages in exactly one way.
func (r Request) Validate() error {
	hasPages := strings.TrimSpace(r.Pages) != ""
	hasFrom := strings.TrimSpace(r.From) != ""
	hasTo := strings.TrimSpace(r.To) != ""

	switch {
	case hasPages && hasFrom:
		return &UsageError{Message: "--pages cannot be combined with --from/--to"}
	case hasTo && !hasFrom:
		return &UsageError{Message: "--to requires --from"}
	case !hasPages && !hasFrom:
		return &UsageError{Message: "no pages selected: use --pages or --from/--to"}
	}
	return nil
}

// Resolve maps the request onto zero-based page indices of doc, in the
// order they should appear in the output.
func Resolve(doc Document, r Request) ([]int, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	selector := NewSelector(doc.PageCount(), doc.PageLabels())
	if strings.TrimSpace(r.Pages) != "" {
		return selector.Parse(r.Pages, r.ByLabel)
	}
	return selector.Span(strings.TrimSpace(r.From), strings.TrimSpace(r.To), r.ByLabel)
}

// DefaultOutputName derives an output filename from the selection itself:
// "1,3,5-7" becomes "1_3_5-7.pdf", from/to become "2-5.pdf" or "2.pdf".
func (r Request) DefaultOutputName() string {
	var name string
	switch {
	case strings.TrimSpace(r.Pages) != "":
		name = strings.ReplaceAll(strings.TrimSpace(r.Pages), ",", "_")
	case strings.TrimSpace(r.To) != "":
		name = strings.TrimSpace(r.From) + "-" + strings.TrimSpace(r.To)
	default:
		name = strings.TrimSpace(r.From)
	}

	// Labels may contain characters that are unsafe in filenames.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, " ", "_")

	return name + ".pdf"
}

// EnsureNewFile fails with OutputExistsError if path already exists.
func EnsureNewFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return &OutputExistsError{Path: path}
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %v", path, err)
	}
	return nil
}

// ExtractFile extracts the requested pages of inFile into a new PDF at
// outFile and returns the number of pages written. Nothing is written if
// any part of the selection is invalid or outFile already exists.
func ExtractFile(inFile, outFile string, r Request) (int, error) {
	if err := EnsureNewFile(outFile); err != nil {
		return 0, err
	}

	doc, err := Open(inFile)
	if err != nil {
		return 0, err
	}

	indices, err := Resolve(doc, r)
	if err != nil {
		return 0, err
	}

	if err := doc.WritePages(indices, outFile); err != nil {
		return 0, err
	}

	if r.Optimize {
		if err := Optimize(outFile); err != nil {
			return 0, err
		}
	}

	return len(indices), nil
}
