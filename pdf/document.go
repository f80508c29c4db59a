package pdf

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Document is the read-side view of a PDF needed for page selection.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int
	// PageLabels returns one display label per page, in page order.
	PageLabels() []string
}

// File wraps a PDF on disk, with metadata read once via pdfcpu.
type File struct {
	path      string
	pageCount int
	labels    []string
	conf      *model.Configuration
}

// Open reads the PDF at path and returns its selectable view. The file is
// parsed once for metadata; page data is read again on write.
func Open(path string) (*File, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF %s: %v", path, err)
	}

	labels, err := pageLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read page labels of %s: %v", path, err)
	}

	return &File{
		path:      path,
		pageCount: ctx.PageCount,
		labels:    labels,
		conf:      conf,
	}, nil
}

func (f *File) PageCount() int { return f.pageCount }

func (f *File) PageLabels() []string { return f.labels }

// WritePages writes the given zero-based page indices, in the given order
// and with duplicates preserved, into a fresh PDF at outFile. On failure the
// partial output file is removed so extraction stays all-or-nothing.
func (f *File) WritePages(indices []int, outFile string) error {
	selectedPages := make([]string, len(indices))
	for i, idx := range indices {
		selectedPages[i] = strconv.Itoa(idx + 1)
	}

	in, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %v", f.path, err)
	}
	defer in.Close()

	out, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", outFile, err)
	}

	if err := api.Collect(in, out, selectedPages, f.conf); err != nil {
		out.Close()
		os.Remove(outFile)
		return fmt.Errorf("failed to write pages to %s: %v", outFile, err)
	}

	// A failed close can leave a truncated document behind; remove it so
	// extraction stays all-or-nothing.
	if err := out.Close(); err != nil {
		os.Remove(outFile)
		return fmt.Errorf("failed to close %s: %v", outFile, err)
	}

	return nil
}

// Optimize rewrites the document at path in place through pdfcpu's
// optimizer, pruning unused objects left over after page collection.
func Optimize(path string) error {
	if err := api.OptimizeFile(path, "", model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("failed to optimize %s: %v", path, err)
	}
	return nil
}
