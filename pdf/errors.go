package pdf

import "fmt"

// RangeError reports a 1-based page number outside the document's page range.
type RangeError struct {
	Page       int
	TotalPages int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("page %d is out of range (1-%d)", e.Page, e.TotalPages)
}

// LabelNotFoundError reports a page label absent from the document.
type LabelNotFoundError struct {
	Label string
}

func (e *LabelNotFoundError) Error() string {
	return fmt.Sprintf("page label %q not found in document", e.Label)
}

// OutputExistsError reports a refusal to overwrite an existing output file.
type OutputExistsError struct {
	Path string
}

func (e *OutputExistsError) Error() string {
	return fmt.Sprintf("output file %s already exists", e.Path)
}

// UsageError reports an invalid combination of selection options.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}
