package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Whatever stage of the write pipeline fails, no partial output file may
// remain on disk.
func TestWritePagesRemovesOutputOnFailure(t *testing.T) {
	dir := t.TempDir()

	inFile := filepath.Join(dir, "not-a-pdf.pdf")
	require.NoError(t, os.WriteFile(inFile, []byte("plain text, no PDF here"), 0644))

	f := &File{
		path:      inFile,
		pageCount: 1,
		labels:    []string{"1"},
		conf:      model.NewDefaultConfiguration(),
	}

	outFile := filepath.Join(dir, "out.pdf")
	err := f.WritePages([]int{0}, outFile)
	require.Error(t, err)

	_, statErr := os.Stat(outFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWritePagesFailsOnMissingInput(t *testing.T) {
	dir := t.TempDir()

	f := &File{
		path:      filepath.Join(dir, "gone.pdf"),
		pageCount: 1,
		conf:      model.NewDefaultConfiguration(),
	}

	err := f.WritePages([]int{0}, filepath.Join(dir, "out.pdf"))
	assert.Error(t, err)
}
