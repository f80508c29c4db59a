package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	pdfPkg "pdf_extract/pdf"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleExtract extracts the requested pages from an uploaded PDF and
// returns the new document as a download.
func HandleExtract(c *gin.Context, config *Config) {
	request := pdfPkg.Request{
		Pages:    c.PostForm("pages"),
		From:     c.PostForm("from"),
		To:       c.PostForm("to"),
		ByLabel:  formBool(c, "by_label"),
		Optimize: formBool(c, "optimize"),
	}
	if err := request.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inFile, cleanup, ok := saveUpload(c, config)
	if !ok {
		return
	}

	outFile := strings.TrimSuffix(inFile, ".pdf") + "_extracted.pdf"

	pageCount, err := pdfPkg.ExtractFile(inFile, outFile, request)
	if err != nil {
		cleanup()
		config.Logger.WithError(err).Warn("Page extraction failed")
		c.JSON(extractErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	config.Logger.WithFields(logrus.Fields{
		"pages":    pageCount,
		"by_label": request.ByLabel,
	}).Info("Pages extracted")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", sanitizeFilename(request.DefaultOutputName())))
	c.File(outFile)

	// Clean up temp files after the response is sent to avoid truncating
	// the download.
	defer func() {
		go func() {
			time.Sleep(FileCleanupDelay)
			cleanup()
			os.Remove(outFile)
		}()
	}()
}

// HandleInfo reports the page count and page labels of an uploaded PDF.
func HandleInfo(c *gin.Context, config *Config) {
	inFile, cleanup, ok := saveUpload(c, config)
	if !ok {
		return
	}
	defer cleanup()

	doc, err := pdfPkg.Open(inFile)
	if err != nil {
		config.Logger.WithError(err).Warn("Failed to open uploaded PDF")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read PDF"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_pages": doc.PageCount(),
		"labels":      doc.PageLabels(),
	})
}

// extractErrorStatus maps selection failures to 400 and everything else,
// including read and write failures, to 500.
func extractErrorStatus(err error) int {
	var rangeErr *pdfPkg.RangeError
	var labelErr *pdfPkg.LabelNotFoundError
	var usageErr *pdfPkg.UsageError
	if errors.As(err, &rangeErr) || errors.As(err, &labelErr) || errors.As(err, &usageErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// saveUpload validates the uploaded "pdf" form file and stores it under a
// unique name in the temp directory. The returned cleanup removes it. On
// failure a JSON error response has already been written and ok is false.
func saveUpload(c *gin.Context, config *Config) (path string, cleanup func(), ok bool) {
	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return "", nil, false
	}
	defer file.Close()

	if err := validatePDFFile(file, header, config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, false
	}

	if err := ensureTempDir(config.TempDir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return "", nil, false
	}

	inFile := filepath.Join(config.TempDir, "input_"+generateUniqueID()+".pdf")

	out, err := os.Create(inFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp file"})
		return "", nil, false
	}

	_, err = out.ReadFrom(file)
	out.Close()
	if err != nil {
		os.Remove(inFile)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save input file"})
		return "", nil, false
	}

	return inFile, func() { os.Remove(inFile) }, true
}

// formBool reads a boolean form field, treating "1", "true", "on" and "yes"
// as true.
func formBool(c *gin.Context, field string) bool {
	switch strings.ToLower(strings.TrimSpace(c.PostForm(field))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// ensureTempDir creates the temp directory if it doesn't exist
func ensureTempDir(tempDir string) error {
	return os.MkdirAll(tempDir, DefaultFilePermissions)
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	// Remove directory separators and path traversal attempts
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	// Get just the base filename to prevent path issues
	filename = filepath.Base(filename)
	filename = strings.TrimSpace(filename)

	if filename == "" {
		filename = "document.pdf"
	}

	return filename
}

// generateUniqueID generates a unique identifier for temp files
func generateUniqueID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), hex.EncodeToString(b))
}

// validatePDFFile checks if the file is a valid PDF by reading the header
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	// Read first 4 bytes to check PDF header
	buffer := make([]byte, 4)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file header: %v", err)
	}

	if n >= 4 && string(buffer[:4]) != "%PDF" {
		return fmt.Errorf("invalid PDF file: header does not match")
	}

	// Seek back to beginning for subsequent reads
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to reset file position: %v", err)
	}

	return nil
}
