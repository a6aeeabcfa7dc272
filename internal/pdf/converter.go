package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

var ErrNoPages = errors.New("pdf has no pages")

// Inspect opens a PDF and returns its page count. Files that MuPDF cannot
// open, or that have no pages, are rejected.
func Inspect(pdfData []byte) (int, error) {
	if !bytes.HasPrefix(pdfData, []byte("%PDF-")) {
		return 0, fmt.Errorf("failed to open PDF: missing header")
	}

	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount < 1 {
		return 0, ErrNoPages
	}
	return pageCount, nil
}

// DetectImageFormat returns the registered image format of data ("jpeg", "png", "gif")
func DetectImageFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return format, nil
}
