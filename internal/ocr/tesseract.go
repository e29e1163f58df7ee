package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractOCR runs a local Tesseract instance through gosseract. Invoices in
// this domain mix Spanish and English, so the default language set is
// "spa+eng".
type TesseractOCR struct {
	languages      []string
	tessdataPrefix string
}

// NewTesseractOCR creates a new Tesseract OCR engine. language uses the
// Tesseract convention of "+"-joined codes; tessdataPrefix may be empty to
// use the system default.
func NewTesseractOCR(language, tessdataPrefix string) *TesseractOCR {
	if language == "" {
		language = "spa+eng"
	}
	return &TesseractOCR{
		languages:      strings.Split(language, "+"),
		tessdataPrefix: tessdataPrefix,
	}
}

func (t *TesseractOCR) Name() string { return "tesseract" }

// ExtractText performs OCR on image bytes. The gosseract client is not safe
// for reuse across calls, so each extraction gets its own.
func (t *TesseractOCR) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.tessdataPrefix != "" {
		client.SetTessdataPrefix(t.tessdataPrefix)
	}
	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return text, nil
}
