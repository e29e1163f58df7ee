package ocr

import (
	"context"
	"fmt"

	"github.com/verifactura/invoice-verify-service/internal/models"
)

// Engine turns an invoice image into raw text. Engines are external black
// boxes; the verification core only ever sees the text they return.
type Engine interface {
	// Name identifies the engine in logs and health output.
	Name() string
	// ExtractText performs the transcription. Implementations must not
	// modify imageData.
	ExtractText(ctx context.Context, imageData []byte) (string, error)
}

// NewEngine creates the configured OCR engine. An empty name selects
// Tesseract, the only engine that runs without credentials.
func NewEngine(name string, config *models.Config) (Engine, error) {
	switch name {
	case "", "tesseract":
		return NewTesseractOCR(config.OCR.Language, config.OCR.TessdataPrefix), nil

	case "openai":
		if config.AI.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai engine requires an API key")
		}
		return NewOpenAIVision(
			config.AI.OpenAI.APIKey,
			config.AI.OpenAI.BaseURL,
			config.AI.OpenAI.Model,
		), nil

	case "gemini":
		if config.AI.Gemini.APIKey == "" {
			return nil, fmt.Errorf("gemini engine requires an API key")
		}
		return NewGeminiVision(config.AI.Gemini.APIKey, config.AI.Gemini.Model), nil

	default:
		return nil, fmt.Errorf("unsupported OCR engine: %s", name)
	}
}

// transcribePrompt instructs vision models to behave like a plain OCR pass.
// Layout classification depends on line structure, so the prompt insists on
// preserving it.
const transcribePrompt = `Transcribe TODO el texto visible en esta imagen de factura, exactamente como aparece.
Conserva los saltos de linea y el orden de las columnas. No traduzcas, no resumas,
no corrijas cifras y no agregues comentarios: devuelve unicamente el texto transcrito.`
