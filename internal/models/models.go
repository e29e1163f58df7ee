package models

import (
	"github.com/shopspring/decimal"

	"github.com/verifactura/invoice-verify-service/internal/verify"
)

// Config represents the service configuration
type Config struct {
	// Server config
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// OCR config
	OCR OCRConfig `yaml:"ocr"`

	// AI vision transcription config (alternative OCR engines)
	AI AIConfig `yaml:"ai"`
}

// OCRConfig represents OCR-specific configuration
type OCRConfig struct {
	Engine         string `yaml:"engine"`          // "tesseract", "openai" or "gemini"
	Language       string `yaml:"language"`        // Tesseract languages (default: "spa+eng")
	TessdataPrefix string `yaml:"tessdata_prefix"` // Tesseract data path, empty = system default
	Preprocess     bool   `yaml:"preprocess"`      // ImageMagick enhancement before Tesseract
}

// AIConfig holds the vision-model OCR engine settings
type AIConfig struct {
	OpenAI OpenAIConfig `yaml:"openai"`
	Gemini GeminiConfig `yaml:"gemini"`
}

// OpenAIConfig for OpenAI/Azure OpenAI vision transcription
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"` // For custom endpoints
	Model   string `yaml:"model"`              // Default: "gpt-4o"
}

// GeminiConfig for Google Gemini vision transcription
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-1.5-flash"
}

// Summary condenses a verification result for API responses and persistence:
// the layout, the rounded aggregates and the line-level match counts.
type Summary struct {
	Layout          string           `json:"layout"`
	TotalCalculado  decimal.Decimal  `json:"totalCalculado"`
	IVACalculado    decimal.Decimal  `json:"ivaCalculado"`
	TotalReportado  *decimal.Decimal `json:"totalReportado,omitempty"`
	Cuadra          *bool            `json:"cuadra,omitempty"`
	Lineas          int              `json:"lineas"`
	LineasCuadradas int              `json:"lineasCuadradas"`
}

// NewSummary builds the API summary from a verification result. Amounts are
// rounded to two decimals for presentation; the raw result keeps full
// precision.
func NewSummary(r *verify.Result) Summary {
	s := Summary{
		Layout:          string(r.Layout),
		Lineas:          len(r.Lines),
		LineasCuadradas: r.MatchedLines(),
	}
	if r.Totals != nil {
		s.TotalCalculado = round2(r.Totals.Calculated)
		s.IVACalculado = round2(r.Totals.Tax)
		if r.Totals.Reported != nil {
			d := round2(*r.Totals.Reported)
			s.TotalReportado = &d
		}
		s.Cuadra = r.Totals.Match
	}
	return s
}

func round2(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
