package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiVision transcribes invoice images with Google Gemini.
type GeminiVision struct {
	apiKey string
	model  string
}

// NewGeminiVision creates the engine; model defaults to gemini-1.5-flash.
func NewGeminiVision(apiKey, model string) *GeminiVision {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiVision{apiKey: apiKey, model: model}
}

func (g *GeminiVision) Name() string { return "gemini" }

// ExtractText sends the original image bytes; Gemini reads color images
// better than preprocessed grayscale ones, so callers should skip the
// ImageMagick pipeline for this engine.
func (g *GeminiVision) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx,
		genai.Text(transcribePrompt),
		genai.ImageData("jpeg", imageData),
	)
	if err != nil {
		return "", fmt.Errorf("gemini transcription failed: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text")
	}
	return sb.String(), nil
}
