package ocr

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIVision transcribes invoice images with an OpenAI (or compatible)
// vision model. Useful when the image is too degraded for Tesseract.
type OpenAIVision struct {
	client *openai.Client
	model  string
}

// NewOpenAIVision creates the engine. baseURL may point at an OpenAI-
// compatible proxy; model defaults to gpt-4o.
func NewOpenAIVision(apiKey, baseURL, model string) *OpenAIVision {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIVision{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (o *OpenAIVision) Name() string { return "openai" }

// ExtractText sends the image plus the transcription prompt and returns the
// model's text verbatim.
func (o *OpenAIVision) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	imageURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageData)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: transcribePrompt,
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
