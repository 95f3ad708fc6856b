// Package ai wraps the Gemini API behind a small client interface so the
// advisor service can be exercised with a fake in tests.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is the contract with the generative-AI collaborator. All methods
// are blocking round trips; callers own timeouts via ctx.
type Client interface {
	// GenerateText returns a free-text answer for the prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateStructured asks for a JSON response and unmarshals it into
	// output.
	GenerateStructured(ctx context.Context, prompt string, output any) error

	// GenerateImage returns raw PNG bytes for the prompt.
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)

	// Close releases the underlying connection.
	Close()
}

type geminiClient struct {
	client     *genai.Client
	text       *genai.GenerativeModel
	structured *genai.GenerativeModel
	image      *genai.GenerativeModel
}

// NewGeminiClient builds a Gemini-backed Client. textModel and imageModel
// fall back to sensible defaults when empty.
func NewGeminiClient(ctx context.Context, apiKey, textModel, imageModel string) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}
	if imageModel == "" {
		imageModel = "gemini-2.5-flash-image"
	}

	text := client.GenerativeModel(textModel)
	text.SetTemperature(0.7)

	structured := client.GenerativeModel(textModel)
	structured.SetTemperature(0.7)
	structured.ResponseMIMEType = "application/json"

	return &geminiClient{
		client:     client,
		text:       text,
		structured: structured,
		image:      client.GenerativeModel(imageModel),
	}, nil
}

func (g *geminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.text.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

func (g *geminiClient) GenerateStructured(ctx context.Context, prompt string, output any) error {
	resp, err := g.structured.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return err
	}
	txt, err := firstText(resp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(txt), output); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}

func (g *geminiClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.image.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from model")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			return blob.Data, nil
		}
	}
	return nil, fmt.Errorf("no image content in response")
}

func (g *geminiClient) Close() {
	g.client.Close()
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from model")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}
