package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiLLMClient implements LLMClient using Google's Gemini API.
type GeminiLLMClient struct {
	client  *genai.Client
	modelID string
}

// NewGeminiLLMClient creates a new Gemini LLM client.
func NewGeminiLLMClient(ctx context.Context, apiKey, modelID string) (*GeminiLLMClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("conversation: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("conversation: failed to create gemini client: %w", err)
	}

	return &GeminiLLMClient{
		client:  client,
		modelID: modelID,
	}, nil
}

// Complete sends a completion request to Gemini and returns the response.
func (c *GeminiLLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	if len(req.Messages) == 0 {
		return LLMResponse{}, errors.New("conversation: gemini requires at least one message")
	}

	model := c.client.GenerativeModel(c.modelID)
	if req.Temperature >= 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	if len(req.System) > 0 {
		systemText := strings.TrimSpace(strings.Join(req.System, "\n\n"))
		if systemText != "" {
			model.SystemInstruction = genai.NewUserContent(genai.Text(systemText))
		}
	}

	cs := model.StartChat()
	for _, msg := range req.Messages[:len(req.Messages)-1] {
		content := strings.TrimSpace(msg.Content)
		if content == "" || msg.Role == ChatRoleSystem {
			continue
		}
		role := "user"
		if msg.Role == ChatRoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(content)},
		})
	}

	last := req.Messages[len(req.Messages)-1]
	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return LLMResponse{}, fmt.Errorf("conversation: gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return LLMResponse{}, errors.New("conversation: gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return LLMResponse{}, errors.New("conversation: gemini returned empty content")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	return LLMResponse{
		Text:       strings.TrimSpace(text.String()),
		StopReason: string(candidate.FinishReason),
	}, nil
}

// Close releases resources held by the Gemini client.
func (c *GeminiLLMClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
