package ai

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient is the secondary provider, used when the primary one fails.
type OpenAIClient struct {
	client            *openai.Client
	model             string
	systemInstruction string
}

func NewOpenAIClient(apiKey, model, systemInstruction string) *OpenAIClient {
	return NewOpenAIClientWithConfig(openai.DefaultConfig(apiKey), model, systemInstruction)
}

// NewOpenAIClientWithConfig allows pointing the client at a compatible endpoint.
func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model, systemInstruction string) *OpenAIClient {
	return &OpenAIClient{
		client:            openai.NewClientWithConfig(cfg),
		model:             model,
		systemInstruction: systemInstruction,
	}
}

func (c *OpenAIClient) Name() string { return "openai:" + c.model }

func (c *OpenAIClient) Generate(ctx context.Context, contents []Content) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(contents)+1)
	if c.systemInstruction != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: c.systemInstruction})
	}
	for _, content := range contents {
		msgs = append(msgs, toOpenAIMessage(content))
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessage(content Content) openai.ChatCompletionMessage {
	role := openai.ChatMessageRoleUser
	if content.Role == RoleModel {
		role = openai.ChatMessageRoleAssistant
	}

	hasImage := false
	for _, p := range content.Parts {
		if p.IsImage() {
			hasImage = true
			break
		}
	}
	if !hasImage || role == openai.ChatMessageRoleAssistant {
		text := ""
		for _, p := range content.Parts {
			text += p.Text
		}
		return openai.ChatCompletionMessage{Role: role, Content: text}
	}

	parts := make([]openai.ChatMessagePart, 0, len(content.Parts))
	for _, p := range content.Parts {
		if p.IsImage() {
			parts = append(parts, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: p.DataURL(), Detail: openai.ImageURLDetailAuto},
			})
			continue
		}
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		parts = append(parts, openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: p.Text})
	}
	return openai.ChatCompletionMessage{Role: role, MultiContent: parts}
}

var _ Provider = (*OpenAIClient)(nil)
var _ Provider = (*GeminiClient)(nil)
var _ Provider = (*Chain)(nil)
