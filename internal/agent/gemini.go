package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Decide(ctx context.Context, conversation []Message) (string, error) {
	return g.generate(ctx, decisionPrompt, toContents(conversation))
}

func (g *Gemini) Finalize(ctx context.Context, conversation []Message, action Action, toolResult []byte) (string, error) {
	contents := toContents(conversation)
	contents = append(contents, genai.NewContentFromText(toolResultMessage(action, toolResult), genai.RoleUser))
	return g.generate(ctx, finalizePrompt, contents)
}

func (g *Gemini) generate(ctx context.Context, system string, contents []*genai.Content) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0.2),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}

// toContents maps chat roles onto the two roles Gemini accepts.
func toContents(conversation []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(conversation))
	for _, m := range conversation {
		role := genai.Role(genai.RoleUser)
		if m.Role != RoleUser {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Content, role))
	}
	return out
}
