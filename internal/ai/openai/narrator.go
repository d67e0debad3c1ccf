package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/leaf468/memehack/internal/models"
)

const (
	reportSystemPrompt = `You are a crypto meme coin analyst. Provide concise, data-driven market analysis.
Keep responses under 200 words. Use emojis sparingly. Be direct and actionable.`

	insightSystemPrompt = `You are a meme coin analyst. Provide brief, actionable insights.
Keep responses under 50 words. Be direct.`

	captionSystemPrompt = "You are a creative meme caption generator for crypto traders. Be funny, relatable, and brief."
)

// OpenAINarrator implements the Narrator interface using OpenAI
type OpenAINarrator struct {
	client *openai.Client
	model  string
}

// NewOpenAINarrator creates a new OpenAI narrator instance
func NewOpenAINarrator(apiKey string, model string) *OpenAINarrator {
	client := openai.NewClient(apiKey)
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAINarrator{
		client: client,
		model:  model,
	}
}

// MarketReport implements the Narrator interface
func (n *OpenAINarrator) MarketReport(ctx context.Context, tokens []models.TokenInsight) (string, error) {
	if len(tokens) == 0 {
		return "", fmt.Errorf("no token data provided")
	}

	var lines []string
	for _, t := range tokens {
		line := fmt.Sprintf("%s: $%.6f, 24h: %+.1f%%, Vol: $%.1fM, MCap: $%.0fM",
			t.Symbol, t.Market.Price, t.Market.Change24h,
			t.Market.Volume24h/1e6, t.Market.MarketCap/1e6)
		if t.Sentiment.Value > 0 {
			line += fmt.Sprintf(", Sentiment: %.0f%%", t.Sentiment.Value)
		}
		lines = append(lines, line)
	}

	prompt := fmt.Sprintf(`Analyze this meme coin market data and provide a brief market report:

%s

Provide:
1. Overall market sentiment (1 sentence)
2. Top opportunity (1 sentence with symbol)
3. Key risk to watch (1 sentence)
4. Short-term outlook (1 sentence)`, strings.Join(lines, "\n"))

	resp, err := n.createChatCompletion(ctx, reportSystemPrompt, prompt, 300, 0.7)
	if err != nil {
		return "", fmt.Errorf("failed to generate market report: %w", err)
	}
	return resp, nil
}

// TokenInsight implements the Narrator interface
func (n *OpenAINarrator) TokenInsight(ctx context.Context, token models.TokenInsight) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s):\n", token.Symbol, token.Name)
	fmt.Fprintf(&b, "- Price: $%.6f\n", token.Market.Price)
	fmt.Fprintf(&b, "- 24h Change: %+.1f%%\n", token.Market.Change24h)
	fmt.Fprintf(&b, "- Volume: $%.1fM\n", token.Market.Volume24h/1e6)
	fmt.Fprintf(&b, "- Market Cap: $%.0fM\n", token.Market.MarketCap/1e6)
	if token.Sentiment.Value > 0 {
		fmt.Fprintf(&b, "- Community Sentiment: %.0f%%\n", token.Sentiment.Value)
	}
	if token.Social.State == models.SocialMeasured {
		fmt.Fprintf(&b, "- Community Activity: %d active users\n", token.Social.Snapshot.ActiveUsers)
	}
	b.WriteString("\nGive a 1-2 sentence trading insight.")

	resp, err := n.createChatCompletion(ctx, insightSystemPrompt, b.String(), 300, 0.7)
	if err != nil {
		return "", fmt.Errorf("failed to generate token insight: %w", err)
	}
	return resp, nil
}

// MemeCaption implements the Narrator interface
func (n *OpenAINarrator) MemeCaption(ctx context.Context, prompt string) (string, error) {
	resp, err := n.createChatCompletion(ctx, captionSystemPrompt, prompt, 100, 0.9)
	if err != nil {
		return "", fmt.Errorf("failed to generate meme caption: %w", err)
	}
	return resp, nil
}

// createChatCompletion is a helper function to make OpenAI API calls
func (n *OpenAINarrator) createChatCompletion(ctx context.Context, system, prompt string, maxTokens int, temperature float32) (string, error) {
	resp, err := n.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: n.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: system,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
