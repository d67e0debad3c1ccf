package ai

import (
	"context"
	"errors"

	"github.com/leaf468/memehack/internal/models"
)

// ErrNarratorDisabled is returned when narration was requested but no
// narrator is configured.
var ErrNarratorDisabled = errors.New("ai narrator is not configured")

// Narrator defines methods for LLM-generated narrative text
type Narrator interface {
	// MarketReport writes a short market commentary over a token batch
	MarketReport(ctx context.Context, tokens []models.TokenInsight) (string, error)

	// TokenInsight writes a 1-2 sentence trading insight for one token
	TokenInsight(ctx context.Context, token models.TokenInsight) (string, error)

	// MemeCaption writes a meme caption from a free-form prompt
	MemeCaption(ctx context.Context, prompt string) (string, error)
}
