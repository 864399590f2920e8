// Package stagetransform provides reference TextTransformer
// implementations for the pipeline's three stages: two LLM-backed
// (Gemini, OpenAI) and one deterministic local pass. None of this
// package is imported by internal/pipeline or any other core package;
// the pipeline depends only on the TextTransformer function type.
package stagetransform

import (
	"context"

	"github.com/subtrans/core/internal/gemini"
)

// GeminiTransformer adapts a gemini.Client into the pipeline's
// TextTransformer contract, pairing one fixed system instruction (the
// stage's role prompt) with each call's input chunk.
type GeminiTransformer struct {
	Client       *gemini.Client
	SystemPrompt string
}

// Transform sends input as the user turn with the configured system
// instruction and returns the model's text output.
func (t GeminiTransformer) Transform(ctx context.Context, input string) (string, error) {
	t.Client.SetSystemInstruction(t.SystemPrompt)
	return t.Client.GenerateText(ctx, input)
}
