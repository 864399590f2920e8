package stagetransform

import (
	"context"

	"github.com/subtrans/core/internal/openai"
)

// OpenAITransformer adapts an openai.Client into the pipeline's
// TextTransformer contract.
type OpenAITransformer struct {
	Client       *openai.Client
	SystemPrompt string
}

func (t OpenAITransformer) Transform(ctx context.Context, input string) (string, error) {
	return t.Client.GenerateText(ctx, t.SystemPrompt, input)
}
