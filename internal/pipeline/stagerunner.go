package pipeline

import (
	"context"
	"fmt"

	"github.com/subtrans/core/internal/formatguard"
	"github.com/subtrans/core/internal/logger"
	"github.com/subtrans/core/internal/srt"
)

// StageRunner drives the three ordered transformers over one chunk,
// falling back to the previous stage's validated output whenever
// FormatGuard cannot recover a usable cue list from a stage's raw output.
// Only a transport-level error aborts the chunk; a format recovery
// failure never does (it silently falls back instead).
type StageRunner struct {
	Segmenter   TextTransformer
	Proofreader TextTransformer
	Translator  TextTransformer
}

// Run executes Segmenter, Proofreader, then Translator over s0 in order,
// guarding each stage's output before feeding it to the next, and
// returns the final validated serialization.
func (r StageRunner) Run(ctx context.Context, s0 string) (string, error) {
	s1, err := guardedStage(ctx, r.Segmenter, s0, "segmenter")
	if err != nil {
		return "", err
	}
	s2, err := guardedStage(ctx, r.Proofreader, s1, "proofreader")
	if err != nil {
		return "", err
	}
	s3, err := guardedStage(ctx, r.Translator, s2, "translator")
	if err != nil {
		return "", err
	}
	return s3, nil
}

func guardedStage(ctx context.Context, stage TextTransformer, input, name string) (string, error) {
	raw, err := stage(ctx, input)
	if err != nil {
		return "", fmt.Errorf("pipeline: %s transport error: %w", name, err)
	}
	outcome := formatguard.Check(raw)
	if !outcome.Valid {
		// FormatGuard failed to recover a cue list; fall back to the
		// previous stage's validated text rather than aborting.
		return input, nil
	}
	if outcome.Recovered {
		logger.Warn("format guard recovered stage output", "stage", name, "guard_path", outcome.GuardPath)
	}
	return srt.Compose(outcome.Cues, srt.ComposeOptions{Reindex: false, Strict: true, EOL: "\n"}), nil
}
