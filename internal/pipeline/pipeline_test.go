package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/subtrans/core/internal/chunker"
)

type memStore struct {
	files map[string]string
}

func newMemStore(inputPath, content string) *memStore {
	return &memStore{files: map[string]string{inputPath: content}}
}

func (m *memStore) Read(_ context.Context, path string) (string, error) {
	c, ok := m.files[path]
	if !ok {
		return "", &notFoundError{path}
	}
	return c, nil
}

func (m *memStore) Write(_ context.Context, path, content string) error {
	m.files[path] = content
	return nil
}

type notFoundError struct{ path string }

func (e *notFoundError) Error() string { return "not found: " + e.path }

func echoTransformer(_ context.Context, s string) (string, error) { return s, nil }

func TestStageFallbackAndRecovery(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nHi there\n"
	store := newMemStore("in.srt", input)

	segmenter := func(_ context.Context, _ string) (string, error) {
		return "sorry, cannot comply", nil
	}
	translator := func(_ context.Context, _ string) (string, error) {
		return "```srt\n1\n00:00:01,000 --> 00:00:02,000\n你好\n```", nil
	}

	driver := NewDriver(store, Config{
		MaxTokens:    1000,
		TokenCounter: chunker.WordCounter{},
		Segmenter:    segmenter,
		Proofreader:  echoTransformer,
		Translator:   translator,
	})

	events := make(chan PipelineEvent, 100)
	err := driver.Run(context.Background(), "in.srt", "out.srt", events)
	close(events)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := store.files["out.srt"]
	if !strings.Contains(out, "你好") {
		t.Fatalf("output missing recovered content: %q", out)
	}
	if !strings.Contains(out, "00:00:01,000 --> 00:00:02,000") {
		t.Fatalf("output missing original timestamps: %q", out)
	}

	var states []State
	for e := range events {
		states = append(states, e.State)
	}
	if states[0] != Idle || states[len(states)-1] != Completed {
		t.Errorf("unexpected state sequence: %v", states)
	}
}

func TestProcessingEventsDistinguishProgressFromDone(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nHi there\n"
	store := newMemStore("in.srt", input)

	driver := NewDriver(store, Config{
		MaxTokens:    1000,
		TokenCounter: chunker.WordCounter{},
		Segmenter:    echoTransformer,
		Proofreader:  echoTransformer,
		Translator:   echoTransformer,
	})

	events := make(chan PipelineEvent, 100)
	if err := driver.Run(context.Background(), "in.srt", "out.srt", events); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(events)

	var processing []PipelineEvent
	for e := range events {
		if e.State == Processing {
			processing = append(processing, e)
		}
	}
	if len(processing) != 2 {
		t.Fatalf("got %d Processing events, want 2 (ChunkProgress, ChunkDone): %+v", len(processing), processing)
	}
	if processing[0].Done {
		t.Errorf("first Processing event Done = true, want false (ChunkProgress)")
	}
	if !processing[1].Done {
		t.Errorf("second Processing event Done = false, want true (ChunkDone)")
	}
	if processing[0].Index != processing[1].Index || processing[0].Total != processing[1].Total {
		t.Errorf("ChunkProgress/ChunkDone Index/Total mismatch: %+v vs %+v", processing[0], processing[1])
	}
}

func TestRunEmptyParseCompletesWithoutWrite(t *testing.T) {
	store := newMemStore("in.srt", "not an srt file at all")
	driver := NewDriver(store, Config{
		MaxTokens:    1000,
		TokenCounter: chunker.WordCounter{},
		Segmenter:    echoTransformer,
		Proofreader:  echoTransformer,
		Translator:   echoTransformer,
	})
	err := driver.Run(context.Background(), "in.srt", "out.srt", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, wrote := store.files["out.srt"]; wrote {
		t.Error("expected no write on empty parse")
	}
}

func TestRunIoFailure(t *testing.T) {
	store := newMemStore("in.srt", "irrelevant")
	driver := NewDriver(store, Config{MaxTokens: 100, TokenCounter: chunker.WordCounter{}})
	err := driver.Run(context.Background(), "missing.srt", "out.srt", nil)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	pe, ok := err.(*PipelineEvent)
	if !ok {
		t.Fatalf("error type = %T, want *PipelineEvent", err)
	}
	if pe.Kind != FailureIo {
		t.Errorf("Kind = %v, want FailureIo", pe.Kind)
	}
}
