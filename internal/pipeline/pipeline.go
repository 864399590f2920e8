// Package pipeline drives the three-stage text-transformation pipeline
// over chunked subtitle cues, with format-guard recovery between stages
// and a single-threaded, cooperatively cancellable run state machine.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/subtrans/core/internal/chunker"
	"github.com/subtrans/core/internal/formatguard"
	"github.com/subtrans/core/internal/srt"
)

// TextTransformer is one async String→String capability: the input is
// valid SRT and the output should be too, though FormatGuard tolerates
// violations. Prompts, model selection, and retry policy belong to the
// implementation, not to this package.
type TextTransformer func(ctx context.Context, input string) (string, error)

// TextStore is the file I/O collaborator. Implementations live outside
// this package (see internal/store.FileStore for a reference one).
type TextStore interface {
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, content string) error
}

// FailureKind is the pipeline-level error taxonomy (distinct from
// internal/apperrors.Kind, which classifies collaborator transport
// errors one layer down).
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureIo
	FailureParseError
	FailureChunkerEmpty
	FailureTransformerFailed
	FailureTimeout
	FailureCancelled
)

func (k FailureKind) String() string {
	switch k {
	case FailureIo:
		return "Io"
	case FailureParseError:
		return "ParseError"
	case FailureChunkerEmpty:
		return "ChunkerEmpty"
	case FailureTransformerFailed:
		return "TransformerFailed"
	case FailureTimeout:
		return "Timeout"
	case FailureCancelled:
		return "Cancelled"
	default:
		return "None"
	}
}

// State is the PipelineDriver's current state-machine position.
type State int

const (
	Idle State = iota
	Reading
	Parsing
	Splitting
	Processing
	Writing
	Completed
	Failed
)

// PipelineEvent is one entry on the driver's progress channel, emitted in
// state-machine order for a single run.
type PipelineEvent struct {
	RunID   string
	State   State
	Index   int // for Processing events
	Total   int
	Done    bool // State==Processing only: false is ChunkProgress(Index,Total), true is ChunkDone(Index,Total)
	Reason  string
	Kind    FailureKind
	ChunkAt int // which chunk a Failed event relates to, -1 if n/a
}

func (e PipelineEvent) Error() string {
	return fmt.Sprintf("pipeline: %s failed at chunk %d: %s (%s)", e.State, e.ChunkAt, e.Reason, e.Kind)
}

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Reading:
		return "Reading"
	case Parsing:
		return "Parsing"
	case Splitting:
		return "Splitting"
	case Processing:
		return "Processing"
	case Writing:
		return "Writing"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Config holds the caller-injected tuning for one driver. Nothing here is
// read from process-wide state; every value is passed at construction.
type Config struct {
	MaxTokens    int
	ChunkTimeout time.Duration // default 5 minutes if zero
	TokenCounter chunker.TokenCounter
	Segmenter    TextTransformer
	Proofreader  TextTransformer
	Translator   TextTransformer
}

func (c Config) chunkTimeout() time.Duration {
	if c.ChunkTimeout <= 0 {
		return 5 * time.Minute
	}
	return c.ChunkTimeout
}

// Driver runs the end-to-end pipeline: read → parse → chunk → (for each
// chunk: compose → StageRunner → FormatGuard → parse) → concatenate →
// compose → write. It emits PipelineEvents on the channel passed to Run.
type Driver struct {
	store TextStore
	cfg   Config
}

// NewDriver constructs a Driver with the given TextStore collaborator and
// tuning config.
func NewDriver(store TextStore, cfg Config) *Driver {
	return &Driver{store: store, cfg: cfg}
}

// Run executes one end-to-end pipeline invocation. events may be nil, in
// which case progress is not reported; the returned error is non-nil iff
// the run did not reach Completed.
func (d *Driver) Run(ctx context.Context, inputPath, outputPath string, events chan<- PipelineEvent) error {
	runID := uuid.NewString()
	emit := func(e PipelineEvent) {
		e.RunID = runID
		if events != nil {
			select {
			case events <- e:
			case <-ctx.Done():
			}
		}
	}
	fail := func(state State, kind FailureKind, chunkAt int, reason string) error {
		ev := PipelineEvent{State: Failed, Kind: kind, ChunkAt: chunkAt, Reason: reason}
		emit(ev)
		ev.RunID = runID
		return &ev
	}

	emit(PipelineEvent{State: Idle})

	if err := ctx.Err(); err != nil {
		return fail(Idle, FailureCancelled, -1, "cancelled before start")
	}

	emit(PipelineEvent{State: Reading})
	content, err := d.store.Read(ctx, inputPath)
	if err != nil {
		return fail(Reading, FailureIo, -1, err.Error())
	}

	emit(PipelineEvent{State: Parsing})
	cues, err := srt.Parse(content, srt.ParseOptions{IgnoreErrors: false})
	if err != nil || len(cues) == 0 {
		emit(PipelineEvent{State: Completed, Total: 0})
		return nil
	}
	emit(PipelineEvent{State: Parsing, Total: len(cues)})

	emit(PipelineEvent{State: Splitting})
	chunks, err := chunker.Split(cues, d.cfg.MaxTokens, d.cfg.TokenCounter)
	if err != nil || len(chunks) == 0 {
		return fail(Splitting, FailureChunkerEmpty, -1, "chunker produced zero chunks")
	}
	emit(PipelineEvent{State: Splitting, Total: len(chunks)})

	var accumulated srt.CueList
	runner := StageRunner{Segmenter: d.cfg.Segmenter, Proofreader: d.cfg.Proofreader, Translator: d.cfg.Translator}

	for i, ch := range chunks {
		if err := ctx.Err(); err != nil {
			return fail(Processing, FailureCancelled, i, "cancelled")
		}
		emit(PipelineEvent{State: Processing, Index: i, Total: len(chunks), Done: false})

		chunkCtx, cancel := context.WithTimeout(ctx, d.cfg.chunkTimeout())
		serialized := srt.Compose(ch.Cues, srt.ComposeOptions{Reindex: false, Strict: true, EOL: "\n"})
		result, err := runner.Run(chunkCtx, serialized)
		cancel()

		if err != nil {
			if chunkCtx.Err() == context.DeadlineExceeded {
				return fail(Processing, FailureTimeout, i, err.Error())
			}
			if ctx.Err() != nil {
				return fail(Processing, FailureCancelled, i, "cancelled")
			}
			return fail(Processing, FailureTransformerFailed, i, err.Error())
		}

		outcome := formatguard.Check(result)
		if !outcome.Valid {
			return fail(Processing, FailureTransformerFailed, i, "final stage output unparseable: "+outcome.Reason)
		}
		accumulated = append(accumulated, outcome.Cues...)
		emit(PipelineEvent{State: Processing, Index: i, Total: len(chunks), Done: true})
	}

	emit(PipelineEvent{State: Writing})
	out := srt.Compose(accumulated, srt.DefaultComposeOptions())
	if err := d.store.Write(ctx, outputPath, out); err != nil {
		return fail(Writing, FailureIo, -1, err.Error())
	}

	emit(PipelineEvent{State: Completed, Total: len(chunks)})
	return nil
}
