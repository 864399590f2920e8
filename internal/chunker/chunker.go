// Package chunker partitions a subtitle cue list into token-budget-bounded,
// sentence-aligned chunks for per-chunk transformation.
package chunker

import (
	"fmt"

	"github.com/subtrans/core/internal/srt"
)

// TokenCounter costs a serialized chunk. Implementations must be
// deterministic and pure.
type TokenCounter interface {
	Count(text string) int
}

// Chunk is a non-empty contiguous slice of a CueList.
type Chunk struct {
	Cues srt.CueList
}

var chunkComposeOpts = srt.ComposeOptions{Reindex: false, Strict: true, EOL: "\n"}

func serialize(cues srt.CueList) string {
	return srt.Compose(cues, chunkComposeOpts)
}

func cost(t TokenCounter, cues srt.CueList) int {
	return t.Count(serialize(cues))
}

// Split partitions L into chunks bounded by maxTokens using the
// sentence-aligned greedy algorithm: a chunk is closed as soon as its
// last cue ends a sentence and the next cue would not fit, with an
// oversize escape for any single cue whose own serialization already
// exceeds the budget, and a degenerate unaligned split for a pending
// run that overflows before ever reaching a sentence terminator.
func Split(cues srt.CueList, maxTokens int, counter TokenCounter) ([]Chunk, error) {
	if maxTokens <= 0 {
		return nil, fmt.Errorf("chunker: max_tokens must be positive, got %d", maxTokens)
	}
	if len(cues) == 0 {
		return nil, nil
	}

	var chunks []Chunk
	var current, pending srt.CueList

	flush := func(cs srt.CueList) {
		if len(cs) > 0 {
			chunks = append(chunks, Chunk{Cues: append(srt.CueList{}, cs...)})
		}
	}

	for _, c := range cues {
		if cost(counter, srt.CueList{c}) > maxTokens {
			flush(current)
			current = nil
			flush(pending)
			pending = nil
			flush(srt.CueList{c})
			continue
		}

		pending = append(pending, c)
		try := append(append(srt.CueList{}, current...), pending...)

		if cost(counter, try) <= maxTokens {
			if c.EndsSentence() {
				current = try
				pending = nil
			}
			continue
		}

		flush(current)
		current = nil

		if cost(counter, pending) <= maxTokens {
			if c.EndsSentence() {
				flush(pending)
				pending = nil
			} else {
				current = pending
				pending = nil
			}
			continue
		}

		// Degenerate branch: pending itself exceeds the budget without
		// ever closing a sentence. Split it greedily, unaligned.
		var buf srt.CueList
		for _, pc := range pending {
			candidate := append(append(srt.CueList{}, buf...), pc)
			if cost(counter, candidate) <= maxTokens {
				buf = candidate
				continue
			}
			flush(buf)
			buf = srt.CueList{pc}
		}
		current = buf
		pending = nil
	}

	if len(current) > 0 || len(pending) > 0 {
		combined := append(append(srt.CueList{}, current...), pending...)
		if cost(counter, combined) <= maxTokens {
			flush(combined)
		} else {
			flush(current)
			flush(pending)
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("chunker: produced zero chunks from %d input cues", len(cues))
	}
	return chunks, nil
}
