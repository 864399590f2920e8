package chunker

import (
	"strings"

	"github.com/rivo/uniseg"
)

// WordCounter counts whitespace-separated words. A simple, reproducible
// counter suitable for tests and for callers with no real tokenizer.
type WordCounter struct{}

func (WordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// GraphemeCounter costs text by grapheme-cluster count rather than words,
// using uniseg's Unicode text segmentation. Closer to how CJK and
// combining-mark-heavy scripts are priced by real tokenizers than a
// word-count heuristic.
type GraphemeCounter struct{}

func (GraphemeCounter) Count(text string) int {
	return uniseg.GraphemeClusterCount(text)
}
