package stagetransform

import (
	"context"
	"regexp"
	"strings"
)

var (
	ellipsisRun    = regexp.MustCompile(`\.{4,}`)
	angleDialogue  = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	repeatedSpaces = regexp.MustCompile(` {2,}`)
)

// LocalPunctuationRepair is a deterministic, non-LLM TextTransformer that
// normalizes ellipses, strips stray angle-bracket dialogue markup, and
// collapses repeated spacing. It never touches timestamps or structure,
// only cue content, and is valid as a cheap stand-in Segmenter or
// Proofreader in tests and examples — it is not wired into the core
// packages themselves.
func LocalPunctuationRepair(_ context.Context, input string) (string, error) {
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		if isStructuralLine(line) {
			continue
		}
		line = angleDialogue.ReplaceAllString(line, "")
		line = ellipsisRun.ReplaceAllString(line, "...")
		line = repeatedSpaces.ReplaceAllString(line, " ")
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n"), nil
}

// isStructuralLine reports whether line is an SRT index or timing line
// rather than subtitle content, so the repair pass leaves structure
// untouched.
func isStructuralLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if strings.Contains(trimmed, "-->") {
		return true
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
