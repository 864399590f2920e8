package srt

import "strings"

// sentenceTerminators is the fixed sentence terminator set S used by the
// chunker to decide whether a cue closes a sentence. It is not
// configurable; the coalescer uses a broader, caller-configured set
// instead (see coalescer.Config).
const sentenceTerminators = ".?!。？！"

// Cue is one subtitle record. Index is optional because it is
// informational on input and only assigned meaningfully at compose time.
type Cue struct {
	Index       int    // 0 means "not set"
	HasIndex    bool
	Start       Timestamp
	End         Timestamp
	Proprietary string // verbatim trailing text after the timestamp line, if any
	Content     string // may contain internal newlines; never leading/trailing blank lines
}

// EndsSentence reports whether the cue's content ends, after trimming
// trailing whitespace, with a rune from the fixed sentence terminator set.
func (c Cue) EndsSentence() bool {
	return endsWithAny(c.Content, sentenceTerminators)
}

// EndsWithTerminators reports whether the cue's content ends, after
// trimming trailing whitespace, with a rune from the given terminator set.
// Used by the coalescer with its own, broader configured set.
func (c Cue) EndsWithTerminators(set string) bool {
	return endsWithAny(c.Content, set)
}

func endsWithAny(s, set string) bool {
	trimmed := strings.TrimRight(s, " \t\r\n")
	if trimmed == "" {
		return false
	}
	last := []rune(trimmed)
	r := last[len(last)-1]
	return strings.ContainsRune(set, r)
}

// CueList is an ordered sequence of cues. Insertion order is preserved
// across parse, chunk, and merge; after Coalesce the list remains sorted
// by start time.
type CueList []Cue

// Less reports whether cue i sorts before cue j by (start, end).
func (l CueList) Less(i, j int) bool {
	if l[i].Start != l[j].Start {
		return l[i].Start < l[j].Start
	}
	return l[i].End < l[j].End
}

func (l CueList) Len() int      { return len(l) }
func (l CueList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
