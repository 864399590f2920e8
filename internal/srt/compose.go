package srt

import (
	"strconv"
	"strings"
)

// ComposeOptions configures SRT serialization (spec §4.1 compose contract).
type ComposeOptions struct {
	Reindex    bool
	StartIndex int    // used only when Reindex is true; defaults to 1 if zero
	Strict     bool   // when true, internal blank lines within content are removed
	EOL        string // "\n" or "\r\n"; defaults to "\n" if empty
}

// DefaultComposeOptions returns the options used by the pipeline driver's
// final write (reindex=true, start_index=1, strict=true, eol="\n").
func DefaultComposeOptions() ComposeOptions {
	return ComposeOptions{Reindex: true, StartIndex: 1, Strict: true, EOL: "\n"}
}

// Compose serializes a CueList to SRT text per the given options. Cues are
// emitted in input order; reindexing never sorts.
func Compose(cues CueList, opts ComposeOptions) string {
	eol := opts.EOL
	if eol == "" {
		eol = "\n"
	}
	startIndex := opts.StartIndex
	if opts.Reindex && startIndex == 0 {
		startIndex = 1
	}

	var b strings.Builder
	for i, c := range cues {
		idx := c.Index
		if opts.Reindex {
			idx = startIndex + i
		}
		b.WriteString(strconv.Itoa(idx))
		b.WriteString(eol)

		b.WriteString(c.Start.String())
		b.WriteString(" --> ")
		b.WriteString(c.End.String())
		if c.Proprietary != "" {
			b.WriteString(" ")
			b.WriteString(c.Proprietary)
		}
		b.WriteString(eol)

		content := c.Content
		if opts.Strict {
			content = stripInternalBlankLines(content)
		}
		b.WriteString(content)
		b.WriteString(eol)
		b.WriteString(eol)
	}

	out := b.String()
	// Collapse the trailing double-eol into a single terminating eol.
	out = strings.TrimSuffix(out, eol)
	return out
}

func stripInternalBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}
