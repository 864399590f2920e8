// Package formatguard validates that a transformer stage's output parses
// as SRT, attempting tiered recovery before declaring the output invalid.
package formatguard

import (
	"regexp"
	"strings"

	"github.com/asticode/go-astisub"

	"github.com/subtrans/core/internal/srt"
)

// Outcome classifies a FormatGuard check. Valid is true whenever Cues is
// usable; Recovered is additionally true when a recovery tier rather than
// the strict parse produced them; an invalid outcome has Valid false and
// Reason set. Check never panics (spec invariant: totality).
type Outcome struct {
	Cues      srt.CueList
	Recovered bool   // true if recovery (not a strict parse) produced Cues
	Valid     bool   // true if either Cues or Recovered-with-Cues is usable
	GuardPath string // which tier produced Cues; set whenever Valid is true
	Reason    string
}

// GuardPath values, named for the FormatRecovered warning spec §7 requires.
const (
	GuardPathStrict      = "strict"
	GuardPathFirstHeader = "first-header"
	GuardPathCodeBlock   = "code-block"
	GuardPathLenient     = "lenient"
)

var cueHeaderPattern = regexp.MustCompile(`(?m)^\s*\d+\s*\r?\n\s*\d{1,}:\d{2}:\d{2}[,.]\d{3}`)

var fencedBlockPattern = regexp.MustCompile("(?s)```(?:srt)?\\s*\\n(.*?)\\n?```")

// Check validates s per spec §4.4: strict parse, then cue-header location
// scan, then fenced-code-block extraction, then an astisub-backed lenient
// parse as a last resort; otherwise Invalid. A cue header that lies inside
// a fenced block is left to the fenced-block tier, so the closing fence is
// never read as cue content.
func Check(s string) Outcome {
	if cues, err := srt.Parse(s, srt.ParseOptions{}); err == nil && len(cues) > 0 {
		return Outcome{Cues: cues, Valid: true, GuardPath: GuardPathStrict}
	}

	fence := fencedBlockPattern.FindStringSubmatchIndex(s)

	if loc := cueHeaderPattern.FindStringIndex(s); loc != nil && (fence == nil || loc[0] < fence[0] || loc[0] >= fence[1]) {
		if cues, err := srt.Parse(s[loc[0]:], srt.ParseOptions{IgnoreErrors: true}); err == nil && len(cues) > 0 {
			return Outcome{Cues: cues, Valid: true, Recovered: true, GuardPath: GuardPathFirstHeader}
		}
	}

	if fence != nil {
		if cues, err := srt.Parse(s[fence[2]:fence[3]], srt.ParseOptions{IgnoreErrors: true}); err == nil && len(cues) > 0 {
			return Outcome{Cues: cues, Valid: true, Recovered: true, GuardPath: GuardPathCodeBlock}
		}
	}

	if cues, ok := lenientAstisubParse(s); ok {
		return Outcome{Cues: cues, Valid: true, Recovered: true, GuardPath: GuardPathLenient}
	}

	return Outcome{Reason: "no strict parse, cue header, fenced block, or lenient parse succeeded"}
}

// lenientAstisubParse is the last-resort recovery path: astisub tolerates
// a broader range of malformed SRT (missing blank-line separators,
// WebVTT-ish artifacts) than this package's own strict parser.
func lenientAstisubParse(s string) (srt.CueList, bool) {
	subs, err := astisub.ReadFromSRT(strings.NewReader(s))
	if err != nil || len(subs.Items) == 0 {
		return nil, false
	}

	cues := make(srt.CueList, 0, len(subs.Items))
	for i, item := range subs.Items {
		var lines []string
		for _, l := range item.Lines {
			var words []string
			for _, li := range l.Items {
				words = append(words, li.Text)
			}
			lines = append(lines, strings.Join(words, " "))
		}
		cues = append(cues, srt.Cue{
			HasIndex: true,
			Index:    i + 1,
			Start:    srt.Timestamp(item.StartAt),
			End:      srt.Timestamp(item.EndAt),
			Content:  strings.Join(lines, "\n"),
		})
	}
	return cues, true
}
