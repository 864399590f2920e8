// Package coalescer merges timing-adjacent subtitle cues into logical
// sentence units.
package coalescer

import (
	"strings"
	"time"

	"github.com/subtrans/core/internal/srt"
)

// Config tunes the merge decision (spec §3 Coalesce configuration).
type Config struct {
	MaxPause          time.Duration
	MaxDuration       time.Duration
	StrictTerminators string
}

// DefaultConfig returns the spec's default tuning: 700ms max pause, 15s
// max merged duration, and a terminator set that additionally treats
// commas as sentence-closing for merge purposes.
func DefaultConfig() Config {
	return Config{
		MaxPause:          700 * time.Millisecond,
		MaxDuration:       15 * time.Second,
		StrictTerminators: ",.?!，。？！",
	}
}

// Coalesce merges adjacent cues in a sorted CueList whose last content
// character is not a strict terminator and whose pause/merged-duration
// fall within the configured limits. The input must already be sorted by
// start time; the output remains sorted and covers the same time span.
func Coalesce(cues srt.CueList, cfg Config) srt.CueList {
	if len(cues) == 0 {
		return nil
	}

	out := make(srt.CueList, 0, len(cues))
	acc := cues[0]

	for _, n := range cues[1:] {
		endsSentence := acc.EndsWithTerminators(cfg.StrictTerminators)
		pause := n.Start.Sub(acc.End)
		mergedEnd := acc.End.Max(n.End)
		mergedDuration := mergedEnd.Sub(acc.Start)

		if !endsSentence && pause <= cfg.MaxPause && mergedDuration <= cfg.MaxDuration {
			acc = srt.Cue{
				HasIndex:    false,
				Start:       acc.Start,
				End:         mergedEnd,
				Proprietary: acc.Proprietary,
				Content:     strings.TrimSpace(acc.Content) + " " + strings.TrimSpace(n.Content),
			}
			continue
		}

		out = append(out, acc)
		acc = n
	}
	out = append(out, acc)
	return out
}
