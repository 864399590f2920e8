package srt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseErrorKind classifies a fatal parse failure (spec §4.1/§7).
type ParseErrorKind int

const (
	BadTimestamp ParseErrorKind = iota
	BadIndex
	UnexpectedEof
)

func (k ParseErrorKind) String() string {
	switch k {
	case BadTimestamp:
		return "BadTimestamp"
	case BadIndex:
		return "BadIndex"
	case UnexpectedEof:
		return "UnexpectedEof"
	default:
		return "Unknown"
	}
}

// ParseError reports a fatal parse failure with the byte offset into the
// normalized (BOM-stripped, LF-only) input at which it occurred.
type ParseError struct {
	Kind   ParseErrorKind
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("srt: parse error %s at offset %d", e.Kind, e.Offset)
}

// ParseOptions configures parser tolerance (spec §4.1).
type ParseOptions struct {
	// IgnoreErrors, when true, skips malformed blocks to the next blank
	// line instead of aborting with a ParseError.
	IgnoreErrors bool
}

// Parse converts raw SRT text into an ordered CueList. On success with
// IgnoreErrors=false, any malformed block aborts the parse and returns a
// *ParseError. With IgnoreErrors=true, malformed blocks are skipped.
func Parse(input string, opts ParseOptions) (CueList, error) {
	normalized := normalizeInput(input)
	lines := strings.Split(normalized, "\n")

	var cues CueList
	offset := 0
	lineOffsets := make([]int, len(lines)+1)
	for i, l := range lines {
		lineOffsets[i] = offset
		offset += len(l) + 1
	}
	lineOffsets[len(lines)] = offset

	i := 0
	for i < len(lines) {
		// Skip blank lines between blocks.
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		blockStart := i
		cue, next, err := parseBlock(lines, i)
		if err != nil {
			if opts.IgnoreErrors {
				i = skipToBlank(lines, blockStart+1)
				continue
			}
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Offset = lineOffsets[blockStart]
				return nil, pe
			}
			return nil, err
		}
		cues = append(cues, cue)
		i = next
	}

	return cues, nil
}

// normalizeInput strips a UTF-8 BOM and normalizes CRLF/LF line endings.
func normalizeInput(s string) string {
	s = strings.TrimPrefix(s, "\xEF\xBB\xBF")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// skipToBlank returns the index of the next blank line at or after start,
// or len(lines) if none remains.
func skipToBlank(lines []string, start int) int {
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			return i
		}
	}
	return len(lines)
}

// parseBlock parses one cue block starting at lines[i] (a non-blank
// line). It returns the parsed cue and the index of the line following
// the block (either a blank line or EOF).
func parseBlock(lines []string, i int) (Cue, int, error) {
	indexLine := strings.TrimSpace(lines[i])
	index, err := strconv.Atoi(indexLine)
	if err != nil {
		return Cue{}, 0, &ParseError{Kind: BadIndex}
	}
	i++

	if i >= len(lines) {
		return Cue{}, 0, &ParseError{Kind: UnexpectedEof}
	}

	start, end, proprietary, err := parseTimingLine(lines[i])
	if err != nil {
		return Cue{}, 0, &ParseError{Kind: BadTimestamp}
	}
	i++

	var contentLines []string
	for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
		contentLines = append(contentLines, lines[i])
		i++
	}
	if len(contentLines) == 0 {
		return Cue{}, 0, &ParseError{Kind: UnexpectedEof}
	}

	return Cue{
		Index:       index,
		HasIndex:    true,
		Start:       start,
		End:         end,
		Proprietary: proprietary,
		Content:     strings.Join(contentLines, "\n"),
	}, i, nil
}

// timingArrowVariants covers the accepted separators between the two
// timestamps on a timing line (spec §4.1: "-->", " --> ", "- >").
var timingArrowVariants = []string{" --> ", "-->", " - > ", "- >"}

func parseTimingLine(line string) (start, end Timestamp, proprietary string, err error) {
	trimmed := strings.TrimSpace(line)
	var arrowIdx, arrowLen int = -1, 0
	for _, arrow := range timingArrowVariants {
		if idx := strings.Index(trimmed, arrow); idx >= 0 {
			arrowIdx, arrowLen = idx, len(arrow)
			break
		}
	}
	if arrowIdx < 0 {
		return 0, 0, "", fmt.Errorf("srt: no timing arrow found in %q", line)
	}

	startStr := strings.TrimSpace(trimmed[:arrowIdx])
	rest := strings.TrimSpace(trimmed[arrowIdx+arrowLen:])

	endStr := rest
	prop := ""
	if sp := strings.IndexAny(rest, " \t"); sp >= 0 {
		endStr = rest[:sp]
		prop = strings.TrimSpace(rest[sp+1:])
	}

	start, err = ParseTimestamp(startStr)
	if err != nil {
		return 0, 0, "", err
	}
	end, err = ParseTimestamp(endStr)
	if err != nil {
		return 0, 0, "", err
	}
	return start, end, prop, nil
}
