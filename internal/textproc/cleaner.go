package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	pageNumberLine = regexp.MustCompile(`(?mi)^\s*page\s+\d+\s*$`)
	horizontalWS   = regexp.MustCompile(`[ \t]+`)
	excessNewlines = regexp.MustCompile(`\n{3,}`)
)

// Cleaner normalizes raw extracted text while preserving paragraph
// structure. It is a total function: every input yields some valid
// (possibly empty) output, so callers never see an error from it.
//
// This pass is intentionally separate from the flattening pass inside
// AlgorithmicChunker; the two serve different consumers and their
// observable output must not be unified.
type Cleaner struct{}

func NewCleaner() *Cleaner { return &Cleaner{} }

// Clean normalizes Unicode, strips artifacts, repairs lines broken
// mid-sentence by upstream extraction, and removes boilerplate lines
// repeated across the document (headers, footers, navigation).
func (c *Cleaner) Clean(text string) string {
	text = norm.NFKC.String(text)

	// Drop control characters except newline and tab.
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || !unicode.In(r, unicode.C) {
			b.WriteRune(r)
		}
	}
	text = b.String()

	text = pageNumberLine.ReplaceAllString(text, "")
	text = horizontalWS.ReplaceAllString(text, " ")
	text = excessNewlines.ReplaceAllString(text, "\n\n")

	// Merge lines broken mid-sentence. A line whose accumulated text does
	// not already terminate a sentence absorbs the following line; blank
	// lines keep paragraphs apart.
	lines := strings.Split(text, "\n")
	merged := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			merged = append(merged, "")
			continue
		}
		if n := len(merged); n > 0 && merged[n-1] != "" && !terminatesSentence(merged[n-1]) {
			merged[n-1] += " " + line
		} else {
			merged = append(merged, line)
		}
	}

	final := make([]string, 0, len(merged))
	for _, l := range merged {
		if strings.TrimSpace(l) != "" {
			final = append(final, l)
		}
	}
	if len(final) == 0 {
		return strings.TrimSpace(strings.Join(merged, "\n\n"))
	}

	// Frequency-based boilerplate filter: short lines repeated more often
	// than max(5, 5% of line count) are page furniture, not content.
	counts := make(map[string]int, len(final))
	for _, l := range final {
		counts[l]++
	}
	threshold := 0.05 * float64(len(final))
	if threshold < 5 {
		threshold = 5
	}
	kept := make([]string, 0, len(final))
	for _, l := range final {
		if runeLen(l) < 100 && float64(counts[l]) > threshold {
			continue
		}
		kept = append(kept, l)
	}

	return strings.TrimSpace(strings.Join(kept, "\n\n"))
}

// terminatesSentence reports whether a merged line already ends a
// sentence. The suffix set is exact: a trailing period, question mark or
// exclamation mark must be followed by a space; a bare colon counts.
// Changing this set changes which lines merge, and therefore every chunk
// boundary downstream.
func terminatesSentence(s string) bool {
	return strings.HasSuffix(s, ". ") ||
		strings.HasSuffix(s, "? ") ||
		strings.HasSuffix(s, "! ") ||
		strings.HasSuffix(s, ":")
}
