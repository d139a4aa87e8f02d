package textproc

import (
	"strings"
	"unicode"
)

// Closed set of abbreviations whose trailing period must not end a
// sentence. Ambiguous tokens outside this set will still split; that is
// an accepted trade-off for keeping the splitter fast and predictable.
var abbreviations = []string{
	"Dr.", "Mr.", "Mrs.", "Ms.", "Prof.", "Sr.", "Jr.",
	"Inc.", "Ltd.",
	"etc.", "vs.", "e.g.", "i.e.",
}

const dotSentinel = "<DOT>"

var (
	protectAbbreviations *strings.Replacer
	restoreDots          = strings.NewReplacer(dotSentinel, ".")
)

func init() {
	pairs := make([]string, 0, len(abbreviations)*2)
	for _, a := range abbreviations {
		pairs = append(pairs, a, strings.ReplaceAll(a, ".", dotSentinel))
	}
	protectAbbreviations = strings.NewReplacer(pairs...)
}

// SplitSentences splits text at sentence-ending punctuation followed by
// whitespace and then an upper-case letter or a newline. Occurrences of
// the protected abbreviations are sentinel-masked before the scan so
// "Dr. Smith" never produces a boundary. Results are trimmed; empties
// are dropped.
func SplitSentences(text string) []string {
	protected := protectAbbreviations.Replace(text)
	parts := splitBoundaries(protected, true)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(restoreDots.Replace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSimple splits at terminal punctuation followed by whitespace, with
// no abbreviation handling and no case check. Its over-splitting is
// tolerated by its only consumer, the semantic chunker, and it must stay
// separate from SplitSentences. Pieces are trimmed and empties dropped,
// so a trailing terminator never yields an empty final piece and atom
// sizes count only visible text, not residual whitespace.
func splitSimple(text string) []string {
	parts := splitBoundaries(text, false)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitBoundaries scans for '.', '!' or '?' followed by a whitespace run.
// With needNext set, the run must be followed by an ASCII upper-case
// letter, or contain a newline the boundary can stop in front of; this
// mirrors a lookahead regex, which Go's RE2 engine cannot express.
// The matched whitespace is consumed; it never appears in any part.
func splitBoundaries(text string, needNext bool) []string {
	runes := []rune(text)
	var parts []string
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(runes) || !isSpaceRune(runes[i+1]) {
			continue
		}
		j := i + 1
		for j < len(runes) && isSpaceRune(runes[j]) {
			j++
		}
		next := j
		boundary := true
		if needNext {
			switch {
			case j < len(runes) && runes[j] >= 'A' && runes[j] <= 'Z':
				// whole run consumed, upper-case letter follows
			default:
				// stop the run just before its last newline, leaving the
				// newline as the character the boundary looks at
				boundary = false
				for m := j - 1; m >= i+2; m-- {
					if runes[m] == '\n' {
						boundary, next = true, m
						break
					}
				}
			}
		}
		if boundary {
			parts = append(parts, string(runes[start:i+1]))
			start = next
			i = next - 1
		}
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}

// isSpaceRune matches the full Unicode whitespace class, so boundaries
// form across NBSP and friends even for text that skipped NFKC folding.
func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r)
}
