package textproc

import (
	"context"
	"regexp"
	"strings"
)

// AlgorithmicConfig carries the sliding-window parameters. Sizes are rune
// counts, overlap is a sentence count. Fields are fixed at construction.
type AlgorithmicConfig struct {
	TargetSize       int
	MinSize          int
	MaxSize          int
	OverlapSentences int
}

// DefaultAlgorithmicConfig returns the production defaults, tuned for a
// ~10-chunk retrieval window inside a 5000-char prompt budget.
func DefaultAlgorithmicConfig() AlgorithmicConfig {
	return AlgorithmicConfig{
		TargetSize:       550,
		MinSize:          400,
		MaxSize:          650,
		OverlapSentences: 1,
	}
}

// AlgorithmicChunker is the deterministic, dependency-free chunking
// strategy: a sentence-aware sliding window with sentence-level overlap.
// It is pure and total over any string input, which is exactly why the
// hot ingestion path uses it.
type AlgorithmicChunker struct {
	cfg AlgorithmicConfig
}

func NewAlgorithmicChunker(cfg AlgorithmicConfig) *AlgorithmicChunker {
	def := DefaultAlgorithmicConfig()
	if cfg.TargetSize <= 0 {
		cfg.TargetSize = def.TargetSize
	}
	if cfg.MinSize <= 0 {
		cfg.MinSize = def.MinSize
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = def.MaxSize
	}
	if cfg.OverlapSentences < 0 {
		cfg.OverlapSentences = 0
	}
	return &AlgorithmicChunker{cfg: cfg}
}

// flattenPatterns strips page furniture and collapses all structure to a
// single line. Unlike Cleaner this pass does not preserve paragraphs;
// the two passes serve different strategies and must stay separate.
var flattenPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)Page \d+( of \d+)?`), ""},
	{regexp.MustCompile(`\d+/\d+`), ""},
	{regexp.MustCompile(`(?i)={3,}.*?Page.*?={3,}`), ""},
	{regexp.MustCompile(`(?i)Header:.*?\n`), ""},
	{regexp.MustCompile(`(?i)Footer:.*?\n`), ""},
	{regexp.MustCompile(`©.*?\d{4}.*?\n`), ""},
	{regexp.MustCompile(`(?i)\[?Home\]?\s*[|>]\s*\[?About\]?.*?\n`), ""},
	{regexp.MustCompile(`(?i)Navigation:.*?\n`), ""},
	{regexp.MustCompile(`\[.*?\]\s*\[.*?\]\s*\[.*?\]`), ""},
	{regexp.MustCompile(`[=\-_]{4,}`), ""},
	{regexp.MustCompile(`\|{2,}`), ""},
	{regexp.MustCompile(`(?i)\*{3,}.*?PAGE.*?\*{3,}`), ""},
	{regexp.MustCompile(`\t+`), " "},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
	{regexp.MustCompile(`\n`), " "},
	{regexp.MustCompile(` {2,}`), " "},
}

func flatten(text string) string {
	for _, p := range flattenPatterns {
		text = p.re.ReplaceAllString(text, p.repl)
	}
	return strings.TrimSpace(text)
}

// Chunk cleans and chunks text in one pass. Buffer sizes accumulate the
// rune lengths of member sentences; the joining spaces are not counted,
// matching the tuning of the size constants.
func (c *AlgorithmicChunker) Chunk(text string) []Chunk {
	sentences := SplitSentences(flatten(text))

	var pieces []string
	var buf []string
	size := 0

	for i, sentence := range sentences {
		sentLen := runeLen(sentence)

		// Mega-sentence guard: fall back to word packing. The split
		// carries no overlap in or out.
		if sentLen > c.cfg.MaxSize {
			if len(buf) > 0 {
				pieces = append(pieces, strings.Join(buf, " "))
				buf, size = nil, 0
			}
			pieces = append(pieces, c.packWords(sentence)...)
			continue
		}

		buf = append(buf, sentence)
		size += sentLen

		nextLen := 0
		if i+1 < len(sentences) {
			nextLen = runeLen(sentences[i+1])
		}

		shouldClose := false
		switch {
		case size >= c.cfg.TargetSize && size+nextLen > c.cfg.MaxSize:
			shouldClose = true
		case size >= c.cfg.MaxSize:
			shouldClose = true
		case size >= c.cfg.TargetSize && size >= c.cfg.MinSize:
			shouldClose = true
		case i == len(sentences)-1:
			shouldClose = true
		}
		if !shouldClose {
			continue
		}

		pieces = append(pieces, strings.Join(buf, " "))
		if i+1 < len(sentences) {
			// Seed the next buffer with the trailing sentences of the
			// one just closed, so context survives the boundary.
			keep := len(buf) - c.cfg.OverlapSentences
			if keep < 0 {
				keep = 0
			}
			buf = append([]string(nil), buf[keep:]...)
			size = 0
			for _, s := range buf {
				size += runeLen(s)
			}
		} else {
			buf, size = nil, 0
		}
	}

	return makeChunks(pieces)
}

// ChunkText adapts Chunk to the Chunker interface; the algorithmic
// strategy never blocks and never fails.
func (c *AlgorithmicChunker) ChunkText(_ context.Context, text string) ([]Chunk, error) {
	return c.Chunk(text), nil
}

// packWords splits a single oversized sentence at word boundaries into
// pieces of at most MaxSize runes. A lone word longer than MaxSize
// becomes its own oversized piece; accepted edge case.
func (c *AlgorithmicChunker) packWords(sentence string) []string {
	words := strings.Fields(sentence)

	var pieces []string
	var cur []string
	size := 0
	for _, w := range words {
		wl := runeLen(w) + 1 // joining space
		if size+wl > c.cfg.MaxSize && len(cur) > 0 {
			pieces = append(pieces, strings.Join(cur, " "))
			cur = []string{w}
			size = wl
		} else {
			cur = append(cur, w)
			size += wl
		}
	}
	if len(cur) > 0 {
		pieces = append(pieces, strings.Join(cur, " "))
	}
	return pieces
}
