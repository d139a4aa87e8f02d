package textproc

import (
	"reflect"
	"testing"
)

func TestSplitSentences_AbbreviationProtected(t *testing.T) {
	got := SplitSentences("Dr. Smith went home. He was tired.")
	want := []string{"Dr. Smith went home.", "He was tired."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitSentences_EntityAndLatinAbbreviations(t *testing.T) {
	got := SplitSentences("We met Prof. Jones at Acme Inc. yesterday. Use tools, e.g. hammers. Nails too.")
	want := []string{
		"We met Prof. Jones at Acme Inc. yesterday.",
		"Use tools, e.g. hammers.",
		"Nails too.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitSentences_LowercaseContinuation(t *testing.T) {
	// A terminator followed by a lower-case word is not a boundary; this
	// keeps decimal-ish and mid-sentence periods together.
	got := SplitSentences("He said no. then he left anyway.")
	if len(got) != 1 {
		t.Fatalf("expected a single sentence, got %v", got)
	}
}

func TestSplitSentences_NewlineBoundary(t *testing.T) {
	got := SplitSentences("First thought ends here. \nsecond thought is lowercase.")
	want := []string{"First thought ends here.", "second thought is lowercase."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitSentences_UnicodeSpaceBoundary(t *testing.T) {
	// NBSP counts as boundary whitespace even without prior NFKC folding.
	got := SplitSentences("First ends here. Second starts now.")
	want := []string{"First ends here.", "Second starts now."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitSentences_Empty(t *testing.T) {
	if got := SplitSentences(""); len(got) != 0 {
		t.Fatalf("expected no sentences, got %v", got)
	}
	if got := SplitSentences("   \n  "); len(got) != 0 {
		t.Fatalf("expected no sentences for whitespace, got %v", got)
	}
}

func TestSplitSimple_NoAbbreviationHandling(t *testing.T) {
	// The simple splitter intentionally over-splits: no abbreviation
	// protection, no case check on the following word.
	got := splitSimple("Dr. Smith went home. he was tired.")
	want := []string{"Dr.", "Smith went home.", "he was tired."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSplitSimple_QuestionAndExclamation(t *testing.T) {
	got := splitSimple("Really? Yes! Fine.")
	want := []string{"Really?", "Yes!", "Fine."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
