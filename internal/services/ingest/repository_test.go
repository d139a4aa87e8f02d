package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildContentPreview_Truncation(t *testing.T) {
	in := strings.Repeat("ab", 400) // 800 chars
	got := buildContentPreview(in, 512)
	if utf8.RuneCountInString(got) != 512 {
		t.Fatalf("expected 512 runes, got %d", utf8.RuneCountInString(got))
	}
}

func TestBuildContentPreview_StripsNonPrintable(t *testing.T) {
	got := buildContentPreview("a\x00b\uFEFFc", 512)
	if got != "abc" {
		t.Fatalf("expected non-printable runes stripped, got %q", got)
	}
}

func TestBuildContentPreview_MultiByteSafe(t *testing.T) {
	in := strings.Repeat("é", 600)
	got := buildContentPreview(in, 512)
	if !utf8.ValidString(got) {
		t.Fatal("preview must stay valid UTF-8")
	}
	if utf8.RuneCountInString(got) != 512 {
		t.Fatalf("expected 512 runes, got %d", utf8.RuneCountInString(got))
	}
}
