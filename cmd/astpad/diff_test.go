package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Pin the color profile so expectations hold regardless of the
// terminal the tests run in.
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRenderUnifiedDiff(t *testing.T) {
	before := "a\nb\nc\n"
	after := "a\nB\nc\n"

	got := renderUnifiedDiff("x.js", before, after)
	want := strings.Join([]string{
		"--- x.js",
		"+++ x.js",
		"  a",
		"- b",
		"+ B",
		"  c",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("diff:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderUnifiedDiff_InsertOnly(t *testing.T) {
	got := renderUnifiedDiff("", "a\nc\n", "a\nb\nc\n")
	want := "  a\n+ b\n  c\n"
	if got != want {
		t.Fatalf("diff:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderUnifiedDiff_Equal(t *testing.T) {
	if got := renderUnifiedDiff("x.js", "same\n", "same\n"); got != "" {
		t.Fatalf("diff of equal inputs = %q, want empty", got)
	}
}

func TestSnippet_ClipsLongLines(t *testing.T) {
	long := strings.Repeat("x", 120)
	got := snippet(long + "\nsecond line")
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("snippet = %q, want a clipped line ending in ...", got)
	}
	if strings.Contains(got, "second") {
		t.Fatalf("snippet = %q, want first line only", got)
	}
}
