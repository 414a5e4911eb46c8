package highlight

import (
	"testing"

	"github.com/astpad/astpad/span"
	"github.com/astpad/astpad/widget"
)

// recordingSet captures every Replace so tests can assert on atomic
// swaps rather than incremental mutation.
type recordingSet struct {
	current  []widget.Decoration
	replaces int
}

func (r *recordingSet) Replace(decos []widget.Decoration) {
	r.current = decos
	r.replaces++
}

func (r *recordingSet) Clear() { r.Replace(nil) }

func (r *recordingSet) Decorations() []widget.Decoration { return r.current }

func TestBuild_ShiftsAndOrders(t *testing.T) {
	matches := []span.Match{
		{StartRow: 2, StartCol: 0, EndRow: 2, EndCol: 3},
		{StartRow: 0, StartCol: 4, EndRow: 1, EndCol: 1},
	}

	decos := Build(matches)
	if len(decos) != 2 {
		t.Fatalf("got %d decorations, want 2", len(decos))
	}

	want := widget.Range{
		Start: widget.Position{Line: 1, Column: 5},
		End:   widget.Position{Line: 2, Column: 2},
	}
	if decos[0].Range != want {
		t.Fatalf("first range: got %+v, want %+v", decos[0].Range, want)
	}
	for i, d := range decos {
		if d.Class != MatchClass {
			t.Fatalf("decoration %d class: got %q, want %q", i, d.Class, MatchClass)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	if got := Build(nil); got != nil {
		t.Fatalf("nil matches: got %v, want nil", got)
	}
	if got := Build([]span.Match{}); got != nil {
		t.Fatalf("empty matches: got %v, want nil", got)
	}
}

func TestSynchronizer_ReplacesAtomically(t *testing.T) {
	set := &recordingSet{}
	s := NewSynchronizer(set)

	s.Apply([]span.Match{
		{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2},
		{StartRow: 1, StartCol: 1, EndRow: 1, EndCol: 4},
	})
	if got := len(set.current); got != 2 {
		t.Fatalf("after first apply: got %d decorations, want 2", got)
	}
	if set.replaces != 1 {
		t.Fatalf("replaces: got %d, want 1", set.replaces)
	}

	// The second apply swaps the whole set; nothing from the first
	// apply survives.
	s.Apply([]span.Match{{StartRow: 3, StartCol: 0, EndRow: 3, EndCol: 1}})
	if got := len(set.current); got != 1 {
		t.Fatalf("after second apply: got %d decorations, want 1", got)
	}
	wantStart := widget.Position{Line: 4, Column: 1}
	if got := set.current[0].Range.Start; got != wantStart {
		t.Fatalf("surviving decoration start: got %+v, want %+v", got, wantStart)
	}
	if set.replaces != 2 {
		t.Fatalf("replaces: got %d, want 2", set.replaces)
	}
}

func TestSynchronizer_EmptyClears(t *testing.T) {
	set := &recordingSet{}
	s := NewSynchronizer(set)

	s.Apply([]span.Match{{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 5}})
	s.Apply(nil)

	if got := len(set.current); got != 0 {
		t.Fatalf("after empty apply: got %d decorations, want 0", got)
	}

	s.Apply([]span.Match{{StartRow: 0, StartCol: 1, EndRow: 0, EndCol: 2}})
	s.Clear()
	if got := len(set.current); got != 0 {
		t.Fatalf("after clear: got %d decorations, want 0", got)
	}
}

func TestSynchronizer_MatchesCopies(t *testing.T) {
	s := NewSynchronizer(&recordingSet{})
	in := []span.Match{{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 1}}
	s.Apply(in)

	got := s.Matches()
	if len(got) != 1 || got[0] != in[0] {
		t.Fatalf("matches: got %+v, want %+v", got, in)
	}

	// Mutating the caller's slice must not reach the synchronizer.
	in[0].EndCol = 99
	if s.Matches()[0].EndCol == 99 {
		t.Fatalf("synchronizer aliased the caller's slice")
	}
}

func TestSynchronizer_Idempotent(t *testing.T) {
	set := &recordingSet{}
	s := NewSynchronizer(set)
	matches := []span.Match{{StartRow: 1, StartCol: 0, EndRow: 1, EndCol: 3}}

	s.Apply(matches)
	first := append([]widget.Decoration(nil), set.current...)
	s.Apply(matches)

	if len(set.current) != len(first) {
		t.Fatalf("got %d decorations, want %d", len(set.current), len(first))
	}
	for i := range first {
		if set.current[i] != first[i] {
			t.Fatalf("decoration %d changed: got %+v, want %+v", i, set.current[i], first[i])
		}
	}
}
