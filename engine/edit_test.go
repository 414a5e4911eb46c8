package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApply_SingleEdit(t *testing.T) {
	got := Apply("hello world", []Edit{{Position: 6, Deleted: 5, Inserted: "there"}})
	require.Equal(t, "hello there", got)
}

func TestApply_MultipleEditsInOrder(t *testing.T) {
	src := "aaa bbb ccc"
	got := Apply(src, []Edit{
		{Position: 8, Deleted: 3, Inserted: "C"},
		{Position: 0, Deleted: 3, Inserted: "A"},
	})
	require.Equal(t, "A bbb C", got)
}

func TestApply_SkipsOverlappingEdit(t *testing.T) {
	src := "abcdefgh"
	got := Apply(src, []Edit{
		{Position: 1, Deleted: 4, Inserted: "X"},
		// Starts inside the region the first edit consumed.
		{Position: 3, Deleted: 2, Inserted: "Y"},
	})
	require.Equal(t, "aXfgh", got)
}

func TestApply_AdjacentEditsBothApply(t *testing.T) {
	src := "abcd"
	got := Apply(src, []Edit{
		{Position: 0, Deleted: 2, Inserted: "X"},
		{Position: 2, Deleted: 2, Inserted: "Y"},
	})
	require.Equal(t, "XY", got)
}

func TestApply_PureInsert(t *testing.T) {
	got := Apply("ad", []Edit{{Position: 1, Deleted: 0, Inserted: "bc"}})
	require.Equal(t, "abcd", got)
}

func TestApply_ClampsPastEnd(t *testing.T) {
	got := Apply("abc", []Edit{{Position: 2, Deleted: 99, Inserted: "Z"}})
	require.Equal(t, "abZ", got)

	got = Apply("abc", []Edit{{Position: 99, Deleted: 1, Inserted: "Z"}})
	require.Equal(t, "abc", got)
}

func TestApply_NoEdits(t *testing.T) {
	require.Equal(t, "same", Apply("same", nil))
}
