package textdex

import "testing"

func TestDocSetContains(t *testing.T) {
	s := newDocSet([]uint32{1, 5, 9})
	for _, id := range []uint32{1, 5, 9} {
		if !s.Contains(id) {
			t.Errorf("Contains(%d) = false, want true", id)
		}
	}
	if s.Contains(2) {
		t.Error("Contains(2) = true, want false")
	}
}

func TestDocSetAnd(t *testing.T) {
	a := newDocSet([]uint32{1, 2, 3})
	b := newDocSet([]uint32{2, 3, 4})
	got := a.And(b)

	for _, id := range []uint32{2, 3} {
		if !got.Contains(id) {
			t.Errorf("intersection missing %d", id)
		}
	}
	if got.Contains(1) || got.Contains(4) {
		t.Error("intersection should not contain 1 or 4")
	}
}

func TestDocSetFromScores(t *testing.T) {
	s := docSetFromScores(scoreMap{1: 10, 2: 20})
	if !s.Contains(1) || !s.Contains(2) {
		t.Error("docSetFromScores missing expected ids")
	}
}
