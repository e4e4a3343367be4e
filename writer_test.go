package textdex

import (
	"errors"
	"testing"
)

func newTestWriter(t *testing.T) (*writer, *dictionary, *postings) {
	t.Helper()
	lx, err := newLexer(DefaultWordRegex, DefaultNormalizer)
	if err != nil {
		t.Fatalf("newLexer error: %v", err)
	}
	w := newTestStore(t, true)
	d := newTestStore(t, true)
	p := newTestStore(t, true)
	dict := newDictionary(w, true)
	po := newPostings(d, p)
	return newWriter(lx, dict, po, w, d, p), dict, po
}

func TestWriterAddIndexesAllWords(t *testing.T) {
	wr, dict, po := newTestWriter(t)

	if err := wr.Add(1, "the quick brown fox"); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	id, found := dict.LookupRead("fox")
	if !found || id <= 0 {
		t.Fatalf("fox not indexed: found=%v id=%d", found, id)
	}
	occ, err := po.DocOccurrences(uint32(id))
	if err != nil {
		t.Fatalf("DocOccurrences error: %v", err)
	}
	if occ[1] != 1 {
		t.Errorf("doc 1 occurrence for fox = %d, want 1", occ[1])
	}
	if po.NDocs() != 1 {
		t.Errorf("NDocs = %d, want 1", po.NDocs())
	}
}

func TestWriterAddRejectsOversizedDocID(t *testing.T) {
	wr, _, _ := newTestWriter(t)
	if err := wr.Add(maxDocID+1, "text"); !errors.Is(err, ErrDocIDTooLarge) {
		t.Errorf("got %v, want ErrDocIDTooLarge", err)
	}
}

func TestWriterAddThenRemoveRestoresState(t *testing.T) {
	wr, dict, po := newTestWriter(t)
	const text = "the quick brown fox"

	if err := wr.Add(1, text); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := wr.Remove(1, text); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	id, found := dict.LookupRead("fox")
	if !found {
		t.Fatal("fox should still be a known word after remove")
	}
	occ, err := po.DocOccurrences(uint32(id))
	if err != nil {
		t.Fatalf("DocOccurrences error: %v", err)
	}
	if _, ok := occ[1]; ok {
		t.Error("doc 1 still present in postings after remove")
	}
	if po.NDocs() != 0 {
		t.Errorf("NDocs = %d, want 0", po.NDocs())
	}
}

func TestWriterAddSkipsStopwords(t *testing.T) {
	wr, dict, _ := newTestWriter(t)
	if err := dict.MarkStopword("the"); err != nil {
		t.Fatalf("MarkStopword error: %v", err)
	}

	if err := wr.Add(1, "the quick fox"); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	id, _ := dict.LookupRead("the")
	if id != stopwordID {
		t.Fatalf("the should remain a stopword, got id %d", id)
	}
}
