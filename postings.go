package textdex

import "fmt"

// ndocsKey is the reserved store D key holding the document count (spec §3,
// "NDOCS"): incremented by each add, decremented by each remove.
const ndocsKey = "NDOCS"

// postings owns stores D and P: D maps a wordId to the (docId, occurrence)
// list of every document containing that word, P maps a (docId, wordId)
// pair to that document's position list for the word (spec §3, §4.5).
type postings struct {
	d *kvStore
	p *kvStore
}

func newPostings(d, p *kvStore) *postings {
	return &postings{d: d, p: p}
}

func wordKey(wordID uint32) string {
	return string(putUvarint(nil, uint64(wordID)))
}

func docWordKey(docID, wordID uint32) string {
	return string(encodeDocWordKey(docID, wordID))
}

// Add records that docID contains wordID at positions. Fails with ErrDupDoc
// if docID already has an entry for wordID — spec §4.5 treats re-adding the
// same (docId, wordId) pair as a hard error rather than a silent merge.
func (po *postings) Add(docID, wordID uint32, positions []int) error {
	key := wordKey(wordID)
	raw, _ := po.d.get(key)
	m, err := decodeDocOccList(raw)
	if err != nil {
		return err
	}
	if _, dup := m[docID]; dup {
		return fmt.Errorf("textdex: doc %d word %d: %w", docID, wordID, ErrDupDoc)
	}
	m[docID] = len(positions)
	po.d.put(key, encodeDocOccList(m))
	po.p.put(docWordKey(docID, wordID), encodePositions(positions))
	return nil
}

// Remove deletes docID's entry for wordID. A no-op, not an error, if docID
// was never recorded against wordID — a document can be removed with text
// that only partially overlaps what was originally added.
func (po *postings) Remove(docID, wordID uint32) error {
	key := wordKey(wordID)
	raw, ok := po.d.get(key)
	if !ok {
		return nil
	}
	m, err := decodeDocOccList(raw)
	if err != nil {
		return err
	}
	if _, ok := m[docID]; !ok {
		return nil
	}
	delete(m, docID)
	if len(m) == 0 {
		po.d.delete(key)
	} else {
		po.d.put(key, encodeDocOccList(m))
	}
	po.p.delete(docWordKey(docID, wordID))
	return nil
}

// DocOccurrences returns the docId->occurrence-count map recorded for
// wordID, or nil if wordID has no postings at all.
func (po *postings) DocOccurrences(wordID uint32) (map[uint32]int, error) {
	raw, ok := po.d.get(wordKey(wordID))
	if !ok {
		return nil, nil
	}
	return decodeDocOccList(raw)
}

// Positions returns the position list recorded for (docID, wordID), or nil
// if there is none.
func (po *postings) Positions(docID, wordID uint32) ([]int, error) {
	raw, ok := po.p.get(docWordKey(docID, wordID))
	if !ok {
		return nil, nil
	}
	return decodePositions(raw)
}

// NDocs returns the current document count, per the store D "NDOCS"
// counter.
func (po *postings) NDocs() int32 {
	raw, ok := po.d.get(ndocsKey)
	if !ok {
		return 0
	}
	return decodeInt32(raw)
}

// IncNDocs bumps the NDOCS counter. Called once per document add, not once
// per word, so callers own the "have I seen this docId before" decision.
func (po *postings) IncNDocs() {
	po.d.put(ndocsKey, encodeInt32(po.NDocs()+1))
}

// DecNDocs decrements the NDOCS counter, floored at zero.
func (po *postings) DecNDocs() {
	if n := po.NDocs(); n > 0 {
		po.d.put(ndocsKey, encodeInt32(n-1))
	}
}
