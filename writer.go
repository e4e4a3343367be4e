package textdex

import "fmt"

// maxDocID is the largest docId the codec's composite keys can address
// (spec §4.6, DOC_ID_TOO_LARGE).
const maxDocID = uint64(1)<<32 - 1

// writer composes the Lexer, Dictionary and Postings components into the
// add/remove operations of spec §4.6, and owns flushing all three stores
// after each call.
type writer struct {
	lx   *lexer
	dict *dictionary
	po   *postings
	w, d, p *kvStore
}

func newWriter(lx *lexer, dict *dictionary, po *postings, w, d, p *kvStore) *writer {
	return &writer{lx: lx, dict: dict, po: po, w: w, d: d, p: p}
}

// buildPositions lexes buf and groups token ordinals by resolved wordId,
// skipping stopwords. resolve is either the dictionary's write-mode or
// read-mode lookup, so add and remove share this walk.
func buildPositions(tokens []token, resolve func(term string) (int32, error)) (map[uint32][]int, error) {
	m := make(map[uint32][]int)
	for _, tok := range tokens {
		id, err := resolve(tok.term)
		if err != nil {
			return nil, err
		}
		if id == stopwordID || id == 0 {
			continue
		}
		m[uint32(id)] = append(m[uint32(id)], tok.ordinal)
	}
	return m, nil
}

// Add indexes buf under docId (spec §4.5's add(docId, buf)).
func (w *writer) Add(docID uint64, buf string) error {
	if docID > maxDocID {
		return fmt.Errorf("textdex: docId %d: %w", docID, ErrDocIDTooLarge)
	}

	tokens := w.lx.lex(buf)
	byWord, err := buildPositions(tokens, func(term string) (int32, error) {
		return w.dict.LookupWrite(term)
	})
	if err != nil {
		return err
	}

	for wordID, positions := range byWord {
		if err := w.po.Add(uint32(docID), wordID, positions); err != nil {
			return err
		}
	}
	w.po.IncNDocs()
	return w.flush()
}

// Remove undoes a prior Add for docId, using the same buf that was
// originally indexed (spec §4.5's remove(docId, buf)).
func (w *writer) Remove(docID uint64, buf string) error {
	if docID > maxDocID {
		return fmt.Errorf("textdex: docId %d: %w", docID, ErrDocIDTooLarge)
	}

	tokens := w.lx.lex(buf)
	byWord, err := buildPositions(tokens, func(term string) (int32, error) {
		id, _ := w.dict.LookupRead(term)
		return id, nil
	})
	if err != nil {
		return err
	}

	for wordID := range byWord {
		if err := w.po.Remove(uint32(docID), wordID); err != nil {
			return err
		}
	}
	w.po.DecNDocs()
	return w.flush()
}

// flush persists W, D and P so that a single add/remove call is durable
// before it returns (spec §4.6).
func (w *writer) flush() error {
	if err := w.w.flush(); err != nil {
		return err
	}
	if err := w.d.flush(); err != nil {
		return err
	}
	return w.p.flush()
}
