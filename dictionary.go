package textdex

import (
	"encoding/binary"
	"sync"
)

// nwordsKey is the reserved store W key holding the highest assigned
// wordId (spec §3, "_NWORDS").
const nwordsKey = "_NWORDS"

// stopwordID is the sentinel value store W uses to mark a term as a
// stopword rather than assigning it a real wordId.
const stopwordID int32 = -1

func encodeInt32(v int32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	return buf[:]
}

func decodeInt32(b []byte) int32 {
	if len(b) < 4 {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}

// dictionary maintains the word<->wordId bijection in store W, the
// stopword marker, and the word counter (spec §4.4).
type dictionary struct {
	w         *kvStore
	writeMode bool
	mu        sync.Mutex // serializes the _NWORDS read-modify-write
}

func newDictionary(w *kvStore, writeMode bool) *dictionary {
	return &dictionary{w: w, writeMode: writeMode}
}

func (d *dictionary) nwordsLocked() int32 {
	v, ok := d.w.get(nwordsKey)
	if !ok {
		return 0
	}
	return decodeInt32(v)
}

// Nwords returns the current highest assigned wordId.
func (d *dictionary) Nwords() int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nwordsLocked()
}

// LookupRead resolves term without assigning it an id. found is false for
// an unknown term; id is stopwordID (-1) for a marked stopword.
func (d *dictionary) LookupRead(term string) (id int32, found bool) {
	v, ok := d.w.get(term)
	if !ok {
		return 0, false
	}
	return decodeInt32(v), true
}

// LookupWrite resolves term to its existing wordId, assigning a fresh one
// (_NWORDS+1) if term has never been seen. A term already marked as a
// stopword keeps its -1 entry; LookupWrite never overwrites it.
func (d *dictionary) LookupWrite(term string) (int32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if v, ok := d.w.get(term); ok {
		return decodeInt32(v), nil
	}

	next := d.nwordsLocked() + 1
	d.w.put(nwordsKey, encodeInt32(next))
	d.w.put(term, encodeInt32(next))
	return next, nil
}

// MarkStopword sets W[term] = -1. Only valid in write mode, and only
// before term has been assigned a positive wordId — a term that already
// has postings cannot retroactively become a stopword without leaving
// those postings dangling (spec §4.4).
func (d *dictionary) MarkStopword(term string) error {
	if !d.writeMode {
		return ErrStopwordsInReadMode
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if v, ok := d.w.get(term); ok {
		if id := decodeInt32(v); id > 0 {
			return ErrStopwordAfterWrite
		}
		return nil // already a stopword; idempotent
	}
	d.w.put(term, encodeInt32(stopwordID))
	return nil
}
