package textdex

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// Codec implements the on-disk binary encodings used as keys and values in
// stores W, D and P: variable-length unsigned integers (the standard
// unsigned-LEB128 scheme from encoding/binary), (docId, occ) posting
// records, (docId, wordId) composite keys, and position lists.

// maxOcc is the clamp applied to per-document occurrence counts before they
// are packed into a single byte (spec §3, store D).
const maxOcc = 255

func clampOcc(n int) byte {
	if n > maxOcc {
		return maxOcc
	}
	if n < 0 {
		return 0
	}
	return byte(n)
}

// putUvarint appends the varint encoding of v to buf and returns the
// extended slice.
func putUvarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}

// readUvarint decodes a varint from the front of b, returning the value and
// the number of bytes consumed.
func readUvarint(b []byte) (uint64, int, error) {
	v, n := binary.Uvarint(b)
	if n <= 0 {
		return 0, 0, fmt.Errorf("textdex: decode varint: %w", ErrCorruptValue)
	}
	return v, n, nil
}

// encodeDocWordKey packs the (docId, wordId) composite key used by store P.
func encodeDocWordKey(docID, wordID uint32) []byte {
	buf := make([]byte, 0, 2*binary.MaxVarintLen32)
	buf = putUvarint(buf, uint64(docID))
	buf = putUvarint(buf, uint64(wordID))
	return buf
}

// decodeDocWordKey unpacks a store P key produced by encodeDocWordKey.
func decodeDocWordKey(b []byte) (docID, wordID uint32, err error) {
	d, n, err := readUvarint(b)
	if err != nil {
		return 0, 0, err
	}
	b = b[n:]
	w, _, err := readUvarint(b)
	if err != nil {
		return 0, 0, err
	}
	return uint32(d), uint32(w), nil
}

// encodePositions packs a strictly-ascending list of 1-based positions as a
// sequence of varints for storage in store P.
func encodePositions(positions []int) []byte {
	buf := make([]byte, 0, len(positions)*2)
	for _, p := range positions {
		buf = putUvarint(buf, uint64(p))
	}
	return buf
}

// decodePositions unpacks a store P value into its position list.
func decodePositions(b []byte) ([]int, error) {
	var out []int
	for len(b) > 0 {
		v, n, err := readUvarint(b)
		if err != nil {
			return nil, err
		}
		out = append(out, int(v))
		b = b[n:]
	}
	return out, nil
}

// encodeDocOccList packs a docId->occurrence-count map as a concatenated
// list of (docId, occ) records for storage in store D. Entries are emitted
// in ascending docId order so the encoding is deterministic.
func encodeDocOccList(m map[uint32]int) []byte {
	ids := make([]uint32, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	buf := make([]byte, 0, len(ids)*(binary.MaxVarintLen32+1))
	for _, id := range ids {
		buf = putUvarint(buf, uint64(id))
		buf = append(buf, clampOcc(m[id]))
	}
	return buf
}

// decodeDocOccList unpacks a store D value into a docId->occurrence map.
func decodeDocOccList(b []byte) (map[uint32]int, error) {
	m := make(map[uint32]int)
	for len(b) > 0 {
		docID, n, err := readUvarint(b)
		if err != nil {
			return nil, err
		}
		b = b[n:]
		if len(b) < 1 {
			return nil, fmt.Errorf("textdex: truncated posting record: %w", ErrCorruptValue)
		}
		m[uint32(docID)] = int(b[0])
		b = b[1:]
	}
	return m, nil
}

// appendDocOcc appends a single (docId, occ) record to an encoded store D
// value without decoding and re-encoding the whole list. postings.Add does
// not use it: it decodes, checks for a duplicate, and re-encodes.
func appendDocOcc(buf []byte, docID uint32, occ int) []byte {
	buf = putUvarint(buf, uint64(docID))
	return append(buf, clampOcc(occ))
}
