package textdex

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestCodecInvariants checks the varint and posting-record invariants spec
// §8 requires: encode/decode round trips for every representable value.
func TestCodecInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("varint round trip", prop.ForAll(
		func(n uint32) bool {
			v, consumed, err := readUvarint(putUvarint(nil, uint64(n)))
			return err == nil && consumed > 0 && v == uint64(n)
		},
		gen.UInt32(),
	))

	properties.Property("doc/word key round trip", prop.ForAll(
		func(docID, wordID uint32) bool {
			gotDoc, gotWord, err := decodeDocWordKey(encodeDocWordKey(docID, wordID))
			return err == nil && gotDoc == docID && gotWord == wordID
		},
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.Property("occurrence count clamps into a byte", prop.ForAll(
		func(n int) bool {
			c := clampOcc(n)
			return c >= 0 && int(c) <= maxOcc
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}

// TestWriterInvariants checks spec §8's add/remove idempotence on the
// document counter: adding a document raises NDocs by one, and removing
// exactly what was added restores it.
func TestWriterInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("add then remove is idempotent on NDocs", prop.ForAll(
		func(words []string) bool {
			wr, _, po := newTestWriter(t)
			text := joinWords(words)

			before := po.NDocs()
			if err := wr.Add(1, text); err != nil {
				return false
			}
			if po.NDocs() != before+1 {
				return false
			}
			if err := wr.Remove(1, text); err != nil {
				return false
			}
			return po.NDocs() == before
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// TestEvaluatorInvariants checks spec §8's mandatory-group law: a doc in
// the mandatory-group result must appear in every individual sub's result.
func TestEvaluatorInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("mandatory intersection is a subset of each sub", prop.ForAll(
		func(assignments []docWordAssignment) bool {
			po := newTestPostings(t)
			seen := make(map[[2]uint32]bool)
			for _, a := range assignments {
				key := [2]uint32{a.docID % 20, a.wordID % 5}
				if seen[key] {
					continue
				}
				seen[key] = true
				po.Add(key[0], key[1], []int{1})
			}

			g := &translatedGroup{mandatory: []translatedSub{sub(1), sub(2)}}
			scores := evaluate(g, po)

			occ1, _ := po.DocOccurrences(1)
			occ2, _ := po.DocOccurrences(2)
			for docID := range scores {
				if _, ok := occ1[docID]; !ok {
					return false
				}
				if _, ok := occ2[docID]; !ok {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(15, genDocWordAssignment()),
	))

	properties.Property("negative group never leaves an excluded doc", prop.ForAll(
		func(assignments []docWordAssignment) bool {
			po := newTestPostings(t)
			seen := make(map[[2]uint32]bool)
			for _, a := range assignments {
				key := [2]uint32{a.docID % 20, a.wordID % 5}
				if seen[key] {
					continue
				}
				seen[key] = true
				po.Add(key[0], key[1], []int{1})
			}

			g := &translatedGroup{optional: []translatedSub{sub(2)}, negative: []translatedSub{sub(1)}}
			scores := evaluate(g, po)

			occ1, _ := po.DocOccurrences(1)
			for docID := range scores {
				if _, excluded := occ1[docID]; excluded {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(15, genDocWordAssignment()),
	))

	properties.TestingRun(t)
}

type docWordAssignment struct {
	docID, wordID uint32
}

func genDocWordAssignment() gopter.Gen {
	return gen.Struct(reflect.TypeOf(docWordAssignment{}), map[string]gopter.Gen{
		"docID":  gen.UInt32Range(0, 19),
		"wordID": gen.UInt32Range(0, 4),
	})
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}
