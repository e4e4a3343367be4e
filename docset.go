package textdex

import "github.com/RoaringBitmap/roaring"

// docSet is a roaring-bitmap-backed set of document IDs. The Evaluator uses
// it for the mandatory-group intersection and negative-group exclusion
// steps of spec §4.8 instead of repeated map lookups, trading a bitmap
// build for O(1) amortized membership and intersection once NDOCS grows
// large. Adapted from the teacher's DocumentFilter (document_filter.go),
// generalized from a single eligibility bitmap to the intersect/exclude
// pair evaluate() needs.
type docSet struct {
	bitmap *roaring.Bitmap
}

func newDocSet(ids []uint32) *docSet {
	b := roaring.New()
	b.AddMany(ids)
	return &docSet{bitmap: b}
}

// docSetFromScores builds a docSet out of a scoreMap's keys.
func docSetFromScores(sc scoreMap) *docSet {
	ids := make([]uint32, 0, len(sc))
	for id := range sc {
		ids = append(ids, id)
	}
	return newDocSet(ids)
}

func (s *docSet) Contains(id uint32) bool {
	return s != nil && s.bitmap.Contains(id)
}

// And returns the intersection of s and other as a new docSet.
func (s *docSet) And(other *docSet) *docSet {
	if s == nil || other == nil {
		return newDocSet(nil)
	}
	return &docSet{bitmap: roaring.And(s.bitmap, other.bitmap)}
}
