package textdex

import "math"

// scoreMap is a docId -> score map. A nil scoreMap is the spec's NONE: "no
// information", distinct from an empty-but-non-nil map.
type scoreMap map[uint32]int

// evaluate implements spec §4.8: it combines a translated query group's
// mandatory, optional and negative subqueries into a single score map.
func evaluate(g *translatedGroup, po *postings) scoreMap {
	if g == nil {
		return nil
	}

	var scores scoreMap
	for _, sub := range g.mandatory {
		sc := scoreSub(sub, po)
		if sc == nil {
			continue
		}
		if scores == nil {
			scores = sc
			continue
		}
		keep := docSetFromScores(scores).And(docSetFromScores(sc))
		for docID := range scores {
			if !keep.Contains(docID) {
				delete(scores, docID)
				continue
			}
			scores[docID] += sc[docID]
		}
	}

	noMandatory := scores == nil

	for _, sub := range g.optional {
		sc := scoreSub(sub, po)
		if sc == nil {
			continue
		}
		if scores == nil {
			scores = sc
			continue
		}
		for docID, v := range sc {
			if _, ok := scores[docID]; ok {
				scores[docID] += v
			} else if noMandatory {
				scores[docID] = v
			}
		}
	}

	if scores == nil {
		return nil
	}

	for _, sub := range g.negative {
		sc := scoreSub(sub, po)
		if sc == nil {
			continue
		}
		excl := docSetFromScores(sc)
		for docID := range scores {
			if excl.Contains(docID) {
				delete(scores, docID)
			}
		}
	}
	return scores
}

// scoreSub scores one leaf subquery, or recurses into a nested group.
func scoreSub(sub translatedSub, po *postings) scoreMap {
	if sub.group != nil {
		return evaluate(sub.group, po)
	}
	if len(sub.ids) == 1 {
		return scoreSingleWord(sub.ids[0], po)
	}
	return scorePhrase(sub.ids, po)
}

// scoreSingleWord computes the IDF-style score for one wordId, per the
// v>0 branch of spec §4.8's scoreSub: coeff = log((N+1)/k) * 100, per-doc
// score = floor(coeff * occ).
func scoreSingleWord(id int32, po *postings) scoreMap {
	if id <= 0 {
		return nil // 0 = no information, -1 = stopword
	}
	occ, err := po.DocOccurrences(uint32(id))
	if err != nil || len(occ) == 0 {
		return nil
	}

	n := float64(po.NDocs())
	k := float64(len(occ))
	coeff := math.Log((n+1)/k) * 100

	out := make(scoreMap, len(occ))
	for docID, o := range occ {
		out[docID] = int(math.Floor(coeff * float64(o)))
	}
	return out
}

// scorePhrase evaluates an exact-phrase subquery: a list of wordIds whose
// positions must appear in order, within wordDelta of each other, per the
// list-of-ids branch of spec §4.8's scoreSub.
func scorePhrase(ids []int32, po *postings) scoreMap {
	var scores scoreMap
	pos := make(map[uint32][]int)
	wordDelta := 0

	for _, id := range ids {
		sc := scoreSingleWord(id, po)

		if scores == nil {
			scores = sc
			if scores == nil {
				continue
			}
			for docID := range scores {
				p, _ := po.Positions(docID, uint32(id))
				pos[docID] = p
			}
			continue
		}

		wordDelta++
		for docID := range scores {
			if sc == nil {
				continue // stopword inside a phrase is a free slot
			}
			occ, ok := sc[docID]
			if !ok {
				delete(scores, docID)
				delete(pos, docID)
				continue
			}
			newPos, _ := po.Positions(docID, uint32(id))
			near := nearPositions(pos[docID], newPos, wordDelta)
			if len(near) == 0 {
				delete(scores, docID)
				delete(pos, docID)
				continue
			}
			pos[docID] = near
			scores[docID] += occ
		}
	}
	return scores
}

// nearPositions returns the subset of b whose elements y have some x in a
// with 0 < y-x <= delta. Both a and b must be sorted ascending. Two-cursor
// algorithm per spec §4.8.
func nearPositions(a, b []int, delta int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case b[j]-a[i] > delta:
			i++
		case b[j]-a[i] > 0:
			out = append(out, b[j])
			j++
		default:
			j++
		}
	}
	return out
}
