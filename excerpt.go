package textdex

import (
	"regexp"
	"sort"
	"unicode/utf8"
)

// fragment is a matched span of buf, plus how many regex matches merged
// into it, used by the excerpt-building algorithm of spec §4.9.
type fragment struct {
	start, end, count int
}

// excerptConfig bundles the four Options fields the Excerpter needs.
type excerptConfig struct {
	ctxtNumChars int
	maxExcerpts  int
	preMatch     string
	postMatch    string
}

// buildExcerpts implements spec §4.9: merge nearby matches into fragments,
// expand each by ctxtNumChars, keep the maxExcerpts fragments with the most
// matches, then highlight and quote each one.
func buildExcerpts(buf string, re *regexp.Regexp, cfg excerptConfig) []string {
	frags := mergeFragments(re.FindAllStringIndex(buf, -1), cfg.ctxtNumChars)
	if len(frags) == 0 {
		return nil
	}
	expandFragments(frags, buf, cfg.ctxtNumChars)

	sort.SliceStable(frags, func(i, j int) bool { return frags[i].count > frags[j].count })
	if len(frags) > cfg.maxExcerpts {
		frags = frags[:cfg.maxExcerpts]
	}

	out := make([]string, len(frags))
	for i, f := range frags {
		sub := buf[f.start:f.end]
		highlighted := re.ReplaceAllStringFunc(sub, func(match string) string {
			return cfg.preMatch + match + cfg.postMatch
		})
		out[i] = "..." + highlighted + "..."
	}
	return out
}

func mergeFragments(matches [][]int, ctxtNumChars int) []fragment {
	var frags []fragment
	for _, m := range matches {
		start, end := m[0], m[1]
		if len(frags) > 0 {
			last := &frags[len(frags)-1]
			if start <= last.end+ctxtNumChars {
				last.end = end
				last.count++
				continue
			}
		}
		frags = append(frags, fragment{start: start, end: end, count: 1})
	}
	return frags
}

func expandFragments(frags []fragment, buf string, ctxtNumChars int) {
	for i := range frags {
		frags[i].start = clampRuneBoundary(buf, frags[i].start-ctxtNumChars, false)
		frags[i].end = clampRuneBoundary(buf, frags[i].end+ctxtNumChars, true)
	}
}

// clampRuneBoundary clamps i to [0, len(buf)] and, if that lands inside a
// multi-byte rune, nudges it to the nearest valid boundary so slicing buf
// never splits a rune. forward controls which direction to nudge.
func clampRuneBoundary(buf string, i int, forward bool) int {
	if i < 0 {
		i = 0
	}
	if i > len(buf) {
		i = len(buf)
	}
	for i > 0 && i < len(buf) && !utf8.RuneStart(buf[i]) {
		if forward {
			i++
		} else {
			i--
		}
	}
	return i
}
