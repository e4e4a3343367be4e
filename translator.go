package textdex

import (
	"regexp"
	"strings"
)

// QueryGroup is the external parser's tree shape from spec §4.7, realized
// as three sign-partitioned slices instead of a repeated {op, entries}
// node — evaluate() (spec §4.8) always processes all three signs at a
// given nesting level together, so grouping them here avoids re-deriving
// "which list is this node's sign" at every level of recursion.
type QueryGroup struct {
	Mandatory []QuerySub // '+' entries
	Optional  []QuerySub // unsigned entries
	Negative  []QuerySub // '-' entries
}

// QuerySub is either a field:value clause or a parenthesized nested group.
// Group is non-nil for the latter, in which case Field and Value are unused.
type QuerySub struct {
	Field string
	Value []string // one element for a single term, several for a phrase
	Group *QueryGroup
}

// translatedGroup mirrors QueryGroup after wordId resolution.
type translatedGroup struct {
	mandatory []translatedSub
	optional  []translatedSub
	negative  []translatedSub
}

// translatedSub carries the resolved value for one leaf subquery: ids has
// one element for a single term, several for an exact-phrase match, or is
// {0} for "no information". group is set instead for a nested subquery.
type translatedSub struct {
	ids   []int32
	group *translatedGroup
}

// translateResult is what Search hands to the Evaluator and Excerpter: the
// resolved tree, the surface terms that carried no index information, and
// the regex fragments used to build the excerpt-highlighting regex.
type translateResult struct {
	tree         *translatedGroup
	killedWords  []string
	wordsRegexes []string
}

// translator implements spec §4.7: it resolves an external parser's tree
// into wordIds using the indexer's own Lexer and Dictionary, independent of
// however the parser itself tokenized the query text.
type translator struct {
	lx        *lexer
	dict      *dictionary
	fieldname string
}

func newTranslator(lx *lexer, dict *dictionary, fieldname string) *translator {
	return &translator{lx: lx, dict: dict, fieldname: fieldname}
}

func (t *translator) translate(root *QueryGroup) *translateResult {
	res := &translateResult{}
	res.tree = t.translateGroup(root, res)
	return res
}

func (t *translator) translateGroup(g *QueryGroup, res *translateResult) *translatedGroup {
	if g == nil {
		return nil
	}
	return &translatedGroup{
		mandatory: t.translateSubs(g.Mandatory, res),
		optional:  t.translateSubs(g.Optional, res),
		negative:  t.translateSubs(g.Negative, res),
	}
}

func (t *translator) translateSubs(subs []QuerySub, res *translateResult) []translatedSub {
	out := make([]translatedSub, 0, len(subs))
	for _, sub := range subs {
		if sub.Group != nil {
			out = append(out, translatedSub{group: t.translateGroup(sub.Group, res)})
			continue
		}
		if sub.Field != "" && sub.Field != t.fieldname {
			continue
		}
		out = append(out, t.translateSub(sub, res))
	}
	return out
}

func (t *translator) translateSub(sub QuerySub, res *translateResult) translatedSub {
	value := strings.Join(sub.Value, " ")
	surface := t.lx.surfaceTerms(value)

	normalized := make([]string, len(surface))
	for i, term := range surface {
		normalized[i] = t.lx.normalizer(term)
	}
	res.wordsRegexes = append(res.wordsRegexes, joinRegexFragment(surface), joinRegexFragment(normalized))

	ids := make([]int32, 0, len(surface))
	for i, term := range surface {
		norm := normalized[i]
		id, found := t.dict.LookupRead(norm)
		switch {
		case !found:
			res.killedWords = append(res.killedWords, term)
			ids = append(ids, 0)
		case id == stopwordID:
			res.killedWords = append(res.killedWords, term)
			ids = append(ids, stopwordID)
		default:
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		ids = []int32{0}
	}
	return translatedSub{ids: ids}
}

// joinRegexFragment builds one \W+-joined regex fragment out of a list of
// surface terms, for later combination into the excerpt regex (spec §4.7).
func joinRegexFragment(terms []string) string {
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return strings.Join(quoted, `\W+`)
}

// buildExcerptRegex combines the collected \b-anchored, case-insensitive
// fragments into the single compiled regex Search returns for use by
// Excerpts (spec §4.7, §4.9).
func buildExcerptRegex(fragments []string) (*regexp.Regexp, error) {
	nonEmpty := fragments[:0:0]
	for _, f := range fragments {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	if len(nonEmpty) == 0 {
		return regexp.Compile(`^\z.`) // never matches
	}
	pattern := `(?i)\b(?:` + strings.Join(nonEmpty, "|") + `)\b`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, ErrBadRegex
	}
	return re, nil
}
