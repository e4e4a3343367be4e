package textdex

import (
	"fmt"
	"strings"
)

// QueryParser turns a raw query string into the QueryGroup tree the
// Translator consumes. Open installs NewDefaultQueryParser if
// Options.Parser is nil; spec §6 treats the parser as an external
// component the core merely drives with (queryString, implicitPlus).
type QueryParser interface {
	Parse(queryString string, implicitPlus bool) (*QueryGroup, error)
}

type defaultQueryParser struct{}

// NewDefaultQueryParser returns a QueryParser for a small query grammar:
// bare terms, "+term"/"-term" sign prefixes, "field:term" qualifiers,
// "quoted phrases", and parenthesized groups (optionally signed, e.g.
// "-(foo bar)"). implicitPlus, when true, treats unsigned bare terms as
// mandatory rather than optional.
func NewDefaultQueryParser() QueryParser {
	return defaultQueryParser{}
}

func (defaultQueryParser) Parse(queryString string, implicitPlus bool) (*QueryGroup, error) {
	toks := tokenizeQuery(queryString)
	g, rest, err := parseGroup(toks, implicitPlus)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("textdex: unexpected %q in query", rest[0])
	}
	return g, nil
}

func tokenizeQuery(q string) []string {
	var toks []string
	i := 0
	for i < len(q) {
		c := q[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		case c == '"':
			j := i + 1
			for j < len(q) && q[j] != '"' {
				j++
			}
			if j < len(q) {
				j++
			}
			toks = append(toks, q[i:j])
			i = j
		default:
			j := i
			for j < len(q) && !isQuerySpace(q[j]) && q[j] != '(' && q[j] != ')' {
				j++
			}
			toks = append(toks, q[i:j])
			i = j
		}
	}
	return toks
}

func isQuerySpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseGroup consumes a flat token stream up to (but not including) a
// closing ")" or the end of input, returning the group built so far and
// whatever tokens remain unconsumed.
func parseGroup(toks []string, implicitPlus bool) (*QueryGroup, []string, error) {
	g := &QueryGroup{}
	for len(toks) > 0 {
		tok := toks[0]
		if tok == ")" {
			break
		}

		if (tok == "+" || tok == "-") && len(toks) > 1 && toks[1] == "(" {
			nested, rest, err := parseGroup(toks[2:], implicitPlus)
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 || rest[0] != ")" {
				return nil, nil, fmt.Errorf("textdex: unbalanced parens in query")
			}
			addGroupSub(g, tok[0], QuerySub{Group: nested})
			toks = rest[1:]
			continue
		}

		if tok == "(" {
			nested, rest, err := parseGroup(toks[1:], implicitPlus)
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 || rest[0] != ")" {
				return nil, nil, fmt.Errorf("textdex: unbalanced parens in query")
			}
			sign := byte(0)
			if implicitPlus {
				sign = '+'
			}
			addGroupSub(g, sign, QuerySub{Group: nested})
			toks = rest[1:]
			continue
		}

		sub, sign := parseLeaf(tok, implicitPlus)
		addGroupSub(g, sign, sub)
		toks = toks[1:]
	}
	return g, toks, nil
}

func addGroupSub(g *QueryGroup, sign byte, sub QuerySub) {
	switch sign {
	case '+':
		g.Mandatory = append(g.Mandatory, sub)
	case '-':
		g.Negative = append(g.Negative, sub)
	default:
		g.Optional = append(g.Optional, sub)
	}
}

func parseLeaf(tok string, implicitPlus bool) (QuerySub, byte) {
	sign := byte(0)
	body := tok
	switch {
	case strings.HasPrefix(body, "+"):
		sign = '+'
		body = body[1:]
	case strings.HasPrefix(body, "-"):
		sign = '-'
		body = body[1:]
	case implicitPlus:
		sign = '+'
	}

	field := ""
	if !strings.HasPrefix(body, `"`) {
		if idx := strings.IndexByte(body, ':'); idx > 0 {
			field = body[:idx]
			body = body[idx+1:]
		}
	}

	var value []string
	if strings.HasPrefix(body, `"`) {
		value = strings.Fields(strings.Trim(body, `"`))
	} else {
		value = []string{body}
	}
	return QuerySub{Field: field, Value: value}, sign
}
