package textdex

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer maps a surface term to its indexed form, or to the empty
// string to drop it. Applied after the word regex matches a token; an
// empty return value does not renumber surrounding positions (spec §4.3).
type Normalizer func(term string) string

// token is a single (normalized term, ordinal) pair produced by a lexer
// pass. ordinal is the 1-based count of regex matches seen so far,
// including matches the normalizer went on to drop — this is what keeps
// position numbering stable across stopword removal.
type token struct {
	term    string
	ordinal int
}

// lexer applies a word regex, then a normalizer, to a buffer, yielding a
// stream of tokens. The regex must have no capturing groups (checked at
// construction); normalized-away matches are skipped before return.
type lexer struct {
	wordRegex  *regexp.Regexp
	normalizer Normalizer
}

func newLexer(wordRegex *regexp.Regexp, normalizer Normalizer) (*lexer, error) {
	if wordRegex.NumSubexp() > 0 {
		return nil, ErrBadRegex
	}
	if normalizer == nil {
		normalizer = DefaultNormalizer
	}
	return &lexer{wordRegex: wordRegex, normalizer: normalizer}, nil
}

// lex returns every (normalized term, ordinal) pair in buf, in order,
// dropping matches the normalizer reduces to "".
func (lx *lexer) lex(buf string) []token {
	matches := lx.wordRegex.FindAllString(buf, -1)
	out := make([]token, 0, len(matches))
	for i, m := range matches {
		if norm := lx.normalizer(m); norm != "" {
			out = append(out, token{term: norm, ordinal: i + 1})
		}
	}
	return out
}

// surfaceTerms returns every raw regex match in buf, without normalization
// or position tracking. Used by the Query Translator (spec §4.7), which
// re-tokenizes a query subquery's surface text with the indexer's own word
// regex independently of the external parser's own tokenization.
func (lx *lexer) surfaceTerms(buf string) []string {
	return lx.wordRegex.FindAllString(buf, -1)
}

// DefaultWordRegex matches runs of letters and digits, allowing internal
// apostrophes, underscores and hyphens — a reasonable "word" for general
// prose, with no capturing groups.
var DefaultWordRegex = regexp.MustCompile(`[\p{L}\p{N}]+(?:['_-][\p{L}\p{N}]+)*`)

// accentFold strips combining marks after Unicode decomposition, the
// standard golang.org/x/text recipe for turning "café" into "cafe". It
// extends the teacher's normalize() (bm25_index.go), which applies NFKC
// casing only, with the Latin-1 accent stripping spec §4.3 asks for.
var accentFold = transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// DefaultNormalizer lowercases a term and strips Latin-1 accented
// characters to their ASCII base, per spec §4.3. Never returns "" for a
// non-empty input, so it never silently drops terms the default word
// regex would have matched.
func DefaultNormalizer(term string) string {
	folded, _, err := transform.String(accentFold, term)
	if err != nil {
		folded = term
	}
	return strings.ToLower(folded)
}
