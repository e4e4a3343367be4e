package textdex

import (
	"reflect"
	"regexp"
	"testing"
)

func TestLexerLex(t *testing.T) {
	lx, err := newLexer(DefaultWordRegex, DefaultNormalizer)
	if err != nil {
		t.Fatalf("newLexer error: %v", err)
	}

	tests := []struct {
		name string
		buf  string
		want []token
	}{
		{
			name: "simple",
			buf:  "the Quick Brown",
			want: []token{{"the", 1}, {"quick", 2}, {"brown", 3}},
		},
		{
			name: "accented",
			buf:  "café naïve",
			want: []token{{"cafe", 1}, {"naive", 2}},
		},
		{
			name: "punctuation boundaries",
			buf:  "Hello, World!",
			want: []token{{"hello", 1}, {"world", 2}},
		},
		{
			name: "empty",
			buf:  "",
			want: []token{},
		},
		{
			name: "hyphenated word kept whole",
			buf:  "state-of-the-art",
			want: []token{{"state-of-the-art", 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lx.lex(tt.buf)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lex(%q) = %v, want %v", tt.buf, got, tt.want)
			}
		})
	}
}

func TestLexerOrdinalsStableAcrossDrop(t *testing.T) {
	normalizer := func(term string) string {
		if term == "the" {
			return ""
		}
		return DefaultNormalizer(term)
	}
	lx, err := newLexer(DefaultWordRegex, normalizer)
	if err != nil {
		t.Fatalf("newLexer error: %v", err)
	}

	got := lx.lex("the quick the brown")
	want := []token{{"quick", 2}, {"brown", 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNewLexerRejectsCapturingGroups(t *testing.T) {
	_, err := newLexer(regexp.MustCompile(`(\w+)`), nil)
	if err != ErrBadRegex {
		t.Errorf("got %v, want ErrBadRegex", err)
	}
}

func TestSurfaceTerms(t *testing.T) {
	lx, err := newLexer(DefaultWordRegex, DefaultNormalizer)
	if err != nil {
		t.Fatalf("newLexer error: %v", err)
	}
	got := lx.surfaceTerms("Quick Fox")
	want := []string{"Quick", "Fox"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDefaultNormalizer(t *testing.T) {
	tests := map[string]string{
		"Café":  "cafe",
		"ÜBER":  "uber",
		"plain": "plain",
	}
	for in, want := range tests {
		if got := DefaultNormalizer(in); got != want {
			t.Errorf("DefaultNormalizer(%q) = %q, want %q", in, got, want)
		}
	}
}
