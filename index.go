package textdex

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// File names of the three stores under Options.Dir (spec §6).
const (
	wordsFile     = "ixw"
	docsFile      = "ixd"
	positionsFile = "ixp"
)

// Options configures an Index (spec §6's constructor configuration).
type Options struct {
	Dir       string
	WriteMode bool

	WordRegex  *regexp.Regexp
	Normalizer Normalizer

	// Stopwords is a list of surface terms to mark as stopwords on Open.
	// StopwordFile, if set, names a file whose contents are tokenized with
	// WordRegex and marked the same way. Both require write mode: setting
	// either on a read-only index makes Open fail with
	// ErrStopwordsInReadMode (spec §4.4, §6).
	Stopwords    []string
	StopwordFile string

	Fieldname string

	CtxtNumChars int
	MaxExcerpts  int
	PreMatch     string
	PostMatch    string

	// Parser drives Search's query parsing. NewDefaultQueryParser() is
	// used if nil.
	Parser QueryParser
}

// DefaultOptions returns the Options spec §6 names as defaults, rooted at
// dir in read-only mode.
func DefaultOptions(dir string) Options {
	return Options{
		Dir:          dir,
		WriteMode:    false,
		WordRegex:    DefaultWordRegex,
		Normalizer:   DefaultNormalizer,
		CtxtNumChars: 35,
		MaxExcerpts:  5,
		PreMatch:     "<b>",
		PostMatch:    "</b>",
	}
}

func parseWordRegex(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return DefaultWordRegex, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("textdex: %w", ErrBadRegex)
	}
	if re.NumSubexp() > 0 {
		return nil, ErrBadRegex
	}
	return re, nil
}

// SearchResult is what Search returns: the per-document scores, the
// surface terms that carried no index information, and the compiled regex
// Excerpts uses to find and highlight matches (spec §6, §4.11 expansion).
type SearchResult struct {
	Scores      map[uint32]int
	KilledWords []string
	Regex       *regexp.Regexp
}

// Stats reports the two reserved counters maintained across stores W and D
// (spec §3).
type Stats struct {
	NWords int32
	NDocs  int32
}

// Index is a handle on one on-disk index directory: three stores (W, D, P),
// a Lexer/Dictionary/Postings/Writer pipeline for indexing, and a
// Translator/Evaluator/Excerpter pipeline for querying. A handle binds its
// stores for its lifetime and must be Closed on every exit path (spec §5).
type Index struct {
	opts Options

	w, d, p *kvStore
	lock    *dirLock

	lx   *lexer
	dict *dictionary
	post *postings
	wr   *writer
	tr   *translator
}

// Open opens (or creates, in write mode) the three stores under
// opts.Dir, applies any configured stopwords, and returns a ready Index.
func Open(opts Options) (*Index, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.WordRegex == nil {
		opts.WordRegex = DefaultWordRegex
	}
	if opts.Normalizer == nil {
		opts.Normalizer = DefaultNormalizer
	}
	if opts.CtxtNumChars == 0 {
		opts.CtxtNumChars = 35
	}
	if opts.MaxExcerpts == 0 {
		opts.MaxExcerpts = 5
	}
	if opts.PreMatch == "" && opts.PostMatch == "" {
		opts.PreMatch, opts.PostMatch = "<b>", "</b>"
	}
	if opts.Parser == nil {
		opts.Parser = NewDefaultQueryParser()
	}

	var lock *dirLock
	if opts.WriteMode {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("textdex: %s: %w", opts.Dir, err)
		}
		l, err := acquireDirLock(opts.Dir)
		if err != nil {
			return nil, err
		}
		lock = l
	}

	w, err := openStore(filepath.Join(opts.Dir, wordsFile), opts.WriteMode)
	if err != nil {
		lock.release()
		return nil, err
	}
	d, err := openStore(filepath.Join(opts.Dir, docsFile), opts.WriteMode)
	if err != nil {
		lock.release()
		return nil, err
	}
	p, err := openStore(filepath.Join(opts.Dir, positionsFile), opts.WriteMode)
	if err != nil {
		lock.release()
		return nil, err
	}

	lx, err := newLexer(opts.WordRegex, opts.Normalizer)
	if err != nil {
		lock.release()
		return nil, err
	}

	dict := newDictionary(w, opts.WriteMode)
	post := newPostings(d, p)
	wr := newWriter(lx, dict, post, w, d, p)
	tr := newTranslator(lx, dict, opts.Fieldname)

	idx := &Index{opts: opts, w: w, d: d, p: p, lock: lock, lx: lx, dict: dict, post: post, wr: wr, tr: tr}

	if err := idx.applyStopwords(); err != nil {
		idx.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) applyStopwords() error {
	if len(idx.opts.Stopwords) == 0 && idx.opts.StopwordFile == "" {
		return nil
	}
	if !idx.opts.WriteMode {
		return ErrStopwordsInReadMode
	}

	for _, term := range idx.opts.Stopwords {
		if err := idx.dict.MarkStopword(idx.opts.Normalizer(term)); err != nil {
			return err
		}
	}

	if idx.opts.StopwordFile == "" {
		return nil
	}
	f, err := os.Open(idx.opts.StopwordFile)
	if err != nil {
		return fmt.Errorf("textdex: %s: %w", idx.opts.StopwordFile, ErrStopwordFileOpenFailed)
	}
	defer f.Close()

	var buf []byte
	r := bufio.NewReader(f)
	chunk := make([]byte, 4096)
	for {
		n, err := r.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err != nil {
			break
		}
	}
	for _, term := range idx.lx.surfaceTerms(string(buf)) {
		if err := idx.dict.MarkStopword(idx.opts.Normalizer(term)); err != nil {
			return err
		}
	}
	return nil
}

// Add indexes buf under docId (spec §4.6).
func (idx *Index) Add(docID uint64, buf string) error {
	return idx.wr.Add(docID, buf)
}

// Remove undoes a prior Add for docId, given the same buf that was
// originally indexed (spec §4.6).
func (idx *Index) Remove(docID uint64, buf string) error {
	return idx.wr.Remove(docID, buf)
}

// Search parses queryString, translates it to wordIds, and evaluates it
// against the postings (spec §6, §4.7, §4.8).
func (idx *Index) Search(queryString string, implicitPlus bool) (SearchResult, error) {
	tree, err := idx.opts.Parser.Parse(queryString, implicitPlus)
	if err != nil {
		return SearchResult{}, err
	}

	translated := idx.tr.translate(tree)
	scores := evaluate(translated.tree, idx.post)

	re, err := buildExcerptRegex(translated.wordsRegexes)
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{Scores: scores, KilledWords: translated.killedWords, Regex: re}, nil
}

// Excerpts extracts and highlights up to Options.MaxExcerpts fragments of
// buf around re's matches (spec §4.9).
func (idx *Index) Excerpts(buf string, re *regexp.Regexp) []string {
	cfg := excerptConfig{
		ctxtNumChars: idx.opts.CtxtNumChars,
		maxExcerpts:  idx.opts.MaxExcerpts,
		preMatch:     idx.opts.PreMatch,
		postMatch:    idx.opts.PostMatch,
	}
	return buildExcerpts(buf, re, cfg)
}

// Dump returns an ordered "term : docId docId ..." listing of store W's
// known terms, for debugging (spec §6).
func (idx *Index) Dump() ([]string, error) {
	var lines []string
	err := idx.w.iterate(func(term string, value []byte) error {
		if term == nwordsKey {
			return nil
		}
		id := decodeInt32(value)
		if id <= 0 {
			return nil // stopword entries have no postings to list
		}
		occ, err := idx.post.DocOccurrences(uint32(id))
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%s :", term)
		for _, docID := range sortedKeys(occ) {
			line += fmt.Sprintf(" %d", docID)
		}
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

func sortedKeys(m map[uint32]int) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Stats reports the current word and document counts.
func (idx *Index) Stats() Stats {
	return Stats{NWords: idx.dict.Nwords(), NDocs: idx.post.NDocs()}
}

// Flush persists all three stores' write caches to disk.
func (idx *Index) Flush() error {
	if err := idx.w.flush(); err != nil {
		return err
	}
	if err := idx.d.flush(); err != nil {
		return err
	}
	return idx.p.flush()
}

// Close flushes pending writes and releases the writer lock, if held. Safe
// to call on an already-closed Index.
func (idx *Index) Close() error {
	flushErr := idx.Flush()
	lockErr := idx.lock.release()
	if flushErr != nil {
		return flushErr
	}
	return lockErr
}
