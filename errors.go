package textdex

import "errors"

// Sentinel errors for every error kind named in this package's design.
// Callers should classify failures with errors.Is rather than matching on
// error strings.
var (
	// ErrStoreMissing is returned when a store is opened read-only but its
	// backing file does not exist.
	ErrStoreMissing = errors.New("textdex: store missing")

	// ErrStoreOpenFailed is returned when a store's backing file exists but
	// cannot be opened or read.
	ErrStoreOpenFailed = errors.New("textdex: store open failed")

	// ErrAlreadyOpenForWrite is returned when a second writer attempts to
	// open an index directory that is already held by a writer.
	ErrAlreadyOpenForWrite = errors.New("textdex: index directory already open for write")

	// ErrDocIDTooLarge is returned when a docId does not fit in 32 bits.
	ErrDocIDTooLarge = errors.New("textdex: docId too large")

	// ErrDupDoc is returned by Add when docId already has postings for one
	// of the words in the new text; callers must Remove before re-adding.
	// A re-add whose text shares no word with the indexed text is not
	// detected.
	ErrDupDoc = errors.New("textdex: document already indexed")

	// ErrStopwordFileOpenFailed is returned when the configured stopword
	// file cannot be opened.
	ErrStopwordFileOpenFailed = errors.New("textdex: stopword file open failed")

	// ErrStopwordsInReadMode is returned when stopwords are configured on a
	// read-only index.
	ErrStopwordsInReadMode = errors.New("textdex: stopwords only accepted in write mode")

	// ErrStopwordAfterWrite is returned by MarkStopword when the term
	// already has a positive wordId, which would leave dangling postings.
	ErrStopwordAfterWrite = errors.New("textdex: term already assigned a wordId")

	// ErrCorruptValue is returned by the codec when a stored value cannot
	// be decoded.
	ErrCorruptValue = errors.New("textdex: corrupt store value")

	// ErrBadRegex is returned when the configured word regex compiles but
	// contains capturing groups.
	ErrBadRegex = errors.New("textdex: word regex must not contain capturing groups")
)
