/*
Package textdex provides an embedded full-text search index for Go.

textdex indexes documents into three small keyed stores — a dictionary of
terms, a per-term list of documents, and a per-(document,term) list of
token positions — and answers boolean and phrase queries against them with
IDF-style relevance scoring and highlighted excerpts.

# Quick Start

Open a write-mode index, add documents, and search:

	package main

	import (
	    "fmt"
	    "log"

	    "github.com/dhausen/textdex"
	)

	func main() {
	    opts := textdex.DefaultOptions("./data")
	    opts.WriteMode = true

	    index, err := textdex.Open(opts)
	    if err != nil {
	        log.Fatal(err)
	    }
	    defer index.Close()

	    index.Add(1, "the quick brown fox jumps over the lazy dog")
	    index.Add(2, "pack my box with five dozen liquor jugs")

	    result, err := index.Search(`"quick fox"`, false)
	    if err != nil {
	        log.Fatal(err)
	    }
	    for docID, score := range result.Scores {
	        fmt.Printf("doc %d: score %d\n", docID, score)
	    }
	}

# Query Syntax

The default parser supports bare terms (optional unless implicitPlus is
set), "+term" / "-term" sign prefixes, "field:term" qualifiers, "quoted
phrases", and parenthesized groups:

	index.Search(`+fox -lazy "brown fox"`, false)
	index.Search(`title:fox -(cat dog)`, true)

# Stopwords

Mark terms as stopwords before any document is added — marking a term that
already has postings is an error, since the postings would otherwise
dangle:

	opts.Stopwords = []string{"the", "a", "an"}

# Excerpts

Search returns a compiled regex alongside the scores; pass it and the
original document text to Excerpts to get highlighted snippets:

	excerpts := index.Excerpts(documentText, result.Regex)

# Persistence

Each Index owns three files under its directory (ixw, ixd, ixp), one per
store. Only one writer handle may be open on a directory at a time; readers
may coexist freely. Close flushes pending writes and releases the writer
lock on every exit path.

# Concurrency

An Index handle is single-threaded cooperative: callers serialize their own
calls to Add, Remove, Search, and Dump. Multiple reader handles may be open
concurrently against the same directory; a second writer handle fails fast
with ErrAlreadyOpenForWrite.
*/
package textdex
