/*
Package glossary implements the glossary applier: prioritized, optionally
case-sensitive substring substitution over an ordered list of terms.
*/
package glossary

import (
	"strings"

	"github.com/derekparker/trie"

	"github.com/zenpl/GPTrans/core/model"
)

// Index is a glossary prepared for repeated application. Construction
// indexes term sources in a trie so duplicate-source terms (a later term
// repeating an earlier term's source) can be detected once up front
// instead of re-scanning the glossary on every Apply call.
type Index struct {
	terms []model.GlossaryTerm
	seen  *trie.Trie
}

// NewIndex builds an Index over g, preserving priority order and dropping
// any term whose source repeats an earlier term's (case-folded unless
// CaseSensitive) source — the first insertion at a given source wins, so
// Apply never scans a duplicate-source term at all.
func NewIndex(g model.Glossary) *Index {
	idx := &Index{seen: trie.New()}
	for _, term := range g {
		key := term.Source
		if !term.CaseSensitive {
			key = strings.ToLower(key)
		}
		if _, ok := idx.seen.Find(key); ok {
			continue // duplicate source at lower priority; first insertion wins
		}
		idx.seen.Add(key, term.Target)
		idx.terms = append(idx.terms, term)
	}
	return idx
}

// Apply substitutes every glossary term's source with its target in
// text, earlier-listed terms taking priority: once a term applies, later
// terms scan the already-substituted text. Terms are not re-applied
// across their own output.
func Apply(text string, g model.Glossary) string {
	return NewIndex(g).Apply(text)
}

// Apply runs idx's terms, in priority order, against text.
func (idx *Index) Apply(text string) string {
	result := text
	for _, term := range idx.terms {
		if term.Source == "" {
			continue
		}
		if term.CaseSensitive {
			result = strings.ReplaceAll(result, term.Source, term.Target)
			continue
		}
		result = replaceCaseInsensitive(result, term.Source, term.Target)
	}
	return result
}

// replaceCaseInsensitive replaces every case-insensitive occurrence of
// src in s with target, leaving target's own case untouched.
func replaceCaseInsensitive(s, src, target string) string {
	if src == "" {
		return s
	}
	lowerS := strings.ToLower(s)
	lowerSrc := strings.ToLower(src)
	var b strings.Builder
	pos := 0
	for {
		idx := strings.Index(lowerS[pos:], lowerSrc)
		if idx < 0 {
			b.WriteString(s[pos:])
			break
		}
		start := pos + idx
		b.WriteString(s[pos:start])
		b.WriteString(target)
		pos = start + len(src)
	}
	return b.String()
}
