/*
Package typography implements the CJK typography rule engine:
code point classification, kinsoku-style line-break spacer insertion, and
a cheap width estimator used by the measurement oracle.

Rather than implement the full Unicode line-breaking algorithm, enforcement
is pushed into the downstream renderer by inserting non-breaking spacers
(U+00A0) only around forbidden positions — a lossy but cheap approximation
that faithfully expresses the two most visible kinsoku rules.
*/
package typography

import (
	"regexp"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Class is the derived (never stored) classification of a code point.
type Class int

const (
	Other Class = iota
	CJKIdeograph
	CJKKana
	ASCII
	NoLineStart
	NoLineEnd
	Whitespace
)

// NoLineStartChars lists code points that must never begin a line.
const NoLineStartChars = "!%),.:;?]}¢°·ˇˉ―‖'\"…‰′″›℃∶、。〃〉》」』】〕〗〞︰︱︳﹐﹑﹒﹕﹖﹗﹚﹜﹞！），．：；？｜｝︶"

// NoLineEndChars lists code points that must never end a line.
const NoLineEndChars = "([{·'\"〈《「『【〔〖〝﹙﹛﹝（｛｟｠￠￡￥"

var noLineStartSet = runeSet(NoLineStartChars)
var noLineEndSet = runeSet(NoLineEndChars)

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// cjkRanges enumerates the code point ranges treated as CJK ideograph or kana.
var cjkRanges = [][2]rune{
	{0x4E00, 0x9FFF},
	{0x3400, 0x4DBF},
	{0x20000, 0x2A6DF},
	{0x2A700, 0x2B73F},
	{0x2B740, 0x2B81F},
	{0x2B820, 0x2CEAF},
	{0x3040, 0x309F},
	{0x30A0, 0x30FF},
}

// kanaRanges is the subset of cjkRanges that counts as "kana" rather than
// "ideograph" for classification purposes (Class distinguishes them; width
// estimation treats both the same).
var kanaRanges = [][2]rune{
	{0x3040, 0x309F},
	{0x30A0, 0x30FF},
}

// IsCJK reports whether cp lies in any of the CJK ideograph or kana ranges.
func IsCJK(cp rune) bool {
	return inRanges(cp, cjkRanges)
}

func inRanges(cp rune, ranges [][2]rune) bool {
	for _, r := range ranges {
		if cp >= r[0] && cp <= r[1] {
			return true
		}
	}
	return false
}

// Classify derives the code point class of cp.
func Classify(cp rune) Class {
	if _, ok := noLineStartSet[cp]; ok {
		return NoLineStart
	}
	if _, ok := noLineEndSet[cp]; ok {
		return NoLineEnd
	}
	switch {
	case inRanges(cp, kanaRanges):
		return CJKKana
	case IsCJK(cp):
		return CJKIdeograph
	case cp == ' ' || cp == '\t' || cp == '\n' || cp == '\r' || cp == '\v' || cp == '\f':
		return Whitespace
	case cp < 0x80:
		return ASCII
	}
	return Other
}

// EstimateWidth sums, over characters, a class-dependent em fraction of
// fontSizePx, walking grapheme clusters so a combining sequence prices as
// one printed unit.
func EstimateWidth(text string, fontSizePx float64, cjkRatio float64) float64 {
	if cjkRatio == 0 {
		cjkRatio = 1.0
	}
	gs := grapheme.StringFromString(text)
	var width float64
	n := gs.Len()
	for i := 0; i < n; i++ {
		cluster := gs.Nth(i)
		if cluster == "" {
			continue
		}
		cp := []rune(cluster)[0]
		switch {
		case IsCJK(cp):
			width += fontSizePx * cjkRatio
		case cp < 0x80:
			width += fontSizePx * 0.55
		default:
			width += fontSizePx * 0.6
		}
	}
	return width
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ApplyLineBreakRules collapses whitespace runs to a single space and then
// inserts a non-breaking spacer (U+00A0) around forbidden leading/trailing
// punctuation, unless a U+00A0 already stands on that side. Idempotent:
// re-applying to the output yields the same string, since the spacers of
// the first pass are already in place and U+00A0 belongs to neither
// NoLineStart nor NoLineEnd.
func ApplyLineBreakRules(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	collapsed := whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	var b strings.Builder
	b.Grow(len(collapsed) + 16)
	runes := []rune(collapsed)
	for i, r := range runes {
		if _, ok := noLineStartSet[r]; ok && (i == 0 || runes[i-1] != ' ') {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		if _, ok := noLineEndSet[r]; ok && (i == len(runes)-1 || runes[i+1] != ' ') {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// CleanForExport is the left inverse of ApplyLineBreakRules at the visible
// level: it turns inserted NBSPs back into ordinary spaces and collapses
// whitespace.
func CleanForExport(text string) string {
	replaced := strings.ReplaceAll(text, " ", " ")
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(replaced), " ")
}

// MarkupPattern matches <tag>…</tag>, <tag/>, and {IDENT} chunks — the
// union the markup shield extracts before handing text to a translation
// backend. Tag names are not required to match between open and close
// (deliberately permissive: the shield's correctness does not depend on
// well-formed nesting, only on round-tripping whatever chunk it matched).
var MarkupPattern = regexp.MustCompile(`(<[^>]+>.*?</[^>]+>|<[^/>]+/>|\{[^}]+\})`)

// SplitPreservingMarkup splits text on the union of `<tag>…</tag>`,
// `<tag/>`, and `{IDENT}` patterns, returning the ordered sequence of
// markup and plain-text chunks with blank segments dropped; used by the
// markup shield.
func SplitPreservingMarkup(text string) []string {
	idx := MarkupPattern.FindAllStringIndex(text, -1)
	if len(idx) == 0 {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}
	var chunks []string
	pos := 0
	for _, m := range idx {
		if m[0] > pos {
			if plain := text[pos:m[0]]; strings.TrimSpace(plain) != "" {
				chunks = append(chunks, plain)
			}
		}
		chunks = append(chunks, text[m[0]:m[1]])
		pos = m[1]
	}
	if pos < len(text) {
		if plain := text[pos:]; strings.TrimSpace(plain) != "" {
			chunks = append(chunks, plain)
		}
	}
	return chunks
}
