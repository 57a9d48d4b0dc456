/*
Package markup implements the markup shield: it extracts inline markup
and placeholder chunks from text before a translation backend sees it,
then restores them afterward so a translator can never corrupt a tag or
drop a placeholder.
*/
package markup

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/zenpl/GPTrans/engine/typography"
)

const placeholderFormat = "__PLACEHOLDER_%d__"

// Shield holds the token → original-chunk mapping produced by Strip, in
// first-occurrence order.
type Shield struct {
	tokens *linkedhashmap.Map
}

// Strip replaces every markup or placeholder chunk in text with a
// synthetic __PLACEHOLDER_k__ token, k being the zero-based index of
// first occurrence, and returns the stripped text alongside the shield
// needed to restore it.
func Strip(text string) (stripped string, shield *Shield) {
	matches := typography.MarkupPattern.FindAllStringIndex(text, -1)
	shield = &Shield{tokens: linkedhashmap.New()}

	var b strings.Builder
	pos := 0
	for k, m := range matches {
		b.WriteString(text[pos:m[0]])
		token := fmt.Sprintf(placeholderFormat, k)
		shield.tokens.Put(token, text[m[0]:m[1]])
		b.WriteString(token)
		pos = m[1]
	}
	b.WriteString(text[pos:])
	return b.String(), shield
}

// Restore replaces every recorded token in text with its original chunk,
// all occurrences, and returns the result. A token the backend dropped or
// translated away simply does not round-trip; this is documented backend
// contract, not an error the shield can detect.
func (s *Shield) Restore(text string) string {
	restored := text
	s.tokens.Each(func(key interface{}, value interface{}) {
		restored = strings.ReplaceAll(restored, key.(string), value.(string))
	})
	return restored
}
