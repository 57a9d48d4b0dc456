package translate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"

	"github.com/zenpl/GPTrans/core/model"
	"github.com/zenpl/GPTrans/engine/glossary"
)

// MockBackend is a deterministic stand-in translation backend for testing
// and development: it knows a handful of German and Swedish phrases and
// applies crude word-substitution rules for anything else, exactly the
// contract a real backend must also satisfy (non-empty out for non-empty
// in, glossary applied, length policy honored).
type MockBackend struct {
	phrases   map[string]map[string]string
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewMockBackend builds a MockBackend with its built-in phrase tables.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		phrases: map[string]map[string]string{
			"de": {
				"Die Entwicklung der modernen Typografie": "现代字体设计的发展",
				"Die Geschichte der Typografie":           "字体排印史",
				"Johannes Gutenberg":                      "约翰内斯·古腾堡",
				"beweglichen Lettern":                      "活字印刷",
				"Renaissance":                              "文艺复兴",
				"humanistische Minuskel":                   "人文主义小写字母",
				"Gutenberg-Bible":                           "古腾堡圣经",
				"Mainz":                                     "美因茨",
			},
			"sv": {
				"Typografins utveckling": "字体设计的发展",
				"Modern design":          "现代设计",
				"Tryckkonst":             "印刷艺术",
			},
		},
		tokenizer: sentences.NewSentenceTokenizer(nil),
	}
}

var germanWords = map[string]string{
	"der": "这个", "die": "这个", "das": "这个",
	"und": "和", "in": "在", "mit": "用", "von": "来自",
	"zu": "到", "ist": "是", "wird": "被", "wurde": "被", "sich": "",
}

var swedishWords = map[string]string{
	"en": "一个", "ett": "一个", "och": "和", "i": "在",
	"av": "的", "för": "为了", "som": "如", "är": "是",
}

// Translate implements Backend.
func (m *MockBackend) Translate(ctx context.Context, text, sourceLang, targetLang string, g model.Glossary, lengthPolicy model.LengthPolicy) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	translated := glossary.Apply(text, g)

	// A glossary term overrides the built-in phrase for the same source,
	// so the phrase table never rewrites the glossary's target.
	overridden := make(map[string]bool, len(g))
	for _, term := range g {
		overridden[strings.ToLower(term.Source)] = true
	}
	if table, ok := m.phrases[sourceLang]; ok {
		for src, tgt := range table {
			if overridden[strings.ToLower(src)] {
				continue
			}
			translated = replaceCaseFold(translated, src, tgt)
		}
	}

	switch sourceLang {
	case "de":
		translated = m.mockWordSub(translated, germanWords, "德语")
	case "sv":
		translated = m.mockWordSub(translated, swedishWords, "瑞典语")
	}

	if lengthPolicy == model.LengthConcise {
		translated = m.makeConcise(translated, 0.9)
	}
	return translated, nil
}

func replaceCaseFold(text, src, tgt string) string {
	if src == "" {
		return text
	}
	lowerText := strings.ToLower(text)
	lowerSrc := strings.ToLower(src)
	if !strings.Contains(lowerText, lowerSrc) {
		return text
	}
	var b strings.Builder
	pos := 0
	for {
		i := strings.Index(lowerText[pos:], lowerSrc)
		if i < 0 {
			b.WriteString(text[pos:])
			break
		}
		b.WriteString(text[pos : pos+i])
		b.WriteString(tgt)
		pos += i + len(src)
	}
	return b.String()
}

func cjkRuneCount(s string) int {
	n := 0
	for _, r := range s {
		if r > 127 {
			n++
		}
	}
	return n
}

func (m *MockBackend) mockWordSub(text string, words map[string]string, langLabel string) string {
	result := text
	for src, tgt := range words {
		result = replaceWholeWordFold(result, src, tgt)
	}
	result = strings.Join(strings.Fields(result), "")

	if result == text || cjkRuneCount(result) < 3 {
		preview := text
		if len(preview) > 20 {
			preview = preview[:20]
		}
		result = fmt.Sprintf("这是一段从%s翻译过来的文本：%s...", langLabel, preview)
	}
	return result
}

func replaceWholeWordFold(text, word, replacement string) string {
	pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
	re := regexp.MustCompile(pattern)
	return re.ReplaceAllString(text, replacement)
}

// conciseFillers are the filler phrases stripped first when shortening,
// matching the reference implementation's ordered removal list.
var conciseFillers = []string{
	"，这个", "的这个", "，它", "，该", "，其", "所谓的", "也就是说", "换句话说",
}

func (m *MockBackend) makeConcise(text string, targetRatio float64) string {
	if len([]rune(text)) <= 10 {
		return text
	}
	targetLen := int(float64(len([]rune(text))) * targetRatio)

	result := text
	for _, filler := range conciseFillers {
		if len([]rune(result)) <= targetLen {
			break
		}
		result = strings.ReplaceAll(result, filler, "")
	}

	if len([]rune(result)) > targetLen {
		if strings.Contains(result, "。") {
			sentencesList := strings.Split(result, "。")
			for joinedLen(sentencesList) > targetLen && len(sentencesList) > 1 {
				sentencesList = sentencesList[:len(sentencesList)-1]
			}
			result = strings.Join(sentencesList, "。")
			if result != "" && !strings.HasSuffix(result, "。") {
				result += "。"
			}
		} else {
			// Latin-script content with no CJK sentence terminator: fall
			// back to the (untrained) Punkt-style tokenizer and drop
			// trailing sentences until we're under budget, always keeping
			// the first sentence.
			result = m.truncateLatinSentences(result, targetLen)
		}
	}

	if result == "" {
		return text
	}
	return result
}

func (m *MockBackend) truncateLatinSentences(text string, targetLen int) string {
	sents := m.tokenizer.Tokenize(text)
	if len(sents) <= 1 {
		return text
	}
	kept := make([]string, 0, len(sents))
	length := 0
	for _, s := range sents {
		n := len([]rune(s.Text))
		if length+n > targetLen && len(kept) > 0 {
			break
		}
		kept = append(kept, s.Text)
		length += n
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

func joinedLen(parts []string) int {
	n := 0
	for i, p := range parts {
		if i > 0 {
			n++ // the "。" separator
		}
		n += len([]rune(p))
	}
	return n
}
