package translate

import (
	"context"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenpl/GPTrans/core/model"
)

func TestTranslateParagraphEmptyUnchanged(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	backend := NewMockBackend()
	got, err := TranslateParagraph(context.Background(), backend, "   ", "de", "zh-CN", nil, model.LengthNormal)
	require.NoError(t, err)
	assert.Equal(t, "   ", got)
}

func TestTranslateParagraphPreservesMarkup(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	backend := NewMockBackend()
	input := "Die {FN:1} moderne <i>Typografie</i> ist wichtig"
	got, err := TranslateParagraph(context.Background(), backend, input, "de", "zh-CN", nil, model.LengthNormal)
	require.NoError(t, err)
	assert.Contains(t, got, "{FN:1}")
	assert.Contains(t, got, "<i>Typografie</i>")
}

func TestTranslateParagraphAppliesGlossaryFirst(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	backend := NewMockBackend()
	g := model.Glossary{{Source: "Mainz", Target: "custom-mainz", CaseSensitive: true}}
	got, err := TranslateParagraph(context.Background(), backend, "Mainz liegt am Rhein", "de", "zh-CN", g, model.LengthNormal)
	require.NoError(t, err)
	assert.Contains(t, got, "custom-mainz")
}

func TestShortenerProducesConciseOutput(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	backend := NewMockBackend()
	shorten := Shortener(backend, "de", "zh-CN", nil)
	long := "这是一段很长的中文文本，这个结果应当被压缩。所谓的冗余信息，也就是说多余的部分，换句话说需要删减。这句也要被考虑进去。"
	out, err := shorten(context.Background(), long)
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(out)), len([]rune(long)))
}
