package measure

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"

	"github.com/zenpl/GPTrans/core/dimen"
	"github.com/zenpl/GPTrans/core/model"
)

func baseStyle() model.StyleProperties {
	return model.StyleProperties{
		LineHeight:    1.5,
		LetterSpacing: 0,
		FontSize:      16 * dimen.PX,
	}
}

func TestMeasureNonNegativeFinite(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	w, h := Measure("中文测试", baseStyle())
	assert.GreaterOrEqual(t, w, 0.0)
	assert.GreaterOrEqual(t, h, 0.0)
}

func TestMeasureMonotonicInLength(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	style := baseStyle()
	shortW, shortH := Measure("中文", style)
	longW, longH := Measure("中文测试更多内容", style)
	assert.LessOrEqual(t, shortW, longW)
	assert.LessOrEqual(t, shortH, longH)
}

func TestMeasureMonotonicInLineHeight(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	low := baseStyle()
	low.LineHeight = 1.2
	high := baseStyle()
	high.LineHeight = 1.8
	_, hLow := Measure("中文测试", low)
	_, hHigh := Measure("中文测试", high)
	assert.Less(t, hLow, hHigh)
}

func TestMeasureMonotonicInLetterSpacing(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	low := baseStyle()
	low.LetterSpacing = -0.01
	high := baseStyle()
	high.LetterSpacing = 0.01
	wLow, _ := Measure("中文测试", low)
	wHigh, _ := Measure("中文测试", high)
	assert.Less(t, wLow, wHigh)
}

func TestMeasureCondensedNarrower(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	normal := baseStyle()
	condensed := baseStyle()
	condensed.FontStretch = model.StretchCondensed
	wNormal, _ := Measure("中文测试", normal)
	wCondensed, _ := Measure("中文测试", condensed)
	assert.Less(t, wCondensed, wNormal)
}

func TestMeasureMultilineHeight(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, h1 := Measure("一行", baseStyle())
	_, h2 := Measure("一行\n二行", baseStyle())
	assert.InDelta(t, h1*2, h2, 0.001)
}
