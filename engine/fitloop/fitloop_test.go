package fitloop

import (
	"context"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenpl/GPTrans/core/model"
)

func TestRunShortFitsTrivially(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cfg := model.DefaultFitLoopConfig()
	frame := Frame{WidthPx: 400, HeightPx: 200}
	res, err := Run(context.Background(), "中文测试", frame, cfg, nil)
	require.NoError(t, err)
	assert.True(t, res.Fits)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, cfg.InitialLineHeight, res.Style.LineHeight)
	assert.Equal(t, cfg.InitialLetterSpacing, res.Style.LetterSpacing)
}

func TestRunCompressionViaLetterSpacing(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cfg := model.DefaultFitLoopConfig()
	frame := Frame{WidthPx: 200, HeightPx: 100}
	content := "这是一段较长的中文文本用以测试压缩"
	res, err := Run(context.Background(), content, frame, cfg, nil)
	require.NoError(t, err)
	assert.True(t, res.Fits)
	assert.Equal(t, 1, res.Iterations)
}

func TestRunFullLadderThenShortening(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cfg := model.DefaultFitLoopConfig()
	frame := Frame{WidthPx: 100, HeightPx: 40}
	content := strings.Repeat("这是一段很长的中文文本", 5)

	shorten := func(ctx context.Context, text string) (string, error) {
		return text[:len(text)/3], nil
	}
	res, err := Run(context.Background(), content, frame, cfg, shorten)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Iterations, 4)
	assert.Less(t, len(res.FinalContent), len(content))
	assert.Equal(t, model.StretchCondensed, res.Style.FontStretch)
	assert.Equal(t, model.Weight300, res.Style.FontWeight)
}

func TestRunRespectsContextCancellation(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := model.DefaultFitLoopConfig()
	_, err := Run(ctx, "中文", Frame{WidthPx: 400, HeightPx: 200}, cfg, nil)
	assert.Error(t, err)
}

func TestRunStyleWithinConfiguredBounds(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cfg := model.DefaultFitLoopConfig()
	content := strings.Repeat("这是一段很长的中文文本", 5)
	res, err := Run(context.Background(), content, Frame{WidthPx: 100, HeightPx: 40}, cfg, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Style.LineHeight, cfg.MinLineHeight)
	assert.LessOrEqual(t, res.Style.LineHeight, cfg.MaxLineHeight)
	assert.GreaterOrEqual(t, res.Style.LetterSpacing, cfg.MinLetterSpacing)
	assert.LessOrEqual(t, res.Style.LetterSpacing, cfg.MaxLetterSpacing)
}

func TestRunBoundedIterations(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cfg := model.DefaultFitLoopConfig()
	content := strings.Repeat("这是一段很长的中文文本", 20)
	res, err := Run(context.Background(), content, Frame{WidthPx: 50, HeightPx: 20}, cfg, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Iterations, cfg.MaxIterations)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cfg := model.DefaultFitLoopConfig()
	cfg.MinLineHeight = 2.0 // > MaxLineHeight, invalid
	_, err := Run(context.Background(), "中文", Frame{WidthPx: 100, HeightPx: 40}, cfg, nil)
	assert.Error(t, err)
}
