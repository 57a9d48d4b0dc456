package html

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenpl/GPTrans/core/model"
)

func TestRenderEmitsFrameAsAbsolutelyPositionedDiv(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	page := model.TypesetPage{
		PageID: "p1", Width: 800, Height: 1200,
		Frames: []model.TypesetFrame{
			{
				BlockID: "b1",
				BBox:    model.BoundingBox{X: 10, Y: 20, W: 300, H: 100},
				Content: "中文内容",
				Style:   model.DefaultDeclarative(model.StyleProperties{LineHeight: 1.5}),
			},
		},
	}
	var buf strings.Builder
	require.NoError(t, Render(&buf, page))
	out := buf.String()

	assert.Contains(t, out, `id="b1"`)
	assert.Contains(t, out, "position:absolute")
	assert.Contains(t, out, "left:10px")
	assert.Contains(t, out, "中文内容")
}

func TestRenderEscapesContent(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	page := model.TypesetPage{
		PageID: "p1", Width: 100, Height: 100,
		Frames: []model.TypesetFrame{
			{BlockID: "b1", Content: "<script>alert(1)</script>"},
		},
	}
	var buf strings.Builder
	require.NoError(t, Render(&buf, page))
	assert.NotContains(t, buf.String(), "<script>")
}
