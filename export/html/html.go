/*
Package html renders a TypesetPage to an HTML document, emitting each
frame as an absolutely positioned box carrying its style properties
verbatim, per the layout output's external contract.
*/
package html

import (
	"html/template"
	"io"
	"strconv"

	"github.com/zenpl/GPTrans/core/model"
)

// frameView adapts a model.TypesetFrame for the template: CSS is
// precomputed here so the template itself stays a dumb renderer.
type frameView struct {
	BlockID string
	CSS     template.CSS
	Content string
}

type pageView struct {
	PageID string
	Width  float64
	Height float64
	Frames []frameView
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.PageID}}</title></head>
<body style="position:relative;width:{{.Width}}px;height:{{.Height}}px;margin:0;">
{{range .Frames}}<div id="{{.BlockID}}" style="{{.CSS}}">{{.Content}}</div>
{{end}}</body>
</html>
`))

// Render writes page as a standalone HTML document to w.
func Render(w io.Writer, page model.TypesetPage) error {
	pv := pageView{PageID: page.PageID, Width: page.Width, Height: page.Height}
	for _, frame := range page.Frames {
		pv.Frames = append(pv.Frames, frameView{
			BlockID: frame.BlockID,
			CSS:     template.CSS(frameCSS(frame)),
			Content: frame.Content,
		})
	}
	return pageTemplate.Execute(w, pv)
}

func frameCSS(frame model.TypesetFrame) string {
	css := "position:absolute;"
	css += dim("left", frame.BBox.X)
	css += dim("top", frame.BBox.Y)
	css += dim("width", frame.BBox.W)
	css += dim("height", frame.BBox.H)
	for k, v := range frame.Style.CSS() {
		css += k + ":" + v + ";"
	}
	return css
}

func dim(prop string, px float64) string {
	return prop + ":" + strconv.FormatFloat(px, 'g', -1, 64) + "px;"
}
