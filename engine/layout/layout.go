/*
Package layout implements the page layout driver: it lays out one page's
blocks in reading order, invokes the fit loop for the block
types that need it, and falls back to fixed per-type defaults for the
rest.
*/
package layout

import (
	"context"
	"fmt"
	"sort"

	"github.com/flopp/go-findfont"
	"go.uber.org/multierr"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/zenpl/GPTrans/core/dimen"
	"github.com/zenpl/GPTrans/core/model"
	"github.com/zenpl/GPTrans/engine/fitloop"
	"github.com/zenpl/GPTrans/engine/typography"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

const serifFamily = "Noto Serif CJK SC"
const sansFamily = "Noto Sans CJK SC"

// typeDefault is one row of the per-block-type style table applied to
// block types the fit loop never touches.
type typeDefault struct {
	fontSizePx float64
	lineHeight float64
	italic     bool
	bold       bool
	textAlign  string
	textIndent string
	fontFamily string
}

var defaults = map[model.BlockType]typeDefault{
	model.Heading:    {fontSizePx: 20, lineHeight: 1.3, bold: true, textAlign: "center", fontFamily: sansFamily},
	model.Paragraph:  {fontSizePx: 16, lineHeight: 1.6, textIndent: "2em", fontFamily: serifFamily},
	model.Caption:    {fontSizePx: 14, lineHeight: 1.4, italic: true, textAlign: "center", fontFamily: serifFamily},
	model.Footnote:   {fontSizePx: 12, lineHeight: 1.3, textIndent: "1em", fontFamily: serifFamily},
	model.Figure:     {textAlign: "center", fontFamily: serifFamily},
	model.PageNumber: {fontSizePx: 12, textAlign: "center", fontFamily: serifFamily},
}

// resolveFontFamily best-effort locates a system font file for family;
// layout never fails when the lookup comes up empty, it simply keeps the
// logical family name for the downstream renderer to resolve itself.
func resolveFontFamily(family string) string {
	if _, err := findfont.Find(family); err != nil {
		T().Debugf("font family %q not found on this system, deferring to renderer", family)
	}
	return family
}

func defaultStyle(t model.BlockType) model.StyleProperties {
	d, ok := defaults[t]
	if !ok {
		d = typeDefault{fontFamily: serifFamily}
	}
	style := model.StyleProperties{
		FontFamily: resolveFontFamily(d.fontFamily),
		TextAlign:  d.textAlign,
		TextIndent: d.textIndent,
		LineHeight: d.lineHeight,
	}
	if d.fontSizePx > 0 {
		style.FontSize = dimen.FromPx(d.fontSizePx)
	}
	if d.italic {
		style.FontStyle = "italic"
	}
	if d.bold {
		style.FontWeight = model.FontWeight("bold")
	}
	return model.DefaultDeclarative(style)
}

// Layout lays out one page's blocks, invoking the fit loop only for
// fitted block types. A per-block failure produces a fallback frame
// (original box, default style) and is folded into the returned error via
// multierr; it never aborts the rest of the page.
func Layout(ctx context.Context, page model.Page, cfg model.FitLoopConfig, shorten fitloop.Shortener) (model.TypesetPage, error) {
	blocks := make([]model.Block, len(page.Blocks))
	copy(blocks, page.Blocks)
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Order < blocks[j].Order })

	out := model.TypesetPage{
		PageID: page.ID,
		Width:  float64(page.Width),
		Height: float64(page.Height),
	}

	var errs error
	for _, b := range blocks {
		if !b.HasTranslation {
			continue
		}
		frame, err := layoutBlock(ctx, b, cfg, shorten)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("block %s: %w", b.ID, err))
			frame = fallbackFrame(b)
		}
		out.Frames = append(out.Frames, frame)
	}
	return out, errs
}

func layoutBlock(ctx context.Context, b model.Block, cfg model.FitLoopConfig, shorten fitloop.Shortener) (model.TypesetFrame, error) {
	if err := b.BBox.Validate(); err != nil {
		return model.TypesetFrame{}, err
	}
	processed := typography.ApplyLineBreakRules(b.TextTranslated)

	if !b.Type.Fitted() {
		return model.TypesetFrame{
			BlockID: b.ID,
			BBox:    b.BBox,
			Content: processed,
			Style:   defaultStyle(b.Type),
		}, nil
	}

	frame := fitloop.Frame{WidthPx: b.BBox.W, HeightPx: b.BBox.H}
	result, err := fitloop.Run(ctx, processed, frame, cfg, shorten)
	if err != nil {
		return model.TypesetFrame{}, err
	}
	style := result.Style
	style.FontFamily = resolveFontFamily(serifFamily)
	style.FontSize = dimen.FromPx(16)
	return model.TypesetFrame{
		BlockID: b.ID,
		BBox:    b.BBox,
		Content: result.FinalContent,
		Style:   model.DefaultDeclarative(style),
	}, nil
}

func fallbackFrame(b model.Block) model.TypesetFrame {
	return model.TypesetFrame{
		BlockID: b.ID,
		BBox:    b.BBox,
		Content: typography.ApplyLineBreakRules(b.TextTranslated),
		Style:   defaultStyle(b.Type),
	}
}
