/*
Package measure implements the reference measurement oracle: a cheap,
monotonic estimator of the rendered size of styled text, used by the fit
loop in place of a ground-truth typesetter.
*/
package measure

import (
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/zenpl/GPTrans/core/dimen"
	"github.com/zenpl/GPTrans/core/model"
	"github.com/zenpl/GPTrans/engine/typography"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// condensedWidthFactor is applied when font-stretch=condensed.
const condensedWidthFactor = 0.85

// Measure computes (width_px, height_px) for content set in style. Both
// results are non-negative and finite. Measure is pure in its arguments,
// and monotonic in content length, line-height, letter-spacing and
// font-stretch, matching the fit loop's termination argument.
func Measure(content string, style model.StyleProperties) (widthPx, heightPx float64) {
	fontSizePx := resolveFontSize(style)
	lines := strings.Split(content, "\n")

	nonEmpty := 0
	for _, line := range lines {
		w := lineWidth(line, fontSizePx, style)
		if w > widthPx {
			widthPx = w
		}
		if strings.TrimSpace(line) != "" {
			nonEmpty++
		}
	}
	lineHeight := style.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1.0
	}
	heightPx = float64(nonEmpty) * fontSizePx * lineHeight
	return widthPx, heightPx
}

func lineWidth(line string, fontSizePx float64, style model.StyleProperties) float64 {
	w := typography.EstimateWidth(line, fontSizePx, 1.0)
	w *= 1 + style.LetterSpacing
	if style.FontStretch == model.StretchCondensed {
		w *= condensedWidthFactor
	}
	return w
}

// resolveFontSize projects style.FontSize to pixels, defaulting to the
// 16px em base when unset. Units of pt are already folded into dimen.DU by
// dimen.ParseDimen; this just projects to pixels.
func resolveFontSize(style model.StyleProperties) float64 {
	if style.FontSize == 0 {
		return dimen.EMBase.Px()
	}
	return style.FontSize.Px()
}
