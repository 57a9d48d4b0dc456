/*
Package fitloop implements the convergent parameter search that fits
translated text into a fixed rectangle by walking a compression ladder
(letter-spacing, line-height, font-stretch, font-weight), an expansion
ladder (line-height, letter-spacing), and — as a last resort — requesting
a shorter retranslation.
*/
package fitloop

import (
	"context"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/zenpl/GPTrans/core/model"
	"github.com/zenpl/GPTrans/engine/measure"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// Shortener returns a semantically equivalent, strictly shorter rendering
// of text, or an error if the backend it consults fails.
type Shortener func(ctx context.Context, text string) (string, error)

// Frame is the target rectangle a fit run must land content inside.
type Frame struct {
	WidthPx  float64
	HeightPx float64
}

const fitOverflowCeiling = 1.1 // acceptance rule applied after the loop exits
const shortenRetryLimit = 3    // shorten is only attempted while i < 3

// Run executes the fit loop for one block's content against frame, using
// cfg to bound the parameter search and shorten (optional) as the
// retranslation fallback once the compression ladder is exhausted.
//
// Suspension points are exclusively the calls into shorten; the loop
// itself performs no I/O and holds no state beyond its own locals, so it
// is safe to run many Runs concurrently on disjoint blocks.
func Run(ctx context.Context, content string, frame Frame, cfg model.FitLoopConfig, shorten Shortener) (model.FitResult, error) {
	if err := cfg.Validate(); err != nil {
		return model.FitResult{}, err
	}

	style := initialStyle(cfg)
	original := content
	shortenUsed := false
	compressed := false // density gates acceptance only until a compression rung fires

	iterations := 0

	for i := 0; i < cfg.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			return model.FitResult{}, ctx.Err()
		default:
		}

		w, h := measure.Measure(content, style)
		overflow := h / frame.HeightPx
		density := w / frame.WidthPx
		iterations = i + 1

		if overflow <= 1+cfg.OverflowTolerance {
			if density >= cfg.MinDensity || compressed {
				return model.FitResult{
					Fits:          true,
					OverflowRatio: overflow,
					DensityRatio:  density,
					Style:         style,
					Iterations:    iterations,
					FinalContent:  content,
				}, nil
			}
			expandStyle(&style, cfg, i)
			continue
		} else if fired := compressStyle(&style, cfg, i); fired {
			compressed = true
			continue
		}

		if shorten != nil && i < shortenRetryLimit && !shortenUsed {
			shortenUsed = true
			shortened, err := shorten(ctx, original)
			if err != nil {
				return model.FitResult{}, err
			}
			if len(shortened) < len(content) {
				content = shortened
				style = initialStyle(cfg)
				compressed = false
				continue
			}
		}
		break
	}

	w, h := measure.Measure(content, style)
	overflow := h / frame.HeightPx
	density := w / frame.WidthPx
	return model.FitResult{
		Fits:          overflow <= fitOverflowCeiling,
		OverflowRatio: overflow,
		DensityRatio:  density,
		Style:         style,
		Iterations:    iterations,
		FinalContent:  content,
	}, nil
}

func initialStyle(cfg model.FitLoopConfig) model.StyleProperties {
	return model.DefaultDeclarative(model.StyleProperties{
		LineHeight:    cfg.InitialLineHeight,
		LetterSpacing: cfg.InitialLetterSpacing,
		FontWeight:    model.WeightNormal,
		FontStretch:   model.StretchNormal,
	})
}

// compressStyle applies the compression rung bound to iteration i. At most
// one rung fires per call, and only the rung i names: a rung is never
// tried early or substituted for one whose guard fails. Returns false (the
// rung "did not fire") when i names no rung, or when i's rung's guard
// fails — either way the caller falls through to the shortening fallback.
func compressStyle(style *model.StyleProperties, cfg model.FitLoopConfig, i int) bool {
	switch i {
	case 0:
		if style.LetterSpacing > cfg.MinLetterSpacing {
			style.LetterSpacing -= 0.01
			if style.LetterSpacing < cfg.MinLetterSpacing {
				style.LetterSpacing = cfg.MinLetterSpacing
			}
			return true
		}
	case 1:
		if style.LineHeight > cfg.MinLineHeight {
			style.LineHeight -= 0.05
			if style.LineHeight < cfg.MinLineHeight {
				style.LineHeight = cfg.MinLineHeight
			}
			return true
		}
	case 2:
		if style.FontStretch == model.StretchNormal {
			style.FontStretch = model.StretchCondensed
			return true
		}
	case 3:
		if style.FontWeight == model.WeightNormal {
			style.FontWeight = model.Weight300
			return true
		}
	}
	return false
}

// expandStyle applies the expansion rung bound to iteration i: line-height
// at i==0, letter-spacing at i==1, nothing thereafter. Like compression,
// the rung is tied to i directly rather than to a separate cursor.
func expandStyle(style *model.StyleProperties, cfg model.FitLoopConfig, i int) {
	switch i {
	case 0:
		if style.LineHeight < cfg.MaxLineHeight {
			style.LineHeight += 0.10
			if style.LineHeight > cfg.MaxLineHeight {
				style.LineHeight = cfg.MaxLineHeight
			}
		}
	case 1:
		if style.LetterSpacing < cfg.MaxLetterSpacing {
			style.LetterSpacing += 0.005
			if style.LetterSpacing > cfg.MaxLetterSpacing {
				style.LetterSpacing = cfg.MaxLetterSpacing
			}
		}
	}
}
