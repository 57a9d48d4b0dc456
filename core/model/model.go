/*
Package model holds the data types shared across the typesetting engine:
pages, blocks, glossaries, style properties and the typeset output. Types
here are tree-shaped (Page → Block, Glossary → GlossaryTerm) value
objects; they carry no behaviour of their own beyond validation, source
normalization and rendering a style as CSS properties.
*/
package model

import (
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/zenpl/GPTrans/core"
	"github.com/zenpl/GPTrans/core/dimen"
)

// BlockType enumerates the kinds of OCR block a page is carved into.
type BlockType string

const (
	Heading    BlockType = "heading"
	Paragraph  BlockType = "paragraph"
	Caption    BlockType = "caption"
	Footnote   BlockType = "footnote"
	Figure     BlockType = "figure"
	PageNumber BlockType = "page-number"
)

// Fitted reports whether the fit loop is invoked for this block type,
// versus falling back to the layout driver's fixed per-type defaults.
func (t BlockType) Fitted() bool {
	switch t {
	case Paragraph, Caption, Footnote:
		return true
	}
	return false
}

// Status is the write-back status tag of the data-store contract.
type Status string

const (
	StatusPending     Status = "pending"
	StatusTranslating Status = "translating"
	StatusTranslated  Status = "translated"
	StatusTypeset     Status = "typeset"
	StatusFailed      Status = "failed"
)

// BoundingBox is a rectangle in page pixel units. Widths and heights must
// be strictly positive once a block reaches fitting.
type BoundingBox struct {
	X, Y, W, H float64
}

// Validate enforces the BoundingBox invariant required before fitting:
// w>0 ∧ h>0, and all four components finite and non-negative.
func (b BoundingBox) Validate() error {
	if !isFinite(b.X) || !isFinite(b.Y) || !isFinite(b.W) || !isFinite(b.H) {
		return core.Error(core.EINVALID, "bounding box has a non-finite component")
	}
	if b.X < 0 || b.Y < 0 {
		return core.Error(core.EINVALID, "bounding box has a negative origin")
	}
	if b.W <= 0 || b.H <= 0 {
		return core.Error(core.EINVALID, "bounding box must have positive width and height, got %vx%v", b.W, b.H)
	}
	return nil
}

func isFinite(f float64) bool {
	return f == f && f < 1e300 && f > -1e300 // reject NaN and the practical ±Inf range for page-pixel quantities
}

// WidthDU and HeightDU expose the box's dimensions in the engine's
// internal fixed-point unit.
func (b BoundingBox) WidthDU() dimen.DU  { return dimen.FromPx(b.W) }
func (b BoundingBox) HeightDU() dimen.DU { return dimen.FromPx(b.H) }

// Block is a contiguous textual region detected by OCR.
type Block struct {
	ID             string
	Type           BlockType
	BBox           BoundingBox
	Order          int
	TextSource     string
	TextTranslated string
	HasTranslation bool
	Status         Status
}

// NormalizeSource rewrites TextSource to NFC: source text is always
// UTF-8 normalized before any downstream processing touches it.
func (b *Block) NormalizeSource() {
	b.TextSource = norm.NFC.String(b.TextSource)
}

// Page is the input unit the layout driver groups blocks by.
type Page struct {
	ID     string
	Width  int
	Height int
	DPI    int
	Blocks []Block
}

// GlossaryTerm is one prioritized source→target substitution rule.
type GlossaryTerm struct {
	Source        string
	Target        string
	CaseSensitive bool
	Note          string
}

// Glossary is an ordered list of terms; earlier terms win on overlapping
// matches.
type Glossary []GlossaryTerm

// LengthPolicy selects the target length behaviour of the paragraph
// translator.
type LengthPolicy string

const (
	LengthNormal  LengthPolicy = "normal"
	LengthConcise LengthPolicy = "concise"
)

// FontWeight and FontStretch are the two discrete ladder flags of the fit
// loop's compression steps; both are one-way ratchets once set.
type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	Weight300    FontWeight = "300"
)

type FontStretch string

const (
	StretchNormal    FontStretch = "normal"
	StretchCondensed FontStretch = "condensed"
)

// StyleProperties is the mutable typographic parameter set the fit loop
// searches over, plus the static declarative CSS the layout driver always
// stamps onto a frame.
type StyleProperties struct {
	// Mutable by the fit loop.
	LineHeight    float64
	LetterSpacing float64 // em, signed
	FontWeight    FontWeight
	FontStretch   FontStretch

	// Static declarative properties.
	FontFamily string
	FontSize   dimen.DU
	FontStyle  string // "normal" | "italic"
	TextAlign  string
	TextIndent string
	Color      string

	// Always carried: text-align=justify with CJK inter-ideograph,
	// word-break=keep-all, line-break=strict, hyphens=none.
	TextJustify string
	WordBreak   string
	LineBreak   string
	Hyphens     string
}

// DefaultDeclarative fills in the CJK-typesetting declarative properties
// that never change across the fit loop.
func DefaultDeclarative(s StyleProperties) StyleProperties {
	s.TextJustify = "inter-ideograph"
	s.WordBreak = "keep-all"
	s.LineBreak = "strict"
	s.Hyphens = "none"
	if s.TextAlign == "" {
		s.TextAlign = "justify"
	}
	return s
}

// CSS renders the style as a CSS property map, the shape consumed by the
// HTML templater sink.
func (s StyleProperties) CSS() map[string]string {
	css := map[string]string{
		"line-height":    formatFloat(s.LineHeight),
		"letter-spacing": formatFloat(s.LetterSpacing) + "em",
		"font-weight":    string(orDefault(s.FontWeight, WeightNormal)),
		"font-stretch":   string(orDefault(s.FontStretch, StretchNormal)),
		"text-justify":   orStr(s.TextJustify, "inter-ideograph"),
		"word-break":     orStr(s.WordBreak, "keep-all"),
		"line-break":     orStr(s.LineBreak, "strict"),
		"hyphens":        orStr(s.Hyphens, "none"),
	}
	if s.FontFamily != "" {
		css["font-family"] = s.FontFamily
	}
	if s.FontSize != 0 {
		css["font-size"] = formatFloat(s.FontSize.Px()) + "px"
	}
	if s.FontStyle != "" {
		css["font-style"] = s.FontStyle
	}
	if s.TextAlign != "" {
		css["text-align"] = s.TextAlign
	} else {
		css["text-align"] = "justify"
	}
	if s.TextIndent != "" {
		css["text-indent"] = s.TextIndent
	}
	if s.Color != "" {
		css["color"] = s.Color
	}
	return css
}

func orDefault[T ~string](v, def T) T {
	if v == "" {
		return def
	}
	return v
}

func orStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// TypesetFrame is one positioned, styled block of content ready for a
// downstream renderer.
type TypesetFrame struct {
	BlockID string
	BBox    BoundingBox
	Content string
	Style   StyleProperties
}

// TypesetPage is the ordered collection of frames produced for one page.
type TypesetPage struct {
	PageID string
	Width  float64
	Height float64
	Frames []TypesetFrame
}

// FitLoopConfig bounds the fit loop's parameter search.
type FitLoopConfig struct {
	InitialLineHeight    float64 `yaml:"initial_line_height"`
	MinLineHeight        float64 `yaml:"min_line_height"`
	MaxLineHeight        float64 `yaml:"max_line_height"`
	InitialLetterSpacing float64 `yaml:"initial_letter_spacing"`
	MinLetterSpacing     float64 `yaml:"min_letter_spacing"`
	MaxLetterSpacing     float64 `yaml:"max_letter_spacing"`
	OverflowTolerance    float64 `yaml:"overflow_tolerance"`
	ConciseThreshold     float64 `yaml:"concise_threshold"`
	MinDensity           float64 `yaml:"min_density"`
	MaxIterations        int     `yaml:"max_iterations"`
}

// DefaultFitLoopConfig returns the engine's baseline search parameters.
func DefaultFitLoopConfig() FitLoopConfig {
	return FitLoopConfig{
		InitialLineHeight:    1.5,
		MinLineHeight:        1.45,
		MaxLineHeight:        1.6,
		InitialLetterSpacing: 0.0,
		MinLetterSpacing:     -0.02,
		MaxLetterSpacing:     0.01,
		OverflowTolerance:    0.02,
		ConciseThreshold:     0.9,
		MinDensity:           0.40,
		MaxIterations:        10,
	}
}

// Validate rejects a config whose bounds are inverted or non-finite, which
// would make the fit loop's convergence guarantee unsatisfiable.
func (c FitLoopConfig) Validate() error {
	for _, f := range []float64{c.InitialLineHeight, c.MinLineHeight, c.MaxLineHeight,
		c.InitialLetterSpacing, c.MinLetterSpacing, c.MaxLetterSpacing,
		c.OverflowTolerance, c.ConciseThreshold, c.MinDensity} {
		if !isFinite(f) {
			return core.Error(core.EINVALID, "fit loop config has a non-finite value")
		}
	}
	if c.MinLineHeight > c.MaxLineHeight {
		return core.Error(core.EINVALID, "min_line_height > max_line_height")
	}
	if c.MinLetterSpacing > c.MaxLetterSpacing {
		return core.Error(core.EINVALID, "min_letter_spacing > max_letter_spacing")
	}
	if c.MaxIterations <= 0 {
		return core.Error(core.EINVALID, "max_iterations must be positive")
	}
	return nil
}

// FitResult is the internal outcome of one fit loop run.
type FitResult struct {
	Fits          bool
	OverflowRatio float64
	DensityRatio  float64
	Style         StyleProperties
	Iterations    int
	FinalContent  string
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
