/*
Package ocr ingests the OCR provider's JSON result shape and normalizes
it into the engine's model.Page / model.Block types.
*/
package ocr

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"github.com/zenpl/GPTrans/core/model"
)

// Line is one recognized text line within a block.
type Line struct {
	BBox       BBox    `json:"bbox"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// BBox mirrors the OCR provider's wire shape for a bounding box.
type BBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RawBlock is one OCR-detected region before normalization.
type RawBlock struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	BBox       BBox    `json:"bbox"`
	Order      int     `json:"order"`
	Lines      []Line  `json:"lines"`
	Confidence float64 `json:"confidence"`
}

// PageInfo is the OCR provider's page metadata.
type PageInfo struct {
	Index  int `json:"index"`
	Width  int `json:"width"`
	Height int `json:"height"`
	DPI    int `json:"dpi"`
}

// Result is the OCR provider's output for one page.
type Result struct {
	Page         PageInfo   `json:"page"`
	Blocks       []RawBlock `json:"blocks"`
	ReadingOrder []string   `json:"reading_order"`
}

// Decode reads one OCR Result from r.
func Decode(r io.Reader) (Result, error) {
	var res Result
	dec := json.NewDecoder(r)
	if err := dec.Decode(&res); err != nil {
		return Result{}, err
	}
	return res, nil
}

var blockTypeAlias = map[string]model.BlockType{
	"heading":     model.Heading,
	"paragraph":   model.Paragraph,
	"caption":     model.Caption,
	"footnote":    model.Footnote,
	"figure":      model.Figure,
	"page-number": model.PageNumber,
	"page_number": model.PageNumber,
}

// ToPage normalizes an OCR Result into a model.Page. Each block's Order
// is its position in reading_order when listed there, falling back to the
// block's own order field; page.Blocks keeps the input order. Text is the
// concatenation of its lines' text, space-joined, and missing block IDs
// are synthesized.
func ToPage(pageID string, res Result) model.Page {
	page := model.Page{
		ID:     pageID,
		Width:  res.Page.Width,
		Height: res.Page.Height,
		DPI:    res.Page.DPI,
	}

	order := make(map[string]int, len(res.ReadingOrder))
	for i, id := range res.ReadingOrder {
		order[id] = i
	}

	for _, rb := range res.Blocks {
		id := rb.ID
		if id == "" {
			id = uuid.NewString()
		}
		ord := rb.Order
		if i, ok := order[id]; ok {
			ord = i
		}
		b := model.Block{
			ID:         id,
			Type:       normalizeType(rb.Type),
			BBox:       model.BoundingBox{X: rb.BBox.X, Y: rb.BBox.Y, W: rb.BBox.W, H: rb.BBox.H},
			Order:      ord,
			TextSource: joinLines(rb.Lines),
			Status:     model.StatusPending,
		}
		b.NormalizeSource()
		page.Blocks = append(page.Blocks, b)
	}
	return page
}

func normalizeType(t string) model.BlockType {
	if bt, ok := blockTypeAlias[t]; ok {
		return bt
	}
	return model.Paragraph
}

func joinLines(lines []Line) string {
	text := ""
	for i, l := range lines {
		if i > 0 {
			text += " "
		}
		text += l.Text
	}
	return text
}
