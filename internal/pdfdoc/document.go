// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// Package pdfdoc wraps a roster PDF behind a single handle that serves both
// linear page text (MuPDF via go-fitz) and positioned text fragments
// (ledongthuc/pdf). The handle is opened once per parse and must be released
// with Close after all pages are processed.
package pdfdoc

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"

	"github.com/farmaguardia/segovia/internal/logger"
)

// defaultPageHeight is A4 in points, used when a page carries no usable
// MediaBox.
const defaultPageHeight = 841.89

// Fragment is a positioned piece of page text in top-down document
// coordinates: Y grows downward, Y=0 is the top edge of the page.
type Fragment struct {
	X        float64
	Y        float64
	W        float64
	FontSize float64
	Text     string
}

// Document is an open roster PDF.
type Document struct {
	fz     *fitz.Document
	reader *pdf.Reader
	pages  int
}

// Open parses raw PDF bytes. A zero-length or unopenable payload is a
// document-fatal error; a payload that opens for linear text but fails
// positioned parsing is still usable (positioned lookups return nothing).
func Open(raw []byte) (*Document, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty PDF payload")
	}

	fz, err := fitz.NewFromMemory(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	doc := &Document{fz: fz, pages: fz.NumPage()}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		// Geometric strategies degrade to "no data" on such documents.
		logger.Warnf("positioned text reader unavailable: %v", err)
	} else {
		doc.reader = reader
	}

	return doc, nil
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.pages
}

// PageText extracts the linear text of page n (0-based).
func (d *Document) PageText(n int) (string, error) {
	if n < 0 || n >= d.pages {
		return "", fmt.Errorf("page %d out of range (0..%d)", n, d.pages-1)
	}
	text, err := d.fz.Text(n)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", n, err)
	}
	return text, nil
}

// PageLines extracts page n as trimmed, non-empty lines.
func (d *Document) PageLines(n int) ([]string, error) {
	text, err := d.PageText(n)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines, nil
}

// PageFragments returns the positioned fragments of page n (0-based) in
// top-down coordinates, ordered top-to-bottom then left-to-right. Returns
// nil when the positioned reader is unavailable or the page content is
// malformed; callers treat that as "no data".
func (d *Document) PageFragments(n int) []Fragment {
	if d.reader == nil || n < 0 || n >= d.pages {
		return nil
	}

	// ledongthuc/pdf panics on some malformed content streams; absorb and
	// degrade to an empty page.
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("recovered extracting positioned text from page %d: %v", n, r)
		}
	}()

	page := d.reader.Page(n + 1)
	if page.V.IsNull() {
		return nil
	}

	height := d.pageHeight(page)
	content := page.Content()

	frags := make([]Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		s := strings.TrimSpace(t.S)
		if s == "" {
			continue
		}
		frags = append(frags, Fragment{
			X:        t.X,
			Y:        height - t.Y,
			W:        t.W,
			FontSize: t.FontSize,
			Text:     t.S,
		})
	}

	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].Y != frags[j].Y {
			return frags[i].Y < frags[j].Y
		}
		return frags[i].X < frags[j].X
	})
	return frags
}

// pageHeight reads the MediaBox height, falling back to A4.
func (d *Document) pageHeight(page pdf.Page) float64 {
	mediaBox := page.V.Key("MediaBox")
	if mediaBox.IsNull() || mediaBox.Kind() != pdf.Array || mediaBox.Len() != 4 {
		return defaultPageHeight
	}
	lly := numericValue(mediaBox.Index(1))
	ury := numericValue(mediaBox.Index(3))
	if ury <= lly {
		return defaultPageHeight
	}
	return ury - lly
}

func numericValue(v pdf.Value) float64 {
	switch v.Kind() {
	case pdf.Integer:
		return float64(v.Int64())
	case pdf.Real:
		return v.Float64()
	}
	return 0
}

// Close releases the underlying MuPDF handle.
func (d *Document) Close() error {
	if d.fz != nil {
		return d.fz.Close()
	}
	return nil
}
