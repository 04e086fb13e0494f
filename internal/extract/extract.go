// Package extract turns raw statement document bytes into per-page text.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const pdfMagic = "%PDF-"

// Pages extracts the ordered page texts from a statement document.
// PDF input goes through the pdf library; anything else is treated as
// pre-extracted text with form-feed page breaks.
func Pages(data []byte) ([]string, error) {
	if bytes.HasPrefix(data, []byte(pdfMagic)) {
		return pdfPages(data)
	}
	return strings.Split(string(data), "\f"), nil
}

func pdfPages(data []byte) (pages []string, err error) {
	// The pdf library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("extracting pdf text: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := pageText(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// pageText reassembles a page's text row by row so the statement's
// line structure survives extraction.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("reading rows: %w", err)
	}

	var sb strings.Builder
	for _, row := range rows {
		var line strings.Builder
		for _, txt := range row.Content {
			line.WriteString(txt.S)
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
