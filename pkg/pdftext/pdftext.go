// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts text, tabular structures, and document
// metadata from saved PDFs. The binary format is delegated entirely to
// github.com/ledongthuc/pdf; this package only shapes its output and
// error reporting.
package pdftext

import (
	"bytes"
	"os"

	"github.com/ledongthuc/pdf"
)

// ParseError reports a document that could not be opened or read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "pdf " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Table holds the row structure of one page. Each row is the ordered
// list of text fragments the library grouped at one vertical position.
type Table struct {
	Page int        `json:"page" yaml:"page"`
	Rows [][]string `json:"rows" yaml:"rows"`
}

// Text extracts the plain text of the whole document.
func Text(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", &ParseError{Path: path, Err: err}
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", &ParseError{Path: path, Err: err}
	}
	return buf.String(), nil
}

// FirstPageText extracts the plain text of the first page, which for
// arXiv papers carries the title block and abstract. An empty document
// yields "".
func FirstPageText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return "", nil
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", &ParseError{Path: path, Err: err}
	}
	return text, nil
}

// Tables extracts the row structure of every page. Pages that produce no
// rows are omitted.
func Tables(path string) ([]Table, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	var tables []Table
	for n := 1; n <= r.NumPage(); n++ {
		page := r.Page(n)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		if len(rows) == 0 {
			continue
		}
		t := Table{Page: n}
		for _, row := range rows {
			cells := make([]string, 0, len(row.Content))
			for _, text := range row.Content {
				cells = append(cells, text.S)
			}
			t.Rows = append(t.Rows, cells)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// Metadata returns the document's Info dictionary (Title, Author,
// Producer, etc.) as a string map. Documents without an Info dictionary
// yield an empty map.
func Metadata(path string) (map[string]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	meta := make(map[string]string)
	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return meta, nil
	}
	for _, key := range info.Keys() {
		v := info.Key(key)
		switch v.Kind() {
		case pdf.String:
			meta[key] = v.Text()
		case pdf.Name:
			meta[key] = v.Name()
		default:
			meta[key] = v.String()
		}
	}
	return meta, nil
}

// Stat reports the page count without extracting content, failing with a
// ParseError for unreadable documents.
func Stat(path string) (pages int, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return 0, &ParseError{Path: path, Err: statErr}
	}
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, &ParseError{Path: path, Err: err}
	}
	defer f.Close()
	return r.NumPage(), nil
}
