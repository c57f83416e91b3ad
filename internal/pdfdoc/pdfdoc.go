// Package pdfdoc is the document collaborator: it pulls per-page text out of
// a label PDF and writes a reordered copy once the pipeline has computed the
// final page permutation. Text extraction failures are captured per page so
// one unreadable label never aborts the batch.
package pdfdoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"labelsort/internal/extract"
)

// ExtractPages reads the text of every page of the PDF at path, in order.
func ExtractPages(path string) ([]extract.PageText, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	return extractAll(reader), nil
}

// ExtractPagesFromBytes reads page texts from an in-memory PDF, e.g. an
// HTTP upload.
func ExtractPagesFromBytes(data []byte) ([]extract.PageText, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	return extractAll(reader), nil
}

func extractAll(reader *pdf.Reader) []extract.PageText {
	total := reader.NumPage()
	pages := make([]extract.PageText, 0, total)

	for num := 1; num <= total; num++ {
		pages = append(pages, extractOne(reader, num))
	}

	return pages
}

// extractOne isolates a single page: a failed or panicking text extraction
// becomes a page-level error, not a batch failure.
func extractOne(reader *pdf.Reader, num int) (pt extract.PageText) {
	pt = extract.PageText{Number: num}

	defer func() {
		if r := recover(); r != nil {
			pt.Err = fmt.Errorf("page %d: text extraction panic: %v", num, r)
			pt.Text = ""
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		pt.Err = fmt.Errorf("page %d: no content", num)
		return pt
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		pt.Err = fmt.Errorf("page %d: %w", num, err)
		return pt
	}

	pt.Text = text
	return pt
}

// Reorder writes a copy of the PDF with pages arranged per pageOrder
// (0-indexed). The order must be a permutation of the document's pages;
// the pipeline guarantees that for its results.
func Reorder(in io.ReadSeeker, out io.Writer, pageOrder []int) error {
	selected := make([]string, 0, len(pageOrder))
	for _, idx := range pageOrder {
		selected = append(selected, strconv.Itoa(idx+1))
	}

	if err := api.Collect(in, out, selected, nil); err != nil {
		return fmt.Errorf("reorder pdf: %w", err)
	}
	return nil
}

// ReorderFile is Reorder over file paths.
func ReorderFile(inPath, outPath string, pageOrder []int) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output pdf: %w", err)
	}
	defer func() { _ = out.Close() }()

	return Reorder(in, out, pageOrder)
}
