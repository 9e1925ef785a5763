package pdf

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/printworks/platetrack/internal/ingest"
)

// Reader opens PDF bytes through go-fitz. Only page count and page
// geometry are consumed; pages are never rasterized or inspected.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (Reader) Open(data []byte) (ingest.Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	if doc.NumPage() == 0 {
		_ = doc.Close()
		return nil, fmt.Errorf("pdf has no pages")
	}
	return &document{doc: doc}, nil
}

type document struct {
	doc *fitz.Document
}

func (d *document) PageCount() int {
	return d.doc.NumPage()
}

func (d *document) Page(n int) (ingest.PageGeometry, error) {
	bound, err := d.doc.Bound(n)
	if err != nil {
		return ingest.PageGeometry{}, fmt.Errorf("page %d bounds: %w", n+1, err)
	}
	return ingest.PageGeometry{
		WidthPts:  float64(bound.Dx()),
		HeightPts: float64(bound.Dy()),
	}, nil
}

func (d *document) Close() error {
	return d.doc.Close()
}
