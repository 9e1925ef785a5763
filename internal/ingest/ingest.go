package ingest

import (
	"os"
	"path/filepath"
)

// SourceFile is one input file: a name plus a lazy bytes accessor.
type SourceFile interface {
	Name() string
	Bytes() ([]byte, error)
}

// PageGeometry is one page's media box in points (1 pt = 1/72 inch).
type PageGeometry struct {
	WidthPts  float64
	HeightPts float64
}

// Document is an opened source document.
type Document interface {
	PageCount() int
	Page(n int) (PageGeometry, error)
	Close() error
}

// PageRenderer opens raw document bytes. The production implementation
// wraps a PDF engine; tests substitute fakes.
type PageRenderer interface {
	Open(data []byte) (Document, error)
}

// FSFile adapts a filesystem path to SourceFile.
type FSFile struct {
	Path string
}

func (f FSFile) Name() string { return filepath.Base(f.Path) }

func (f FSFile) Bytes() ([]byte, error) { return os.ReadFile(f.Path) }

// Summary is the aggregate outcome of one import run. Page-level errors
// appear in Errors but only file-level failures flip Success.
type Summary struct {
	Created        int
	FilesProcessed int
	FilesFailed    int
	Errors         []string
	Success        bool
}
