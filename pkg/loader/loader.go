// Package loader turns uploaded resume files into ordered, overlapping
// text chunks with provenance metadata. Supported inputs are PDF, DOCX
// and plain text; everything else is rejected before any external call
// is made.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/resumeguard/backend/pkg/fault"
)

// Format identifies the declared document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// Document is a file to be screened. It is created per incoming request
// and discarded after chunking.
type Document struct {
	Name   string
	Format Format
	Data   []byte
}

// Chunk is a bounded window of a document's text. Index is zero-based and
// contiguous within a document; SourceFile records provenance.
type Chunk struct {
	Text       string `json:"text"`
	Index      int    `json:"index"`
	SourceFile string `json:"source_file"`
}

// ID returns the stable chunk identifier used in the similarity index.
func (c Chunk) ID() string {
	return fmt.Sprintf("%s_chunk%d", c.SourceFile, c.Index)
}

// DetectFormat derives the document format from the file name extension.
// Unrecognized extensions fail with an unsupported-format fault.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", fault.Newf(fault.KindUnsupportedFormat,
			"unsupported file format %q, use PDF, DOCX or TXT", filepath.Ext(name))
	}
}

// Extract returns the full text of the document, all pages and sections
// concatenated in document order. Zero extracted text is not an error;
// downstream stages treat it as a degenerate empty-chunk case.
func Extract(ctx context.Context, doc Document) (string, error) {
	switch doc.Format {
	case FormatPDF:
		text, err := parsePDF(ctx, doc.Data)
		if err != nil {
			return "", fault.New(fault.KindExtractionFailure, "failed to extract PDF text from "+doc.Name, err)
		}
		return text, nil
	case FormatDOCX:
		text, err := parseDocx(doc.Data)
		if err != nil {
			return "", fault.New(fault.KindExtractionFailure, "failed to extract DOCX text from "+doc.Name, err)
		}
		return text, nil
	case FormatText:
		return string(doc.Data), nil
	default:
		return "", fault.Newf(fault.KindUnsupportedFormat,
			"unsupported file format %q, use PDF, DOCX or TXT", string(doc.Format))
	}
}
