package loader

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/resumeguard/backend/pkg/fault"
)

func TestSplitDeterministic(t *testing.T) {
	text := strings.Repeat("Led a team of engineers building billing systems. ", 40)

	first, err := Split(text, "resume.pdf", 100, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Split(text, "resume.pdf", 100, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical chunk sequences for identical input")
	}
}

func TestSplitCoverage(t *testing.T) {
	// Concatenating chunks with the overlap trimmed from every chunk after
	// the first must reconstruct the source text exactly.
	text := strings.Repeat("abcdefghij", 37) + "xyz"
	size, overlap := 50, 10

	chunks, err := Split(text, "resume.pdf", size, overlap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	var sb strings.Builder
	for i, chunk := range chunks {
		runes := []rune(chunk.Text)
		if i == 0 {
			sb.WriteString(chunk.Text)
			continue
		}
		sb.WriteString(string(runes[overlap:]))
	}
	if sb.String() != text {
		t.Fatal("reconstructed text does not match source")
	}
}

func TestSplitIndicesContiguous(t *testing.T) {
	chunks, err := Split(strings.Repeat("word ", 200), "cv.docx", 80, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Fatalf("chunk %d has index %d", i, chunk.Index)
		}
		if chunk.SourceFile != "cv.docx" {
			t.Fatalf("chunk %d has source %q", i, chunk.SourceFile)
		}
	}
}

func TestSplitShortText(t *testing.T) {
	chunks, err := Split("short resume", "resume.pdf", 500, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "short resume" {
		t.Fatalf("unexpected chunk text %q", chunks[0].Text)
	}
}

func TestSplitEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\t"} {
		chunks, err := Split(text, "resume.pdf", 500, 50)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if len(chunks) != 0 {
			t.Fatalf("expected 0 chunks for %q, got %d", text, len(chunks))
		}
	}
}

func TestSplitInvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
		{"negative overlap", 100, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Split("some text", "resume.pdf", tt.size, tt.overlap); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestSplitMultibyteRunes(t *testing.T) {
	text := strings.Repeat("日本語テキストの履歴書です。", 30)

	chunks, err := Split(text, "resume.pdf", 40, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sb strings.Builder
	for i, chunk := range chunks {
		runes := []rune(chunk.Text)
		if i == 0 {
			sb.WriteString(chunk.Text)
			continue
		}
		sb.WriteString(string(runes[10:]))
	}
	if sb.String() != text {
		t.Fatal("reconstructed multibyte text does not match source")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Format
		wantErr  bool
	}{
		{"pdf", "resume.pdf", FormatPDF, false},
		{"pdf upper", "RESUME.PDF", FormatPDF, false},
		{"docx", "cv.docx", FormatDOCX, false},
		{"txt", "notes.txt", FormatText, false},
		{"doc", "cv.doc", "", true},
		{"no extension", "resume", "", true},
		{"image", "scan.png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !fault.IsKind(err, fault.KindUnsupportedFormat) {
					t.Fatalf("expected unsupported_format fault, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	_, err := Extract(context.Background(), Document{
		Name:   "resume.odt",
		Format: Format("odt"),
		Data:   []byte("content"),
	})
	if !fault.IsKind(err, fault.KindUnsupportedFormat) {
		t.Fatalf("expected unsupported_format fault, got %v", err)
	}
}

func TestExtractPlainText(t *testing.T) {
	text, err := Extract(context.Background(), Document{
		Name:   "resume.txt",
		Format: FormatText,
		Data:   []byte("plain resume body"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "plain resume body" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestChunkID(t *testing.T) {
	chunk := Chunk{Text: "x", Index: 3, SourceFile: "resume.pdf"}
	if got := chunk.ID(); got != "resume.pdf_chunk3" {
		t.Fatalf("ID() = %q", got)
	}
}
