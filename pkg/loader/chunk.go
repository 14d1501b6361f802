package loader

import (
	"context"
	"fmt"
	"strings"
)

// Split cuts text into overlapping windows of size runes, with overlap
// runes shared between consecutive windows, preserving document order.
// Whitespace-only text yields zero chunks. Size and overlap must be
// positive with overlap < size.
func Split(text string, sourceFile string, size int, overlap int) ([]Chunk, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, size), got %d for size %d", overlap, size)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	runes := []rune(text)
	step := size - overlap

	var chunks []Chunk
	for start := 0; ; start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, Chunk{
			Text:       string(runes[start:end]),
			Index:      len(chunks),
			SourceFile: sourceFile,
		})
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}

// LoadAndChunk extracts the document text and splits it into chunks in
// one step. An unsupported format fails before any extraction work.
func LoadAndChunk(ctx context.Context, doc Document, size int, overlap int) ([]Chunk, error) {
	text, err := Extract(ctx, doc)
	if err != nil {
		return nil, err
	}
	return Split(text, doc.Name, size, overlap)
}
