// Package sparse implements a deterministic lexical encoder producing
// sparse term-weight vectors. Token ids from a fixed BPE vocabulary are
// used as sparse indices and L1-normalized term frequencies as weights,
// so exact keyword overlap between two texts shows up as shared indices.
package sparse

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "o200k_base"

// Encoder turns text into a sparse index→weight mapping.
type Encoder struct {
	encoding string
}

// NewEncoder creates an encoder over the given BPE encoding name.
// An empty name selects the default encoding.
func NewEncoder(encoding string) *Encoder {
	if encoding == "" {
		encoding = defaultEncoding
	}
	return &Encoder{encoding: encoding}
}

// Encode produces the sparse vector for text. Weights are term frequencies
// normalized so all weights of a vector sum to 1. Whitespace-only input
// yields an empty vector. Keys are unique by construction.
func (e *Encoder) Encode(text string) (map[uint32]float32, error) {
	text = normalize(text)
	if text == "" {
		return map[uint32]float32{}, nil
	}

	enc, err := tiktoken.GetEncoding(e.encoding)
	if err != nil {
		return nil, err
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) == 0 {
		return map[uint32]float32{}, nil
	}

	counts := make(map[uint32]float32, len(tokens))
	for _, tok := range tokens {
		counts[uint32(tok)]++
	}

	total := float32(len(tokens))
	for idx := range counts {
		counts[idx] /= total
	}
	return counts, nil
}

// normalize lowercases and collapses whitespace so that case and layout
// differences do not change the lexical fingerprint.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
