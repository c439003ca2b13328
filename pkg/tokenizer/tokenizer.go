package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer converts text to and from token ids. One fixed encoding is used
// for the whole service so that token counts match what the embedding and
// chat models see.
type Tokenizer interface {
	TokenLen(text string) int
	Encode(text string) []int
	Decode(tokens []int) string
}

// BPE wraps a tiktoken byte-pair encoding.
type BPE struct {
	encoding *tiktoken.Tiktoken
}

// NewBPE loads the named tiktoken encoding, e.g. "cl100k_base".
func NewBPE(name string) (*BPE, error) {
	encoding, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("load encoding %q: %w", name, err)
	}
	return &BPE{encoding: encoding}, nil
}

func (b *BPE) TokenLen(text string) int {
	if text == "" {
		return 0
	}
	return len(b.encoding.Encode(text, nil, nil))
}

func (b *BPE) Encode(text string) []int {
	return b.encoding.Encode(text, nil, nil)
}

func (b *BPE) Decode(tokens []int) string {
	return b.encoding.Decode(tokens)
}
