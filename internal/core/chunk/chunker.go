package chunk

import (
	"slices"
	"strconv"
	"strings"

	"docqa/internal/core/segment"
	"docqa/pkg/tokenizer"
)

// Chunk is one token-bounded slice of a document, ready for embedding.
type Chunk struct {
	ChunkNumber  int    `json:"chunk_number"`
	PageLabel    string `json:"page_label"`
	EmbeddedText string `json:"embedded_text"`
	RawText      string `json:"raw_text"`
}

// Builder assembles sentences into chunks of at most TargetTokens tokens,
// carrying roughly OverlapTokens tokens of trailing context into the next
// chunk. It is a pure function of its inputs and safe to use concurrently
// for different documents.
type Builder struct {
	Tok           tokenizer.Tokenizer
	TargetTokens  int
	OverlapTokens int
}

// accumulator is the in-progress chunk: its sentences plus their token total.
type accumulator struct {
	sentences []segment.Sentence
	tokens    int
}

// Build walks the sentence sequence once, left to right. Empty input yields
// an empty result, which callers treat as nothing to index.
func (b *Builder) Build(fileName string, sentences []segment.Sentence) []Chunk {
	target := b.TargetTokens
	if target <= 0 {
		target = 2000
	}

	var chunks []Chunk
	var acc accumulator
	chunkNo := 1

	i := 0
	for i < len(sentences) {
		text := strings.TrimSpace(sentences[i].Text)
		if text == "" {
			i++
			continue
		}

		n := b.Tok.TokenLen(text)

		// A single sentence over the budget is split mid-sentence by tokens,
		// each piece becoming its own chunk.
		if n > target {
			if len(acc.sentences) > 0 {
				chunks = append(chunks, finalize(fileName, acc.sentences, chunkNo))
				chunkNo++
				acc = accumulator{}
			}
			for _, piece := range b.splitByTokens(text, target) {
				chunks = append(chunks, finalize(fileName, []segment.Sentence{{Text: piece, Page: sentences[i].Page}}, chunkNo))
				chunkNo++
			}
			i++
			continue
		}

		if len(acc.sentences) > 0 && acc.tokens+n > target {
			chunks = append(chunks, finalize(fileName, acc.sentences, chunkNo))
			chunkNo++
			acc = b.carryOverlap(acc)
			// retry the same sentence against the fresh accumulator
			continue
		}

		acc.sentences = append(acc.sentences, segment.Sentence{Text: text, Page: sentences[i].Page})
		acc.tokens += n
		i++
	}

	if len(acc.sentences) > 0 {
		chunks = append(chunks, finalize(fileName, acc.sentences, chunkNo))
	}

	return chunks
}

// carryOverlap collects trailing sentences of the just-finalized chunk, newest
// first, until the overlap budget is spent; at least one sentence is always
// taken. If the overlap would be the entire chunk the carry is dropped,
// otherwise the same content would be re-emitted forever once the next
// sentence still does not fit.
func (b *Builder) carryOverlap(prev accumulator) accumulator {
	var kept []segment.Sentence
	tokens := 0
	for i := len(prev.sentences) - 1; i >= 0; i-- {
		n := b.Tok.TokenLen(prev.sentences[i].Text)
		if len(kept) > 0 && tokens+n > b.OverlapTokens {
			break
		}
		kept = append(kept, prev.sentences[i])
		tokens += n
	}
	slices.Reverse(kept)

	if len(kept) == len(prev.sentences) && tokens == prev.tokens {
		return accumulator{}
	}
	return accumulator{sentences: kept, tokens: tokens}
}

// finalize turns the accumulated sentences into a Chunk. Documents without
// page information label the chunk with its own number.
func finalize(fileName string, sentences []segment.Sentence, number int) Chunk {
	parts := make([]string, len(sentences))
	var pages []int
	for i, s := range sentences {
		parts[i] = s.Text
		if s.Page != nil {
			pages = append(pages, *s.Page)
		}
	}
	raw := strings.TrimSpace(strings.Join(parts, " "))

	label := PageLabel(pages)
	if label == "" {
		label = strconv.Itoa(number)
	}

	return Chunk{
		ChunkNumber:  number,
		PageLabel:    label,
		EmbeddedText: fileName + "\n\n" + raw,
		RawText:      raw,
	}
}
