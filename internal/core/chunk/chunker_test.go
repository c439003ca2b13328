package chunk

import (
	"fmt"
	"strings"
	"testing"

	"docqa/internal/core/segment"
)

// wordTokenizer treats every whitespace-separated word as one token. It keeps
// chunker tests deterministic and independent of the production BPE table.
type wordTokenizer struct {
	words []string
	ids   map[string]int
}

func newWordTokenizer() *wordTokenizer {
	return &wordTokenizer{ids: map[string]int{}}
}

func (t *wordTokenizer) TokenLen(text string) int {
	return len(strings.Fields(text))
}

func (t *wordTokenizer) Encode(text string) []int {
	fields := strings.Fields(text)
	out := make([]int, 0, len(fields))
	for _, w := range fields {
		id, ok := t.ids[w]
		if !ok {
			id = len(t.words)
			t.words = append(t.words, w)
			t.ids[w] = id
		}
		out = append(out, id)
	}
	return out
}

func (t *wordTokenizer) Decode(tokens []int) string {
	parts := make([]string, len(tokens))
	for i, id := range tokens {
		parts[i] = t.words[id]
	}
	return strings.Join(parts, " ")
}

func newBuilder(target, overlap int) *Builder {
	return &Builder{Tok: newWordTokenizer(), TargetTokens: target, OverlapTokens: overlap}
}

func plain(texts ...string) []segment.Sentence {
	out := make([]segment.Sentence, len(texts))
	for i, t := range texts {
		out[i] = segment.Sentence{Text: t}
	}
	return out
}

// repeated words so a sentence has an exact token count
func sentenceOfTokens(tag string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s%d", tag, i)
	}
	return strings.Join(parts, " ")
}

func TestBuildEmptyInput(t *testing.T) {
	b := newBuilder(100, 10)
	if chunks := b.Build("doc", nil); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
	if chunks := b.Build("doc", plain("", "   ")); len(chunks) != 0 {
		t.Fatalf("expected no chunks for blank sentences, got %d", len(chunks))
	}
}

func TestBuildSingleChunk(t *testing.T) {
	b := newBuilder(100, 10)
	chunks := b.Build("doc", plain("A.", "B.", "C."))

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.ChunkNumber != 1 {
		t.Fatalf("chunk number: got %d want 1", c.ChunkNumber)
	}
	if c.PageLabel != "1" {
		t.Fatalf("page label: got %q want %q", c.PageLabel, "1")
	}
	if c.RawText != "A. B. C." {
		t.Fatalf("raw text: got %q", c.RawText)
	}
	if c.EmbeddedText != "doc\n\nA. B. C." {
		t.Fatalf("embedded text: got %q", c.EmbeddedText)
	}
}

func TestBuildNumberingAndBudget(t *testing.T) {
	b := newBuilder(12, 0)
	var sentences []segment.Sentence
	for i := 0; i < 20; i++ {
		sentences = append(sentences, segment.Sentence{Text: sentenceOfTokens(fmt.Sprintf("s%d_", i), 5)})
	}
	chunks := b.Build("doc", sentences)

	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, c := range chunks {
		if c.ChunkNumber != i+1 {
			t.Fatalf("chunk %d: number %d, numbering must be gapless from 1", i, c.ChunkNumber)
		}
		if n := len(strings.Fields(c.RawText)); n > 12 {
			t.Fatalf("chunk %d: %d tokens exceeds budget", i, n)
		}
		if c.RawText == "" {
			t.Fatalf("chunk %d is empty", i)
		}
	}
}

func TestBuildOverlapCarry(t *testing.T) {
	b := newBuilder(10, 5)
	s1 := sentenceOfTokens("a", 4)
	s2 := sentenceOfTokens("b", 4)
	s3 := sentenceOfTokens("c", 4)
	s4 := sentenceOfTokens("d", 4)
	chunks := b.Build("doc", plain(s1, s2, s3, s4))

	want := []string{
		s1 + " " + s2,
		s2 + " " + s3,
		s3 + " " + s4,
	}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, c := range chunks {
		if c.RawText != want[i] {
			t.Fatalf("chunk %d: got %q want %q", i, c.RawText, want[i])
		}
	}
}

func TestBuildDegenerateOverlap(t *testing.T) {
	// Overlap budget equals the chunk budget; each chunk would be fully
	// consumed as overlap and re-emitted forever without the guard.
	b := newBuilder(100, 100)
	s1 := sentenceOfTokens("a", 90)
	s2 := sentenceOfTokens("b", 90)
	s3 := sentenceOfTokens("c", 90)
	chunks := b.Build("doc", plain(s1, s2, s3))

	want := []string{s1, s2, s3}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, c := range chunks {
		if c.RawText != want[i] {
			t.Fatalf("chunk %d: got %d tokens, want single sentence %d", i, len(strings.Fields(c.RawText)), i+1)
		}
		if c.ChunkNumber != i+1 {
			t.Fatalf("chunk %d: number %d", i, c.ChunkNumber)
		}
	}
}

func TestBuildOversizedSentence(t *testing.T) {
	b := newBuilder(2000, 200)
	words := make([]string, 5000)
	for i := range words {
		words[i] = fmt.Sprintf("w%04d", i)
	}
	page := 7
	sentences := []segment.Sentence{
		{Text: "lead in sentence"},
		{Text: strings.Join(words, " "), Page: &page},
	}
	chunks := b.Build("doc", sentences)

	// accumulator flushed first, then the token windows [0:2000), [1800:3800),
	// [3600:5000) with step 1800
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	if chunks[0].RawText != "lead in sentence" {
		t.Fatalf("chunk 1 should be the flushed accumulator, got %q", chunks[0].RawText)
	}
	wantWindows := [][2]int{{0, 2000}, {1800, 3800}, {3600, 5000}}
	for i, w := range wantWindows {
		c := chunks[i+1]
		if c.ChunkNumber != i+2 {
			t.Fatalf("piece %d: chunk number %d", i, c.ChunkNumber)
		}
		if c.PageLabel != "7" {
			t.Fatalf("piece %d: page label %q, want the oversized sentence's page", i, c.PageLabel)
		}
		want := strings.Join(words[w[0]:w[1]], " ")
		if c.RawText != want {
			t.Fatalf("piece %d: window mismatch (got %d tokens, want [%d:%d))",
				i, len(strings.Fields(c.RawText)), w[0], w[1])
		}
	}
}

func TestSplitByTokensOverlapAtLeastBudget(t *testing.T) {
	// overlap >= target must fall back to non-overlapping windows instead of
	// a non-advancing walk
	b := newBuilder(10, 10)
	text := sentenceOfTokens("x", 25)
	pieces := b.splitByTokens(text, 10)

	if len(pieces) != 3 {
		t.Fatalf("expected 3 pieces, got %d", len(pieces))
	}
	total := 0
	for i, p := range pieces {
		n := len(strings.Fields(p))
		if n > 10 {
			t.Fatalf("piece %d has %d tokens", i, n)
		}
		total += n
	}
	if total != 25 {
		t.Fatalf("pieces cover %d tokens, want 25", total)
	}
}

func TestBuildCoverage(t *testing.T) {
	// Concatenating all chunks, minus the sentences duplicated for overlap,
	// reconstructs the input. Every word is globally unique, so dropping
	// already-seen words removes exactly the overlap.
	b := newBuilder(15, 4)
	var sentences []segment.Sentence
	var original []string
	for i := 0; i < 12; i++ {
		s := sentenceOfTokens(fmt.Sprintf("t%d_", i), 1+i%6)
		sentences = append(sentences, segment.Sentence{Text: s})
		original = append(original, s)
	}
	chunks := b.Build("doc", sentences)

	seen := map[string]bool{}
	var rebuilt []string
	for _, c := range chunks {
		for _, w := range strings.Fields(c.RawText) {
			if !seen[w] {
				seen[w] = true
				rebuilt = append(rebuilt, w)
			}
		}
	}
	if got, want := strings.Join(rebuilt, " "), strings.Join(original, " "); got != want {
		t.Fatalf("chunks do not reconstruct input:\ngot  %q\nwant %q", got, want)
	}
}

func TestBuildPageLabels(t *testing.T) {
	p := func(n int) *int { return &n }

	b := newBuilder(100, 0)
	chunks := b.Build("doc", []segment.Sentence{
		{Text: "one.", Page: p(3)},
		{Text: "two.", Page: p(4)},
		{Text: "three.", Page: p(5)},
	})
	if len(chunks) != 1 || chunks[0].PageLabel != "3-5" {
		t.Fatalf("contiguous pages: got %+v", chunks)
	}

	chunks = newBuilder(100, 0).Build("doc", []segment.Sentence{
		{Text: "one.", Page: p(1)},
		{Text: "two.", Page: p(2)},
		{Text: "three.", Page: p(5)},
	})
	if len(chunks) != 1 || chunks[0].PageLabel != "1,2,5" {
		t.Fatalf("gapped pages: got %+v", chunks)
	}

	chunks = newBuilder(100, 0).Build("doc", []segment.Sentence{
		{Text: "one.", Page: p(5)},
	})
	if len(chunks) != 1 || chunks[0].PageLabel != "5" {
		t.Fatalf("single page: got %+v", chunks)
	}
}
