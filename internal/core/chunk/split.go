package chunk

import "strings"

// splitByTokens slices an oversized sentence into pieces of at most target
// tokens by sliding a token window. The window advances by target-overlap
// tokens; when overlap >= target the step falls back to the full window so
// the walk always terminates.
func (b *Builder) splitByTokens(text string, target int) []string {
	toks := b.Tok.Encode(text)
	if len(toks) <= target {
		return []string{text}
	}

	overlap := b.OverlapTokens
	if overlap < 0 {
		overlap = 0
	}
	step := target - overlap
	if step <= 0 {
		step = target
	}

	var pieces []string
	for start := 0; start < len(toks); start += step {
		end := start + target
		if end > len(toks) {
			end = len(toks)
		}
		piece := strings.TrimSpace(b.Tok.Decode(toks[start:end]))
		if piece != "" {
			pieces = append(pieces, piece)
		}
		if end == len(toks) {
			break
		}
	}
	return pieces
}
