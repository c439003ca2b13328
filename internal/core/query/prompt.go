package query

import (
	"fmt"
	"strings"

	"docqa/pkg/openrouter"
)

const systemPrompt = "You are a retrieval-grounded assistant.\n" +
	"Rules:\n" +
	"1) Answer ONLY using the provided context. If the answer is not in the context, say you don't know.\n" +
	"2) Do NOT invent facts, numbers, diagnoses, citations, or sources.\n" +
	"3) When you use a context chunk, cite it inline like [1] or [2].\n" +
	"4) If multiple chunks support the same claim, cite multiple.\n" +
	"Style:\n" +
	"- Be direct. No filler.\n"

// BuildPrompt renders the retrieval-grounded message pair. Each context line
// carries the metadata the model needs for [n] citations.
func BuildPrompt(question string, sources []Source) []openrouter.Message {
	var ctxLines []string
	for _, s := range sources {
		meta := fmt.Sprintf("file=%s | page=%s | chunk=%d", s.FileName, s.PageLabel, s.ChunkNumber)
		ctxLines = append(ctxLines, fmt.Sprintf("[%d] %s\n%s\n", s.Index, meta, s.Text))
	}
	ctxBlock := strings.TrimSpace(strings.Join(ctxLines, "\n"))

	user := fmt.Sprintf(
		"QUESTION:\n%s\n\nCONTEXT:\n%s\n\nINSTRUCTIONS:\n- Use ONLY the context.\n- If context is empty or insufficient, say you don't know.\n",
		question, ctxBlock,
	)

	return []openrouter.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user},
	}
}
