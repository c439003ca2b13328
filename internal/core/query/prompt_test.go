package query

import (
	"strings"
	"testing"
)

func TestBuildPromptCitations(t *testing.T) {
	sources := []Source{
		{Index: 1, FileName: "report", PageLabel: "3-5", ChunkNumber: 2, Text: "Revenue grew."},
		{Index: 2, FileName: "notes", PageLabel: "7", ChunkNumber: 1, Text: "Costs fell."},
	}
	messages := BuildPrompt("What happened?", sources)

	if len(messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(messages))
	}
	if messages[0].Role != "system" {
		t.Fatalf("first message role: %q", messages[0].Role)
	}
	if !strings.Contains(messages[0].Content, "cite it inline like [1]") {
		t.Fatalf("system prompt missing citation rule")
	}

	user := messages[1].Content
	if messages[1].Role != "user" {
		t.Fatalf("second message role: %q", messages[1].Role)
	}
	if !strings.Contains(user, "QUESTION:\nWhat happened?") {
		t.Fatalf("user prompt missing question:\n%s", user)
	}
	if !strings.Contains(user, "[1] file=report | page=3-5 | chunk=2\nRevenue grew.") {
		t.Fatalf("user prompt missing first context line:\n%s", user)
	}
	if !strings.Contains(user, "[2] file=notes | page=7 | chunk=1\nCosts fell.") {
		t.Fatalf("user prompt missing second context line:\n%s", user)
	}
}

func TestBuildPromptNoSources(t *testing.T) {
	messages := BuildPrompt("Anything?", nil)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if !strings.Contains(messages[1].Content, "If context is empty or insufficient, say you don't know.") {
		t.Fatalf("user prompt missing empty-context instruction")
	}
}
