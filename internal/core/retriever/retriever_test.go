package retriever

import (
	"context"
	"testing"
)

func TestEmbedQuestionEmpty(t *testing.T) {
	if _, err := EmbedQuestion(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty question")
	}
	if _, err := EmbedQuestion(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for blank question")
	}
}
