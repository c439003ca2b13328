package retriever

import (
	"context"
	"errors"
	"strings"

	"docqa/internal/vectorstore"
	"docqa/pkg/openrouter"
)

// EmbedQuestion embeds a single question for retrieval.
func EmbedQuestion(ctx context.Context, question string) ([]float32, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.New("empty question")
	}
	client, err := openrouter.NewClient()
	if err != nil {
		return nil, err
	}
	vectors, err := client.Embeddings(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// Search returns the topK nearest chunks for an embedded question.
func Search(ctx context.Context, query []float32, topK int) ([]vectorstore.Hit, error) {
	return vectorstore.Search(ctx, query, topK)
}
