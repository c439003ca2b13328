package query

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"docqa/config"
	"docqa/internal/core/retriever"
	"docqa/internal/database"
	"docqa/internal/database/model"
	"docqa/pkg/logger"
	"docqa/pkg/openrouter"
)

// Run executes the query flow: embed -> search -> prompt -> LLM -> persist.
func Run(ctx context.Context, req Request) (Response, error) {
	if req.TopK <= 0 || req.TopK > 64 {
		req.TopK = config.Cfg.Retriever.TopK
	}

	question := strings.TrimSpace(req.Question)

	vec, err := retriever.EmbedQuestion(ctx, question)
	if err != nil {
		logger.Error(err, "%v: embed question failed", config.ModuleQuery)
		return Response{}, err
	}

	hits, err := retriever.Search(ctx, vec, req.TopK)
	if err != nil {
		logger.Error(err, "%v: vector search failed", config.ModuleQuery)
		return Response{}, err
	}

	sources := make([]Source, 0, len(hits))
	for i, h := range hits {
		sources = append(sources, Source{
			Index:       i + 1,
			FileName:    h.FileName,
			PageLabel:   h.PageLabel,
			ChunkNumber: h.ChunkNumber,
			Text:        h.EmbeddedText,
			Score:       h.Score,
		})
	}

	client, err := openrouter.NewClient()
	if err != nil {
		return Response{}, err
	}

	llmCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	answer, err := client.Chat(llmCtx, BuildPrompt(question, sources))
	if err != nil {
		logger.Error(err, "%v: chat completion failed", config.ModuleQuery)
		return Response{}, err
	}

	if err := persistHistory(ctx, question, answer, sources); err != nil {
		logger.Error(err, "%v: persist history failed", config.ModuleQuery)
	}

	return Response{Answer: answer, Sources: sources}, nil
}

func persistHistory(ctx context.Context, question, answer string, sources []Source) error {
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return err
	}
	now := time.Now()
	row := model.History{
		Question:    question,
		Answer:      answer,
		SourcesJSON: string(sourcesJSON),
		CreatedAt:   &now,
	}
	return database.CreateEntity(ctx, &row)
}
