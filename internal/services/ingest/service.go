package ingest

import (
	"context"
	"time"

	"docqa/config"
	"docqa/internal/core/chunk"
	"docqa/internal/core/extract"
	"docqa/internal/database/model"
	"docqa/internal/vectorstore"
	"docqa/pkg/logger"
	"docqa/pkg/openrouter"
	"docqa/pkg/tokenizer"
)

// RunIngestion orchestrates the pipeline for an uploaded document: extract
// sentences, chunk, embed in batches, insert vectors, update the registry
// row. Chunking and storage are all-or-nothing per document: a failure after
// a partial vector insert deletes what was written.
func RunIngestion(docID int64, force bool) {
	ctx := context.Background()

	doc, err := getDocumentByID(ctx, docID)
	if err != nil {
		logger.Error(err, "ingest: get document failed")
		return
	}
	logger.WithFields(map[string]interface{}{
		"doc_id":       docID,
		"storage_path": doc.StoragePath,
	}).Info("ingest: start")

	if doc.Status == model.StatusReady {
		if !force {
			logger.Info("ingest: document already indexed; skip (no force)")
			return
		}
		if err := vectorstore.DeleteByDoc(ctx, docID); err != nil {
			logger.Error(err, "ingest: cleanup vectors failed")
			return
		}
	}

	_ = updateDocumentStatus(ctx, docID, model.StatusProcessing)

	tmpPath, cleanup, err := FetchToLocalTemp(doc.StoragePath)
	if err != nil {
		logger.Error(err, "ingest: fetch file failed")
		_ = updateDocumentStatus(ctx, docID, model.StatusFailed)
		return
	}
	defer cleanup()

	sentences, numPages, err := extract.Sentences(tmpPath)
	if err != nil {
		logger.Error(err, "ingest: extract failed")
		_ = updateDocumentStatus(ctx, docID, model.StatusFailed)
		return
	}
	if len(sentences) == 0 {
		logger.Warn("ingest: document has no extractable text")
		_ = updateDocumentStatus(ctx, docID, model.StatusEmpty)
		return
	}
	logger.WithFields(map[string]interface{}{
		"doc_id":    docID,
		"sentences": len(sentences),
		"pages":     numPages,
	}).Info("ingest: extracted")

	tok, err := tokenizer.NewBPE(config.Cfg.Ingest.Encoding)
	if err != nil {
		logger.Error(err, "ingest: load tokenizer failed")
		_ = updateDocumentStatus(ctx, docID, model.StatusFailed)
		return
	}
	builder := chunk.Builder{
		Tok:           tok,
		TargetTokens:  config.Cfg.Ingest.ChunkTokens,
		OverlapTokens: config.Cfg.Ingest.OverlapTokens,
	}
	chunks := builder.Build(doc.FileName, sentences)
	if len(chunks) == 0 {
		_ = updateDocumentStatus(ctx, docID, model.StatusEmpty)
		return
	}
	logger.WithFields(map[string]interface{}{
		"doc_id":        docID,
		"chunks":        len(chunks),
		"chunk_tokens":  builder.TargetTokens,
		"overlap":       builder.OverlapTokens,
	}).Info("ingest: chunks built")

	client, err := openrouter.NewClient()
	if err != nil {
		logger.Error(err, "ingest: openrouter client failed")
		_ = updateDocumentStatus(ctx, docID, model.StatusFailed)
		return
	}

	inputs := make([]string, len(chunks))
	for i, ch := range chunks {
		inputs[i] = ch.EmbeddedText
	}

	embedCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()
	vectors, err := embedBatches(embedCtx, client, inputs)
	if err != nil {
		logger.Error(err, "ingest: embedding failed")
		_ = updateDocumentStatus(ctx, docID, model.StatusFailed)
		return
	}

	if err := vectorstore.InsertChunks(embedCtx, docID, doc.FileName, chunks, vectors); err != nil {
		logger.Error(err, "ingest: vector insert failed")
		// compensate a partial insert so no orphan vectors survive
		if delErr := vectorstore.DeleteByDoc(ctx, docID); delErr != nil {
			logger.Error(delErr, "ingest: compensating delete failed")
		}
		_ = updateDocumentStatus(ctx, docID, model.StatusFailed)
		return
	}

	var pages *int
	if numPages > 0 {
		pages = &numPages
	}
	if err := markDocumentReady(ctx, docID, len(chunks), pages); err != nil {
		logger.Error(err, "ingest: registry update failed")
		if delErr := vectorstore.DeleteByDoc(ctx, docID); delErr != nil {
			logger.Error(delErr, "ingest: compensating delete failed")
		}
		_ = updateDocumentStatus(ctx, docID, model.StatusFailed)
		return
	}

	logger.WithFields(map[string]interface{}{
		"doc_id": docID,
		"chunks": len(chunks),
	}).Info("ingest: done")
}

// embedBatches embeds inputs in configured batch sizes, preserving order.
func embedBatches(ctx context.Context, client *openrouter.Client, inputs []string) ([][]float32, error) {
	batchSize := config.Cfg.Ingest.EmbedBatch
	if batchSize <= 0 {
		batchSize = 64
	}

	all := make([][]float32, 0, len(inputs))
	for i := 0; i < len(inputs); i += batchSize {
		j := i + batchSize
		if j > len(inputs) {
			j = len(inputs)
		}
		logger.WithFields(map[string]interface{}{
			"batch_start": i,
			"batch_end":   j,
		}).Debug("ingest: embedding batch")

		vectors, err := client.Embeddings(ctx, inputs[i:j])
		if err != nil {
			return nil, err
		}
		all = append(all, vectors...)
	}
	return all, nil
}
