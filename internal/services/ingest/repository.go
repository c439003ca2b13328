package ingest

import (
	"context"

	"docqa/internal/database"
	"docqa/internal/database/model"
)

func getDocumentByID(ctx context.Context, docID int64) (*model.Document, error) {
	return database.GetEntityByID[model.Document](ctx, docID)
}

func updateDocumentStatus(ctx context.Context, docID int64, status string) error {
	return database.UpdateEntityByID[model.Document](ctx, docID, map[string]interface{}{
		"status": status,
	})
}

func markDocumentReady(ctx context.Context, docID int64, numChunks int, numPages *int) error {
	return database.UpdateEntityByID[model.Document](ctx, docID, map[string]interface{}{
		"status":     model.StatusReady,
		"num_chunks": numChunks,
		"num_pages":  numPages,
	})
}
