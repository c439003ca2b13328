package vectorstore

import (
	"context"
	"fmt"

	"docqa/config"
	"docqa/internal/core/chunk"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	milvusentity "github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// vectorDim matches openai/text-embedding-3-large.
const vectorDim = 3072

// Hit is one retrieved chunk with its similarity score.
type Hit struct {
	ID           int64
	DocID        int64
	ChunkNumber  int32
	PageLabel    string
	FileName     string
	EmbeddedText string
	Score        float32
}

// ChunkID builds the deterministic primary key for a chunk: the composite of
// document id and chunk number. Chunk numbers stay well below 2^20.
func ChunkID(docID int64, chunkNumber int) int64 {
	return (docID << 20) + int64(chunkNumber)
}

func collectionName() string {
	collection := config.Cfg.Milvus.Collection
	if collection == "" {
		collection = "doc_chunks"
	}
	return collection
}

// InsertChunks ensures the collection exists and bulk-inserts one row per
// chunk with its embedding and citation metadata.
func InsertChunks(ctx context.Context, docID int64, fileName string, chunks []chunk.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}

	cli, err := milvusclient.NewClient(ctx, milvusclient.Config{Address: config.Cfg.Milvus.Address})
	if err != nil {
		return err
	}
	defer cli.Close()

	collection := collectionName()
	exists, err := cli.HasCollection(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		if err := createChunksCollection(ctx, cli, collection); err != nil {
			return err
		}
	}

	ids := make([]int64, len(chunks))
	docIDs := make([]int64, len(chunks))
	chunkNumbers := make([]int32, len(chunks))
	pageLabels := make([]string, len(chunks))
	fileNames := make([]string, len(chunks))
	embeddedTexts := make([]string, len(chunks))
	for i, ch := range chunks {
		ids[i] = ChunkID(docID, ch.ChunkNumber)
		docIDs[i] = docID
		chunkNumbers[i] = int32(ch.ChunkNumber)
		pageLabels[i] = ch.PageLabel
		fileNames[i] = fileName
		embeddedTexts[i] = ch.EmbeddedText
	}

	_, err = cli.Insert(ctx, collection, "",
		milvusentity.NewColumnInt64("id", ids),
		milvusentity.NewColumnInt64("doc_id", docIDs),
		milvusentity.NewColumnInt32("chunk_number", chunkNumbers),
		milvusentity.NewColumnVarChar("page_label", pageLabels),
		milvusentity.NewColumnVarChar("file_name", fileNames),
		milvusentity.NewColumnVarChar("embedded_text", embeddedTexts),
		milvusentity.NewColumnFloatVector("embedding", vectorDim, vectors),
	)
	return err
}

// DeleteByDoc removes every chunk row belonging to the document.
func DeleteByDoc(ctx context.Context, docID int64) error {
	cli, err := milvusclient.NewClient(ctx, milvusclient.Config{Address: config.Cfg.Milvus.Address})
	if err != nil {
		return err
	}
	defer cli.Close()

	collection := collectionName()
	exists, err := cli.HasCollection(ctx, collection)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return cli.Delete(ctx, collection, "", fmt.Sprintf("doc_id == %d", docID))
}

// Search runs a vector similarity search and returns topK hits with their
// citation metadata.
func Search(ctx context.Context, query []float32, topK int) ([]Hit, error) {
	if topK <= 0 {
		topK = 6
	}
	if len(query) == 0 {
		return []Hit{}, nil
	}

	cli, err := milvusclient.NewClient(ctx, milvusclient.Config{Address: config.Cfg.Milvus.Address})
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	collection := collectionName()
	exists, err := cli.HasCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []Hit{}, nil
	}
	if err := cli.LoadCollection(ctx, collection, false); err != nil {
		return nil, err
	}

	metricType := milvusentity.MetricType(config.Cfg.Milvus.MetricType)
	if metricType == "" {
		metricType = milvusentity.COSINE
	}
	searchParam, err := milvusentity.NewIndexHNSWSearchParam(64)
	if err != nil {
		return nil, err
	}

	outputFields := []string{"id", "doc_id", "chunk_number", "page_label", "file_name", "embedded_text"}
	results, err := cli.Search(
		ctx,
		collection,
		nil,
		"",
		outputFields,
		[]milvusentity.Vector{milvusentity.FloatVector(query)},
		"embedding",
		metricType,
		topK,
		searchParam,
	)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []Hit{}, nil
	}

	it := results[0]
	hits := make([]Hit, 0, it.ResultCount)
	for i := 0; i < it.ResultCount; i++ {
		var h Hit
		h.ID = it.IDs.(*milvusentity.ColumnInt64).Data()[i]
		h.Score = it.Scores[i]

		for _, field := range it.Fields {
			switch col := field.(type) {
			case *milvusentity.ColumnInt64:
				if col.Name() == "doc_id" {
					h.DocID = col.Data()[i]
				}
			case *milvusentity.ColumnInt32:
				if col.Name() == "chunk_number" {
					h.ChunkNumber = col.Data()[i]
				}
			case *milvusentity.ColumnVarChar:
				switch col.Name() {
				case "page_label":
					h.PageLabel = col.Data()[i]
				case "file_name":
					h.FileName = col.Data()[i]
				case "embedded_text":
					h.EmbeddedText = col.Data()[i]
				}
			}
		}
		hits = append(hits, h)
	}
	return hits, nil
}

func createChunksCollection(ctx context.Context, cli milvusclient.Client, collection string) error {
	schema := milvusentity.NewSchema().WithName(collection).WithDescription("document chunks")
	schema.WithField(milvusentity.NewField().WithName("id").WithDataType(milvusentity.FieldTypeInt64).WithIsPrimaryKey(true))
	schema.WithField(milvusentity.NewField().WithName("doc_id").WithDataType(milvusentity.FieldTypeInt64))
	schema.WithField(milvusentity.NewField().WithName("chunk_number").WithDataType(milvusentity.FieldTypeInt32))
	schema.WithField(milvusentity.NewField().WithName("page_label").WithDataType(milvusentity.FieldTypeVarChar).WithMaxLength(128))
	schema.WithField(milvusentity.NewField().WithName("file_name").WithDataType(milvusentity.FieldTypeVarChar).WithMaxLength(512))
	schema.WithField(milvusentity.NewField().WithName("embedded_text").WithDataType(milvusentity.FieldTypeVarChar).WithMaxLength(65535))
	schema.WithField(milvusentity.NewField().WithName("embedding").WithDataType(milvusentity.FieldTypeFloatVector).WithDim(vectorDim))

	if err := cli.CreateCollection(ctx, schema, 2); err != nil {
		return err
	}

	metricType := milvusentity.MetricType(config.Cfg.Milvus.MetricType)
	if metricType == "" {
		metricType = milvusentity.COSINE
	}
	index, err := milvusentity.NewIndexHNSW(metricType, 16, 200)
	if err != nil {
		return err
	}
	return cli.CreateIndex(ctx, collection, "embedding", index, false)
}
