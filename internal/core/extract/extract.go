package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docqa/internal/core/segment"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Sentences extracts a document into ordered sentences. The page count is
// zero for formats without a page concept (.txt, .docx) and the number of
// PDF pages otherwise.
func Sentences(filePath string) ([]segment.Sentence, int, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".txt":
		return extractText(filePath)
	case ".docx":
		return extractDOCX(filePath)
	case ".pdf":
		return extractPDF(filePath)
	default:
		return nil, 0, fmt.Errorf("unsupported file format: %s", ext)
	}
}

// Supported reports whether the extension (with leading dot) can be ingested.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".txt", ".docx", ".pdf":
		return true
	}
	return false
}

func extractText(filePath string) ([]segment.Sentence, int, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, 0, err
	}
	return segment.Split(string(raw), nil), 0, nil
}

func extractDOCX(filePath string) ([]segment.Sentence, int, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	doc := r.Editable()
	var paragraphs []string
	for _, p := range strings.Split(doc.GetContent(), "\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return segment.Split(strings.Join(paragraphs, "\n"), nil), 0, nil
}

func extractPDF(filePath string) ([]segment.Sentence, int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, 0, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, 0, err
	}

	var sentences []segment.Sentence
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, 0, fmt.Errorf("page %d: %w", i, err)
		}
		pageNum := i
		sentences = append(sentences, segment.Split(pageText, &pageNum)...)
	}
	return sentences, numPages, nil
}
