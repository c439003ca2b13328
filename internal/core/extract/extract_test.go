package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSentencesFromText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("First sentence. Second one! Third?"), 0o644); err != nil {
		t.Fatal(err)
	}

	sentences, numPages, err := Sentences(path)
	if err != nil {
		t.Fatalf("Sentences: %v", err)
	}
	if numPages != 0 {
		t.Fatalf("txt should have no page count, got %d", numPages)
	}
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(sentences))
	}
	for i, s := range sentences {
		if s.Page != nil {
			t.Fatalf("sentence %d: txt sentences must not carry pages", i)
		}
	}
}

func TestSentencesUnsupportedFormat(t *testing.T) {
	if _, _, err := Sentences("report.xlsx"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestSupported(t *testing.T) {
	for _, ext := range []string{".txt", ".docx", ".pdf", ".PDF"} {
		if !Supported(ext) {
			t.Fatalf("%s should be supported", ext)
		}
	}
	for _, ext := range []string{".xlsx", ".md", ""} {
		if Supported(ext) {
			t.Fatalf("%s should not be supported", ext)
		}
	}
}
