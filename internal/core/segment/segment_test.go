package segment

import "testing"

func TestSplitSentences(t *testing.T) {
	sentences := Split("Hello world. How are you? Great!", nil)

	want := []string{"Hello world.", "How are you?", "Great!"}
	if len(sentences) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %+v", len(want), len(sentences), sentences)
	}
	for i, s := range sentences {
		if s.Text != want[i] {
			t.Fatalf("sentence %d: got %q want %q", i, s.Text, want[i])
		}
		if s.Page != nil {
			t.Fatalf("sentence %d: expected nil page", i)
		}
	}
}

func TestSplitKeepsTrailingFragment(t *testing.T) {
	sentences := Split("First sentence. and then a trailing fragment", nil)
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}
	if sentences[1].Text != "and then a trailing fragment" {
		t.Fatalf("trailing fragment lost: %q", sentences[1].Text)
	}
}

func TestSplitDoesNotBreakDecimals(t *testing.T) {
	sentences := Split("Pi is 3.14 roughly. Yes.", nil)
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %+v", len(sentences), sentences)
	}
	if sentences[0].Text != "Pi is 3.14 roughly." {
		t.Fatalf("decimal split: %q", sentences[0].Text)
	}
}

func TestSplitPropagatesPage(t *testing.T) {
	page := 3
	sentences := Split("One. Two.", &page)
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}
	for i, s := range sentences {
		if s.Page == nil || *s.Page != 3 {
			t.Fatalf("sentence %d: page not propagated", i)
		}
	}
}

func TestSplitEmpty(t *testing.T) {
	if got := Split("", nil); got != nil {
		t.Fatalf("expected nil for empty input, got %+v", got)
	}
	if got := Split("   \n\t ", nil); got != nil {
		t.Fatalf("expected nil for whitespace input, got %+v", got)
	}
}

func TestCleanNormalizesWhitespaceAndNUL(t *testing.T) {
	got := Clean("a\x00b   c\n\nd\te")
	want := "a b c d e"
	if got != want {
		t.Fatalf("Clean: got %q want %q", got, want)
	}
}
