package query

// Request is the question payload.
type Request struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

// Source is one retrieved chunk shown alongside the answer; Index matches
// the inline [n] citations in the answer text.
type Source struct {
	Index       int     `json:"index"`
	FileName    string  `json:"file_name"`
	PageLabel   string  `json:"page_label"`
	ChunkNumber int32   `json:"chunk_number"`
	Text        string  `json:"text"`
	Score       float32 `json:"score"`
}

// Response carries the grounded answer and its sources.
type Response struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}
