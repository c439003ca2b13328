package model

import "time"

// Document status lifecycle: uploaded -> processing -> ready | failed | empty.
// Only ready documents are queryable; their chunks exist in the vector store.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusFailed     = "failed"
	StatusEmpty      = "empty"
)

type Document struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	FileName         string     `gorm:"size:255;not null" json:"file_name"`
	OriginalFilename string     `gorm:"size:255;not null" json:"original_filename"`
	FileType         string     `gorm:"size:16;not null" json:"file_type"`
	StoragePath      string     `gorm:"size:512;not null" json:"storage_path"`
	Sha256           string     `gorm:"size:64" json:"sha256"`
	SizeBytes        int64      `gorm:"not null" json:"size_bytes"`
	NumPages         *int       `json:"num_pages"`
	NumChunks        int        `gorm:"not null;default:0" json:"num_chunks"`
	Status           string     `gorm:"size:32;not null;default:uploaded" json:"status"`
	CreatedAt        *time.Time `json:"created_at"`
}

type History struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Question    string     `gorm:"type:text;not null" json:"question"`
	Answer      string     `gorm:"type:text;not null" json:"answer"`
	SourcesJSON string     `gorm:"column:sources_json;type:text;not null" json:"-"`
	CreatedAt   *time.Time `json:"created_at"`
}

func (History) TableName() string { return "history" }
