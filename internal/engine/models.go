package engine

import "github.com/coursechat/backend/internal/models"

// Request models
type AnswerRequest struct {
	Query     string            `json:"query"`
	SessionID string            `json:"session_id,omitempty"`
	History   []models.Exchange `json:"history,omitempty"`
	MaxChunks int               `json:"max_chunks,omitempty"`
}

type AddDocumentsRequest struct {
	Documents []Document  `json:"documents"`
	Course    string      `json:"course,omitempty"`
	Metadata  interface{} `json:"metadata,omitempty"`
}

type Document struct {
	Content  string `json:"content"`
	FileName string `json:"fileName,omitempty"`
	FileType string `json:"fileType,omitempty"`
}

type DeleteDocumentsRequest struct {
	Course string `json:"course,omitempty"`
	ByDoc  bool   `json:"by_doc,omitempty"`
}

// Response models
type AnswerResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}
