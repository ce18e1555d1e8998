package engine

import (
	"context"
	"fmt"

	"github.com/coursechat/backend/internal/models"
	"github.com/sirupsen/logrus"
)

type Service struct {
	client *Client
	logger *logrus.Logger
}

func NewService(client *Client, logger *logrus.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Answer asks the engine to answer a query in the context of the given
// conversation history. No retry here: a failed answer goes straight back to
// the caller.
func (s *Service) Answer(ctx context.Context, query, sessionID string, history []models.Exchange) (*AnswerResponse, error) {
	req := AnswerRequest{
		Query:     query,
		SessionID: sessionID,
		History:   history,
		MaxChunks: 5,
	}

	return s.client.Answer(ctx, req)
}

// AddCourseDocument uploads one course document to the engine's index.
func (s *Service) AddCourseDocument(ctx context.Context, courseTitle, fileName, content string) error {
	req := AddDocumentsRequest{
		Documents: []Document{{
			Content:  content,
			FileName: fileName,
			FileType: "text/plain",
		}},
		Course: fmt.Sprintf("course/%s", courseTitle),
		Metadata: map[string]interface{}{
			"course_title": courseTitle,
		},
	}

	return s.client.AddDocumentsWithRetry(ctx, req)
}

// RemoveCourse drops all of a course's documents from the engine's index.
func (s *Service) RemoveCourse(ctx context.Context, courseTitle string) error {
	req := DeleteDocumentsRequest{
		Course: fmt.Sprintf("course/%s", courseTitle),
		ByDoc:  true,
	}

	return s.client.DeleteDocuments(ctx, req)
}
