// backend/internal/rag/system.go
package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/coursechat/backend/internal/engine"
	"github.com/coursechat/backend/internal/models"
	"github.com/coursechat/backend/internal/session"
	"github.com/sirupsen/logrus"
)

// System is the production RAG backend behind the API layer. It owns session
// state, delegates answering to the remote engine, and reports catalog
// analytics from the course repository.
type System struct {
	engineService *engine.Service
	sessions      *session.Manager
	courses       models.CourseRepository
	queryLogs     models.QueryLogRepository
	logger        *logrus.Logger
}

func NewSystem(
	engineService *engine.Service,
	sessions *session.Manager,
	courses models.CourseRepository,
	queryLogs models.QueryLogRepository,
	logger *logrus.Logger,
) *System {
	return &System{
		engineService: engineService,
		sessions:      sessions,
		courses:       courses,
		queryLogs:     queryLogs,
		logger:        logger,
	}
}

// CreateSession mints a new session for a conversation.
func (s *System) CreateSession(ctx context.Context) (string, error) {
	return s.sessions.Create(ctx)
}

// Answer resolves a query under the given session: prior exchanges feed the
// engine as context, and the new exchange is recorded on success.
func (s *System) Answer(ctx context.Context, query, sessionID string) (string, []string, error) {
	startTime := time.Now()

	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		// A session with unreadable history can still be answered; the
		// exchange record below will fail loudly if Redis is really gone.
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Failed to load session history")
		history = nil
	}

	response, err := s.engineService.Answer(ctx, query, sessionID, history)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"session_id": sessionID,
		}).Error("Engine answer failed")
		return "", nil, fmt.Errorf("query failed: %w", err)
	}

	if err := s.sessions.AppendExchange(ctx, sessionID, query, response.Answer); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Failed to record exchange")
	}

	s.logQuery(query, sessionID, len(response.Sources), time.Since(startTime))

	return response.Answer, response.Sources, nil
}

// CourseAnalytics reports the catalog size and titles in catalog order.
func (s *System) CourseAnalytics(ctx context.Context) (*models.CourseAnalytics, error) {
	count, err := s.courses.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	titles, err := s.courses.TitlesInOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to list course titles: %w", err)
	}

	return &models.CourseAnalytics{
		TotalCourses: int(count),
		CourseTitles: titles,
	}, nil
}

func (s *System) logQuery(query, sessionID string, sourcesCount int, elapsed time.Duration) {
	entry := &models.QueryLog{
		QueryText:      query,
		SessionID:      sessionID,
		SourcesCount:   sourcesCount,
		AskedAt:        time.Now(),
		ResponseTimeMs: int(elapsed.Milliseconds()),
	}

	if err := s.queryLogs.Create(entry); err != nil {
		s.logger.WithError(err).Error("Failed to log query")
	}
}
