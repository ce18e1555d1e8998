// backend/internal/api/handlers/rag.go
package handlers

import (
	"context"
	"net/http"

	"github.com/coursechat/backend/internal/models"
	"github.com/coursechat/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RAGBackend is the capability surface the API layer needs from the RAG
// system: mint a session, answer a query under a session, report catalog
// analytics. The production system and the test double both satisfy it.
type RAGBackend interface {
	CreateSession(ctx context.Context) (string, error)
	Answer(ctx context.Context, query, sessionID string) (answer string, sources []string, err error)
	CourseAnalytics(ctx context.Context) (*models.CourseAnalytics, error)
}

type RAGHandler struct {
	backend RAGBackend
	logger  *logrus.Logger
}

func NewRAGHandler(backend RAGBackend, logger *logrus.Logger) *RAGHandler {
	return &RAGHandler{
		backend: backend,
		logger:  logger,
	}
}

// HandleQuery processes course-material questions. A request without a
// session_id gets a fresh session, created at most once; the resolved id is
// echoed back verbatim. An empty query string is valid and forwarded as-is.
func (h *RAGHandler) HandleQuery(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("Invalid query request")
		utils.DetailResponse(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx := c.Request.Context()

	sessionID := req.SessionID
	if sessionID == "" {
		created, err := h.backend.CreateSession(ctx)
		if err != nil {
			h.logger.WithError(err).Error("Session creation failed")
			utils.DetailResponse(c, http.StatusInternalServerError, err.Error())
			return
		}
		sessionID = created
	}

	answer, sources, err := h.backend.Answer(ctx, *req.Query, sessionID)
	if err != nil {
		h.logger.WithError(err).WithField("session_id", sessionID).Error("Query failed")
		utils.DetailResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	if sources == nil {
		sources = []string{}
	}

	h.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"sources":    len(sources),
	}).Info("Query answered")

	c.JSON(http.StatusOK, models.QueryResponse{
		Answer:    answer,
		Sources:   sources,
		SessionID: sessionID,
	})
}

// HandleCourseStats reports catalog analytics verbatim from the backend.
func (h *RAGHandler) HandleCourseStats(c *gin.Context) {
	analytics, err := h.backend.CourseAnalytics(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Course analytics failed")
		utils.DetailResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	titles := analytics.CourseTitles
	if titles == nil {
		titles = []string{}
	}

	c.JSON(http.StatusOK, models.CourseStats{
		TotalCourses: analytics.TotalCourses,
		CourseTitles: titles,
	})
}
