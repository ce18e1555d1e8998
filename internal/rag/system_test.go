package rag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/coursechat/backend/internal/engine"
	"github.com/coursechat/backend/internal/models"
	"github.com/coursechat/backend/internal/session"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories standing in for the GORM implementations.

type fakeCourseRepo struct {
	titles []string
	err    error
}

func (r *fakeCourseRepo) Create(course *models.Course) error            { return r.err }
func (r *fakeCourseRepo) GetByTitle(title string) (*models.Course, error) { return nil, r.err }
func (r *fakeCourseRepo) GetActive() ([]models.Course, error)           { return nil, r.err }
func (r *fakeCourseRepo) Update(course *models.Course) error            { return r.err }
func (r *fakeCourseRepo) Delete(id uint) error                          { return r.err }

func (r *fakeCourseRepo) TitlesInOrder() ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.titles, nil
}

func (r *fakeCourseRepo) Count() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.titles)), nil
}

type fakeQueryLogRepo struct {
	created []*models.QueryLog
}

func (r *fakeQueryLogRepo) Create(log *models.QueryLog) error { r.created = append(r.created, log); return nil }
func (r *fakeQueryLogRepo) GetBySession(sessionID string) ([]models.QueryLog, error) { return nil, nil }
func (r *fakeQueryLogRepo) GetRecent(limit int) ([]models.QueryLog, error)           { return nil, nil }

func newTestSystem(t *testing.T, engineHandler http.HandlerFunc, courses *fakeCourseRepo, queryLogs *fakeQueryLogRepo) *System {
	t.Helper()

	server := httptest.NewServer(engineHandler)
	t.Cleanup(server.Close)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := logrus.New()
	sessions := session.NewManager(client, logger, 30*time.Minute, 10)
	engineService := engine.NewService(engine.NewClient(server.URL, "test-key", logger), logger)

	return NewSystem(engineService, sessions, courses, queryLogs, logger)
}

func TestSystem_Answer(t *testing.T) {
	var gotRequest engine.AnswerRequest
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		json.NewEncoder(w).Encode(engine.AnswerResponse{
			Answer:  "Python is a programming language.",
			Sources: []string{"Course: Intro to Python"},
		})
	}

	queryLogs := &fakeQueryLogRepo{}
	system := newTestSystem(t, handler, &fakeCourseRepo{}, queryLogs)
	ctx := context.Background()

	sessionID, err := system.CreateSession(ctx)
	require.NoError(t, err)

	answer, sources, err := system.Answer(ctx, "What is Python?", sessionID)
	require.NoError(t, err)
	assert.Equal(t, "Python is a programming language.", answer)
	assert.Equal(t, []string{"Course: Intro to Python"}, sources)
	assert.Equal(t, "What is Python?", gotRequest.Query)
	assert.Equal(t, sessionID, gotRequest.SessionID)

	require.Len(t, queryLogs.created, 1)
	assert.Equal(t, "What is Python?", queryLogs.created[0].QueryText)
	assert.Equal(t, sessionID, queryLogs.created[0].SessionID)
	assert.Equal(t, 1, queryLogs.created[0].SourcesCount)
}

func TestSystem_AnswerFeedsHistoryToEngine(t *testing.T) {
	answers := []string{"first answer", "second answer"}
	var lastRequest engine.AnswerRequest
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastRequest))
		answer := answers[0]
		if len(answers) > 1 {
			answers = answers[1:]
		}
		json.NewEncoder(w).Encode(engine.AnswerResponse{Answer: answer})
	}

	system := newTestSystem(t, handler, &fakeCourseRepo{}, &fakeQueryLogRepo{})
	ctx := context.Background()

	sessionID, err := system.CreateSession(ctx)
	require.NoError(t, err)

	_, _, err = system.Answer(ctx, "first question", sessionID)
	require.NoError(t, err)
	assert.Empty(t, lastRequest.History)

	_, _, err = system.Answer(ctx, "follow-up", sessionID)
	require.NoError(t, err)
	require.Len(t, lastRequest.History, 1)
	assert.Equal(t, "first question", lastRequest.History[0].Query)
	assert.Equal(t, "first answer", lastRequest.History[0].Answer)
}

func TestSystem_AnswerEngineFailure(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Vector DB unavailable"))
	}

	queryLogs := &fakeQueryLogRepo{}
	system := newTestSystem(t, handler, &fakeCourseRepo{}, queryLogs)

	_, _, err := system.Answer(context.Background(), "hello", "session_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Vector DB unavailable")
	assert.Empty(t, queryLogs.created, "failed queries are not logged")
}

func TestSystem_CourseAnalytics(t *testing.T) {
	courses := &fakeCourseRepo{titles: []string{"Advanced ML", "Intro to Python"}}
	system := newTestSystem(t, func(w http.ResponseWriter, r *http.Request) {}, courses, &fakeQueryLogRepo{})

	analytics, err := system.CourseAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, analytics.TotalCourses)
	assert.Equal(t, []string{"Advanced ML", "Intro to Python"}, analytics.CourseTitles)
}

func TestSystem_CourseAnalyticsEmptyCatalog(t *testing.T) {
	system := newTestSystem(t, func(w http.ResponseWriter, r *http.Request) {}, &fakeCourseRepo{}, &fakeQueryLogRepo{})

	analytics, err := system.CourseAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, analytics.TotalCourses)
	assert.Empty(t, analytics.CourseTitles)
}
