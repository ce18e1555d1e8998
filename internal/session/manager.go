package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coursechat/backend/internal/models"
	"github.com/coursechat/backend/pkg/utils"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Redis key layouts
const (
	sessionKey = "session:%s"
	historyKey = "session:%s:history"
)

// Manager owns conversation sessions. A session is an opaque identifier plus
// a TTL-bounded list of question/answer exchanges in Redis.
type Manager struct {
	client     *redis.Client
	logger     *logrus.Logger
	ttl        time.Duration
	maxHistory int
}

func NewManager(client *redis.Client, logger *logrus.Logger, ttl time.Duration, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = 10
	}
	return &Manager{
		client:     client,
		logger:     logger,
		ttl:        ttl,
		maxHistory: maxHistory,
	}
}

// Create mints a new session identifier and registers it.
func (m *Manager) Create(ctx context.Context) (string, error) {
	id := utils.NewSessionID()
	key := fmt.Sprintf(sessionKey, id)

	if err := m.client.Set(ctx, key, time.Now().Format(time.RFC3339), m.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	m.logger.WithField("session_id", id).Debug("Session created")
	return id, nil
}

// History returns the recorded exchanges for a session, oldest first. An
// unknown session has an empty history; that is not an error.
func (m *Manager) History(ctx context.Context, sessionID string) ([]models.Exchange, error) {
	key := fmt.Sprintf(historyKey, sessionID)

	entries, err := m.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session history: %w", err)
	}

	history := make([]models.Exchange, 0, len(entries))
	for _, entry := range entries {
		var exchange models.Exchange
		if err := json.Unmarshal([]byte(entry), &exchange); err != nil {
			m.logger.WithError(err).WithField("session_id", sessionID).Warn("Skipping malformed history entry")
			continue
		}
		history = append(history, exchange)
	}

	return history, nil
}

// AppendExchange records one answered query, trimming history to the
// configured maximum and refreshing the session TTL.
func (m *Manager) AppendExchange(ctx context.Context, sessionID, query, answer string) error {
	key := fmt.Sprintf(historyKey, sessionID)

	data, err := json.Marshal(models.Exchange{Query: query, Answer: answer})
	if err != nil {
		return fmt.Errorf("failed to marshal exchange: %w", err)
	}

	pipe := m.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, int64(-m.maxHistory), -1)
	pipe.Expire(ctx, key, m.ttl)
	pipe.Expire(ctx, fmt.Sprintf(sessionKey, sessionID), m.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append exchange: %w", err)
	}

	return nil
}

// Clear removes a session and its history.
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	return m.client.Del(ctx,
		fmt.Sprintf(sessionKey, sessionID),
		fmt.Sprintf(historyKey, sessionID),
	).Err()
}
