package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewManager(client, logrus.New(), 30*time.Minute, 3), mr
}

func TestManager_Create(t *testing.T) {
	manager, mr := newTestManager(t)
	ctx := context.Background()

	first, err := manager.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := manager.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	assert.True(t, mr.Exists("session:"+first))
	assert.True(t, mr.Exists("session:"+second))
}

func TestManager_HistoryOrder(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	id, err := manager.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, manager.AppendExchange(ctx, id, "first question", "first answer"))
	require.NoError(t, manager.AppendExchange(ctx, id, "second question", "second answer"))

	history, err := manager.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "first question", history[0].Query)
	assert.Equal(t, "first answer", history[0].Answer)
	assert.Equal(t, "second question", history[1].Query)
}

func TestManager_HistoryTrimmed(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	id, err := manager.Create(ctx)
	require.NoError(t, err)

	for _, q := range []string{"q1", "q2", "q3", "q4", "q5"} {
		require.NoError(t, manager.AppendExchange(ctx, id, q, "a"))
	}

	history, err := manager.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 3, "history is capped at maxHistory")
	assert.Equal(t, "q3", history[0].Query)
	assert.Equal(t, "q5", history[2].Query)
}

func TestManager_UnknownSessionHasEmptyHistory(t *testing.T) {
	manager, _ := newTestManager(t)

	history, err := manager.History(context.Background(), "session_1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestManager_SessionExpires(t *testing.T) {
	manager, mr := newTestManager(t)
	ctx := context.Background()

	id, err := manager.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, manager.AppendExchange(ctx, id, "question", "answer"))

	mr.FastForward(31 * time.Minute)

	history, err := manager.History(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestManager_Clear(t *testing.T) {
	manager, mr := newTestManager(t)
	ctx := context.Background()

	id, err := manager.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, manager.AppendExchange(ctx, id, "question", "answer"))

	require.NoError(t, manager.Clear(ctx, id))

	assert.False(t, mr.Exists("session:"+id))
	assert.False(t, mr.Exists("session:"+id+":history"))
}
