package brackets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	return hub, cancel
}

func TestHub_PublishStandingsReachesRoom(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	inRoom := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomForTournament(7)}
	otherRoom := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomForTournament(8)}
	require.True(t, hub.Join(inRoom))
	require.True(t, hub.Join(otherRoom))
	require.Eventually(t, func() bool { return hub.ClientCount(RoomForTournament(7)) == 1 }, time.Second, 5*time.Millisecond)

	hub.PublishStandings(7, map[string]int{"rows": 4})

	select {
	case raw := <-inRoom.Send:
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MessageStandingsUpdated, msg.Type)
		assert.Equal(t, "tournament_7", msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("expected a message in room tournament_7")
	}
	assert.Empty(t, otherRoom.Send)
}

func TestHub_LeaveClosesClient(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomForTournament(1)}
	require.True(t, hub.Join(client))
	hub.Leave(client)

	require.Eventually(t, func() bool { return hub.ClientCount(RoomForTournament(1)) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-client.Send
	assert.False(t, open)
}

func TestHub_StoppedHubRejectsJoin(t *testing.T) {
	hub, cancel := newTestHub(t)
	cancel()

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomForTournament(1)}
	require.Eventually(t, func() bool { return !hub.Join(client) }, time.Second, 5*time.Millisecond)
	assert.NotPanics(t, func() { hub.Leave(client) })
}
