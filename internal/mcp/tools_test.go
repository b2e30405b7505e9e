package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
)

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return res, text.Text
}

func decode(t *testing.T, text string) ToolResponse {
	t.Helper()
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp), text)
	return resp
}

func resetSession(t *testing.T) {
	t.Cleanup(func() {
		sessionMu.Lock()
		defer sessionMu.Unlock()
		if activeSession != nil {
			activeSession.Close()
			activeSession = nil
		}
	})
}

func TestToolsRequireGame(t *testing.T) {
	resetSession(t)
	for _, h := range []func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		handlePlayCard, handleChooseFinalCards, handleQuitGame, handleGetGameState,
	} {
		res, text := callTool(t, h, map[string]any{"index": 0})
		assert.True(t, res.IsError)
		assert.Contains(t, text, "start_game")
	}
}

func TestFullGameThroughTools(t *testing.T) {
	resetSession(t)

	res, text := callTool(t, handleStartGame, map[string]any{"name": "Claude", "opponents": 2, "seed": 11})
	require.False(t, res.IsError, text)
	resp := decode(t, text)
	require.NotNil(t, resp.Pending)
	assert.Equal(t, DecisionPlayCard, resp.Pending.Type)
	assert.Len(t, resp.Pending.Hand, game.InitialHandSize)
	assert.Len(t, resp.Pending.Previews, game.InitialHandSize)
	assert.NotEmpty(t, resp.GameID)
	require.NotNil(t, resp.State)
	assert.Equal(t, "Claude", resp.State.You)
	assert.Len(t, resp.State.Players, 3)

	res, text = callTool(t, handleStartGame, map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "already running")

	// Wrong tool for the pending decision.
	res, text = callTool(t, handleChooseFinalCards, map[string]any{"first": 0, "second": 1})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "Wrong tool")

	res, _ = callTool(t, handlePlayCard, map[string]any{"index": 99})
	assert.True(t, res.IsError)

	res, text = callTool(t, handleGetGameState, nil)
	require.False(t, res.IsError, text)
	state := decode(t, text)
	require.NotNil(t, state.Pending)
	assert.Equal(t, DecisionPlayCard, state.Pending.Type)

	var seenEvents int
	for steps := 0; steps < 200; steps++ {
		seenEvents += len(resp.Events)
		for _, ev := range resp.Events {
			if ev.Type == log.EventDraw.String() && ev.Player != "Claude" {
				assert.Empty(t, ev.Card, "opponent draws stay hidden")
			}
		}
		if resp.GameOver {
			break
		}
		switch resp.Pending.Type {
		case DecisionPlayCard:
			res, text = callTool(t, handlePlayCard, map[string]any{"index": 0})
		case DecisionChooseFinal:
			res, text = callTool(t, handleChooseFinalCards, map[string]any{"first": 0, "second": 1})
		}
		require.False(t, res.IsError, text)
		resp = decode(t, text)
	}

	require.True(t, resp.GameOver)
	require.NotNil(t, resp.Result)
	assert.Len(t, resp.Result.Standings, 3)
	assert.NotEmpty(t, resp.Result.Winner)
	assert.Greater(t, seenEvents, 0)
	assert.Empty(t, resp.Error)

	sessionMu.Lock()
	assert.Nil(t, activeSession, "finished game frees the slot")
	sessionMu.Unlock()
}

func TestQuitGame(t *testing.T) {
	resetSession(t)

	res, text := callTool(t, handleStartGame, map[string]any{"opponents": 1, "seed": 5})
	require.False(t, res.IsError, text)

	res, text = callTool(t, handleQuitGame, nil)
	require.False(t, res.IsError, text)
	resp := decode(t, text)
	require.True(t, resp.GameOver)
	require.NotNil(t, resp.Result)
	require.Len(t, resp.Result.Standings, 1, "only the computer player is ranked")
	assert.Equal(t, "Alice", resp.Result.Winner)
}

func TestStartGameValidation(t *testing.T) {
	resetSession(t)

	res, text := callTool(t, handleStartGame, map[string]any{"opponents": 6})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "opponents")

	_, err := NewGameSession(SessionConfig{Opponents: 0})
	assert.ErrorIs(t, err, game.ErrInvalidPlayerCount)
}

func TestOpponentNamesSkipAgent(t *testing.T) {
	sess, err := NewGameSession(SessionConfig{Name: "alice", Opponents: 5, Seed: 3})
	require.NoError(t, err)
	defer sess.Close()

	resp, err := sess.waitForPending(context.Background())
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, p := range resp.State.Players {
		names[p.Name] = true
	}
	assert.Len(t, names, 6)
	assert.False(t, names["Alice"])
	assert.True(t, names["alice"])
}

func TestBuildPreviews(t *testing.T) {
	parade := []game.Card{game.NewCard(game.Red, 8), game.NewCard(game.Blue, 2), game.NewCard(game.Green, 5)}
	hand := []game.Card{game.NewCard(game.Red, 1), game.NewCard(game.Yellow, 10)}

	previews := buildPreviews(parade, hand, game.Rules{})
	require.Len(t, previews, 2)
	require.Len(t, previews[0].Takes, 1)
	assert.Equal(t, "Red 8", previews[0].Takes[0].Label)
	assert.Equal(t, 8, previews[0].Points)
	assert.Empty(t, previews[1].Takes)
}
