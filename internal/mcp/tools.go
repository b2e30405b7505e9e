package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/parade/internal/game"
)

var (
	// sessionMu guards activeSession. Tool calls are serialized by the stdio
	// transport, but tests and HTTP transports may call concurrently.
	sessionMu sync.Mutex

	// activeSession is the singleton game session (one per stdio process).
	activeSession *GameSession

	// rules are the variants every new game uses, set by main.
	rules game.Rules

	// logger receives structured game events, set by main.
	logger *logrus.Logger
)

// SetRules sets the rule variants for new games.
func SetRules(r game.Rules) {
	rules = r
}

// SetLogger sets the operational logger. It must not write to stdout, which
// carries the MCP transport.
func SetLogger(l *logrus.Logger) {
	logger = l
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(playCardTool(), handlePlayCard)
	s.AddTool(chooseFinalCardsTool(), handleChooseFinalCards)
	s.AddTool(quitGameTool(), handleQuitGame)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new game of Parade against computer players. Returns the initial table and the first pending decision. "+
			"On each turn you play one hand card to the end of the parade. Counting back from the card before it, the last N "+
			"parade cards are safe, where N is the value you played. Any exposed card of the same color, or of value less than "+
			"or equal to yours, joins your collection. The lowest score wins."),
		mcp.WithString("name", mcp.Description("Your seat name (default \"Agent\")")),
		mcp.WithNumber("opponents", mcp.Description("Number of computer opponents, 1-5 (default 2)")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for a reproducible game (0 or omitted for random)")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from your hand onto the parade. Use this when the pending decision type is 'play_card'. "+
			"The previews list shows what each card would take."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the card in your hand")),
	)
}

func chooseFinalCardsTool() mcp.Tool {
	return mcp.NewTool("choose_final_cards",
		mcp.WithDescription("Choose the two hand cards to add to your collection at the end of the game. "+
			"Use this when the pending decision type is 'choose_final_cards'."),
		mcp.WithNumber("first", mcp.Required(), mcp.Description("0-based index of the first card")),
		mcp.WithNumber("second", mcp.Required(), mcp.Description("0-based index of the second card, different from first")),
	)
}

func quitGameTool() mcp.Tool {
	return mcp.NewTool("quit_game",
		mcp.WithDescription("Leave the game at your next decision. The computer players finish without you."),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	opponents := request.GetInt("opponents", 2)
	if opponents < game.MinPlayers-1 || opponents > game.MaxPlayers-1 {
		return mcp.NewToolResultErrorf("opponents must be between %d and %d", game.MinPlayers-1, game.MaxPlayers-1), nil
	}

	sess, err := NewGameSession(SessionConfig{
		Name:      request.GetString("name", "Agent"),
		Opponents: opponents,
		Seed:      int64(request.GetInt("seed", 0)),
		Rules:     rules,
		Logger:    logger,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	activeSession = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	sess, errResult := pendingSession(DecisionPlayCard)
	if errResult != nil {
		return errResult, nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(sess.currentPending.Hand) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(sess.currentPending.Hand)-1), nil
	}

	return respond(ctx, sess, PlayResponse{Index: index})
}

func handleChooseFinalCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	sess, errResult := pendingSession(DecisionChooseFinal)
	if errResult != nil {
		return errResult, nil
	}

	n := len(sess.currentPending.Hand)
	first := request.GetInt("first", -1)
	second := request.GetInt("second", -1)
	if first < 0 || first >= n || second < 0 || second >= n {
		return mcp.NewToolResultErrorf("Indexes must be 0-%d.", n-1), nil
	}
	if first == second {
		return mcp.NewToolResultError("Choose two different cards."), nil
	}

	return respond(ctx, sess, FinalResponse{First: first, Second: second})
}

func handleQuitGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	sess, errResult := pendingSession("")
	if errResult != nil {
		return errResult, nil
	}
	return respond(ctx, sess, QuitResponse{})
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession
	sess.mu.Lock()
	gameOver := sess.gameOver
	result := sess.result
	errMsg := sess.errMsg
	sess.mu.Unlock()

	resp := &ToolResponse{
		GameID:   sess.game.ID,
		Events:   sess.drainEvents(),
		State:    sess.agentState(),
		GameOver: gameOver,
		Result:   result,
		Error:    errMsg,
	}
	if p := sess.currentPending; !gameOver && p != nil {
		resp.Pending = &PendingView{Type: p.Type, Hand: p.Hand, Previews: p.Previews}
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// pendingSession checks that a game is waiting on the agent. An empty want
// accepts any decision type.
func pendingSession(want DecisionType) (*GameSession, *mcp.CallToolResult) {
	if activeSession == nil {
		return nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	sess := activeSession
	pending := sess.currentPending
	if pending == nil || pending.Type == DecisionGameOver {
		return nil, mcp.NewToolResultError("No pending decision.")
	}
	if want != "" && pending.Type != want {
		return nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want)
	}
	return sess, nil
}

// respond hands the answer to the blocked controller and waits for the
// game's next decision.
func respond(ctx context.Context, sess *GameSession, answer any) (*mcp.CallToolResult, error) {
	select {
	case sess.agentCtrl.responseCh <- answer:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Cancelled: %v", ctx.Err()), nil
	}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}
