package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/parade/internal/dice"
	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
	"github.com/peterkuimelis/parade/internal/view"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionPlayCard    DecisionType = "play_card"
	DecisionChooseFinal DecisionType = "choose_final_cards"
	DecisionGameOver    DecisionType = "game_over"
)

// opponentNames seat the computer players, skipping the agent's own name.
var opponentNames = []string{"Alice", "Hatter", "March Hare", "Dormouse", "Cheshire", "Queen"}

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type     DecisionType    `json:"type"`
	State    *view.StateView `json:"state"`
	Hand     []view.CardView `json:"hand,omitempty"`
	Previews []PlayPreview   `json:"previews,omitempty"`
}

// PlayPreview tells the agent what playing a hand card would take.
type PlayPreview struct {
	Index  int             `json:"index"`
	Takes  []view.CardView `json:"takes"`
	Points int             `json:"points"`
}

// Response types sent back from MCP tools to controllers.

type PlayResponse struct {
	Index int
}

type FinalResponse struct {
	First, Second int
}

type QuitResponse struct{}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	GameID   string           `json:"game_id,omitempty"`
	Events   []view.EventView `json:"events"`
	State    *view.StateView  `json:"state,omitempty"`
	Pending  *PendingView     `json:"pending,omitempty"`
	GameOver bool             `json:"game_over"`
	Result   *view.ResultView `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type     DecisionType    `json:"type"`
	Hand     []view.CardView `json:"hand,omitempty"`
	Previews []PlayPreview   `json:"previews,omitempty"`
}

// SessionConfig describes the table the agent sits down at.
type SessionConfig struct {
	Name      string // the agent's seat name
	Opponents int    // computer players, 1..5
	Seed      int64  // 0 for random
	Rules     game.Rules
	Logger    *logrus.Logger // nil keeps events in memory only
}

// GameSession holds the state of a single MCP game session.
type GameSession struct {
	game      *game.Session
	agentCtrl *MCPController
	agentName string
	cancel    context.CancelFunc

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []view.EventView
	gameOver bool
	result   *view.ResultView
	errMsg   string
}

// NewGameSession seats the agent against random computer players and starts
// the game in a goroutine. Decisions arrive through waitForPending.
func NewGameSession(cfg SessionConfig) (*GameSession, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "Agent"
	}
	if cfg.Opponents < game.MinPlayers-1 || cfg.Opponents > game.MaxPlayers-1 {
		return nil, fmt.Errorf("%d opponents (want %d-%d): %w", cfg.Opponents, game.MinPlayers-1, game.MaxPlayers-1, game.ErrInvalidPlayerCount)
	}

	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = dice.NewSeed(); err != nil {
			return nil, err
		}
	}

	sess := &GameSession{
		agentName: name,
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.agentCtrl = NewMCPController(name, sess, cfg.Rules)

	seats := []game.Seat{{Name: name, Kind: game.KindHuman, Chooser: sess.agentCtrl}}
	for _, opp := range opponentNames {
		if len(seats) == cfg.Opponents+1 {
			break
		}
		if strings.EqualFold(opp, name) {
			continue
		}
		rng := rand.New(rand.NewSource(seed + int64(len(seats))))
		seats = append(seats, game.Seat{Name: opp, Kind: game.KindAI, Chooser: game.NewRandomChooser(rng)})
	}

	gameCfg := game.Config{Seed: seed, Rules: cfg.Rules}
	if cfg.Logger != nil {
		gameCfg.Logger = log.NewLogrusLogger(cfg.Logger, logrus.Fields{"agent": name})
	}

	g, err := game.NewSession(gameCfg, seats)
	if err != nil {
		return nil, err
	}
	sess.game = g

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel

	// Run the game in a goroutine
	go func() {
		defer cancel()
		res, err := g.Run(ctx)

		sess.mu.Lock()
		sess.gameOver = true
		sess.result = view.BuildResultView(res)
		if err != nil {
			sess.errMsg = err.Error()
		}
		sess.mu.Unlock()

		// Notify the agent via pending channel
		sess.pendingCh <- &PendingDecision{
			Type:  DecisionGameOver,
			State: sess.agentState(),
		}
	}()

	return sess, nil
}

// Close stops a running game. A blocked controller returns context.Canceled
// and the game goroutine exits.
func (s *GameSession) Close() {
	s.cancel()
}

// agentState builds the current table from the agent's point of view using
// the last published snapshot.
func (s *GameSession) agentState() *view.StateView {
	snap, ok := s.game.Latest()
	if !ok {
		return nil
	}
	seat := -1
	for i, p := range snap.Players {
		if p.Name == s.agentName {
			seat = i
		}
	}
	return view.BuildStateView(snap.ForPlayer(seat))
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev view.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []view.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []view.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the game engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending

	resp := &ToolResponse{
		GameID: s.game.ID,
		Events: s.drainEvents(),
		State:  pending.State,
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Result = s.result
		resp.Error = s.errMsg
		s.mu.Unlock()
		return resp, nil
	}

	resp.Pending = &PendingView{
		Type:     pending.Type,
		Hand:     pending.Hand,
		Previews: pending.Previews,
	}
	return resp, nil
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
