package mcp

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
	"github.com/peterkuimelis/parade/internal/view"
)

// MCPController implements game.CardChooser by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	name       string
	session    *GameSession
	rules      game.Rules
	responseCh chan any
}

// NewMCPController creates a controller for the named seat.
func NewMCPController(name string, session *GameSession, rules game.Rules) *MCPController {
	return &MCPController{
		name:       name,
		session:    session,
		rules:      rules,
		responseCh: make(chan any),
	}
}

// ChooseCardToPlay implements game.CardChooser.
func (c *MCPController) ChooseCardToPlay(ctx context.Context, snap game.Snapshot, hand []game.Card) (int, error) {
	pending := &PendingDecision{
		Type:     DecisionPlayCard,
		State:    view.BuildStateView(snap),
		Hand:     view.BuildCardViews(hand),
		Previews: buildPreviews(snap.Parade, hand, c.rules),
	}
	resp, err := c.ask(ctx, pending)
	if err != nil {
		return 0, err
	}

	switch r := resp.(type) {
	case PlayResponse:
		if r.Index < 0 || r.Index >= len(hand) {
			return 0, fmt.Errorf("card %d: %w", r.Index, game.ErrInvalidSelection)
		}
		return r.Index, nil
	case QuitResponse:
		return 0, game.ErrPlayerQuit
	default:
		return 0, fmt.Errorf("unexpected response %T: %w", resp, game.ErrInvalidSelection)
	}
}

// ChooseFinalCards implements game.CardChooser.
func (c *MCPController) ChooseFinalCards(ctx context.Context, snap game.Snapshot, hand []game.Card) (int, int, error) {
	pending := &PendingDecision{
		Type:  DecisionChooseFinal,
		State: view.BuildStateView(snap),
		Hand:  view.BuildCardViews(hand),
	}
	resp, err := c.ask(ctx, pending)
	if err != nil {
		return 0, 0, err
	}

	switch r := resp.(type) {
	case FinalResponse:
		return r.First, r.Second, nil
	case QuitResponse:
		return 0, 0, game.ErrPlayerQuit
	default:
		return 0, 0, fmt.Errorf("unexpected response %T: %w", resp, game.ErrInvalidSelection)
	}
}

// ask publishes a decision and waits for the tool handler's answer.
func (c *MCPController) ask(ctx context.Context, pending *PendingDecision) (any, error) {
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-c.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Notify implements game.CardChooser. Cards other players draw stay hidden.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	ev := view.BuildEventView(event)
	if event.Type == log.EventDraw && event.Player != c.name {
		ev.Card = ""
		ev.Details = fmt.Sprintf("%s draws a card", event.Player)
	}
	c.session.appendEvent(*ev)
	return nil
}

func buildPreviews(parade, hand []game.Card, rules game.Rules) []PlayPreview {
	out := make([]PlayPreview, len(hand))
	for i, card := range hand {
		_, taken := game.Absorb(parade, card, rules)
		p := PlayPreview{Index: i, Takes: view.BuildCardViews(taken)}
		for _, t := range taken {
			p.Points += t.Value
		}
		out[i] = p
	}
	return out
}
