package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
)

// Prompter reads one line of input. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// HumanChooser asks a person at the terminal for every decision.
type HumanChooser struct {
	in    Prompter
	w     io.Writer
	pal   *Palette
	rules game.Rules
}

// NewHumanChooser returns a chooser reading from in and writing prompts to w.
func NewHumanChooser(in Prompter, w io.Writer, pal *Palette, rules game.Rules) *HumanChooser {
	return &HumanChooser{in: in, w: w, pal: pal, rules: rules}
}

func (h *HumanChooser) ChooseCardToPlay(ctx context.Context, view game.Snapshot, hand []game.Card) (int, error) {
	fmt.Fprintln(h.w, RenderHand(hand, view.Parade, h.rules, h.pal))
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		input, err := h.prompt(fmt.Sprintf("Play which card? (1-%d, q to quit) ", len(hand)))
		if err != nil {
			return 0, err
		}
		n, ok := parseIndex(input, len(hand))
		if !ok {
			h.pal.Warn.Fprintf(h.w, "Invalid input. Enter a number between 1 and %d.\n", len(hand))
			continue
		}
		h.in.AppendHistory(input)
		return n, nil
	}
}

func (h *HumanChooser) ChooseFinalCards(ctx context.Context, view game.Snapshot, hand []game.Card) (int, int, error) {
	fmt.Fprintln(h.w, RenderHand(hand, nil, h.rules, h.pal))
	for {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		input, err := h.prompt("Pick two cards for your collection (e.g. 1 3, q to quit) ")
		if err != nil {
			return 0, 0, err
		}
		fields := strings.Fields(strings.ReplaceAll(input, ",", " "))
		if len(fields) == game.FinalSelectionSize {
			a, okA := parseIndex(fields[0], len(hand))
			b, okB := parseIndex(fields[1], len(hand))
			if okA && okB && a != b {
				h.in.AppendHistory(input)
				return a, b, nil
			}
		}
		h.pal.Warn.Fprintf(h.w, "Enter two different numbers between 1 and %d.\n", len(hand))
	}
}

func (h *HumanChooser) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// prompt reads a line. Ctrl-C, end of input and "q" all mean the player
// leaves the game.
func (h *HumanChooser) prompt(text string) (string, error) {
	h.pal.Prompt.Fprint(h.w, text)
	input, err := h.in.Prompt("")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", game.ErrPlayerQuit
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	input = strings.TrimSpace(input)
	switch strings.ToLower(input) {
	case "q", "quit", "exit":
		return "", game.ErrPlayerQuit
	}
	return input, nil
}

// parseIndex converts 1-based user input to a 0-based index below n.
func parseIndex(s string, n int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}
