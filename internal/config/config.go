// Package config loads game setup from YAML files and process settings from
// the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/parade/internal/game"
)

// File represents the top-level YAML structure of a game file.
type File struct {
	Seed    int64         `yaml:"seed"`
	Rules   RulesEntry    `yaml:"rules"`
	Players []PlayerEntry `yaml:"players"`
}

// RulesEntry toggles the optional rule variants.
type RulesEntry struct {
	ZeroTakesAll bool `yaml:"zero_takes_all"`
	ScoreHand    bool `yaml:"score_hand"`
}

// PlayerEntry represents a single seat in the YAML file.
type PlayerEntry struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // "human" or "ai"
}

// Default is the table used when no game file is given: one human against
// two computer players.
func Default() *File {
	return &File{
		Players: []PlayerEntry{
			{Name: "You", Kind: "human"},
			{Name: "Cheshire", Kind: "ai"},
			{Name: "Hatter", Kind: "ai"},
		},
	}
}

// ParseFile parses a YAML game file and validates it.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse game YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and parses the game file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(data)
}

// Validate checks the seats before a session is built from them.
func (f *File) Validate() error {
	if n := len(f.Players); n < game.MinPlayers || n > game.MaxPlayers {
		return fmt.Errorf("%d players (want %d-%d): %w", n, game.MinPlayers, game.MaxPlayers, game.ErrInvalidPlayerCount)
	}
	seen := make(map[string]bool)
	for i, p := range f.Players {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("player %d: %w", i+1, game.ErrEmptyName)
		}
		if seen[name] {
			return fmt.Errorf("%q: %w", name, game.ErrDuplicatePlayer)
		}
		seen[name] = true
		if _, err := ParseKind(p.Kind); err != nil {
			return fmt.Errorf("player %q: %w", name, err)
		}
	}
	return nil
}

// GameRules converts the YAML toggles to engine rules.
func (r RulesEntry) GameRules() game.Rules {
	return game.Rules{ZeroTakesAll: r.ZeroTakesAll, ScoreHand: r.ScoreHand}
}

// ParseKind accepts "human" or "ai" (case-insensitive); empty means ai.
func ParseKind(s string) (game.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return game.KindHuman, nil
	case "ai", "computer", "":
		return game.KindAI, nil
	default:
		return 0, fmt.Errorf("unknown player kind %q", s)
	}
}

// Kinds returns each player's parsed kind. Call Validate first.
func (f *File) Kinds() []game.Kind {
	out := make([]game.Kind, len(f.Players))
	for i, p := range f.Players {
		out[i], _ = ParseKind(p.Kind)
	}
	return out
}
