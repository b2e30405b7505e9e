package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/parade/internal/dice"
	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
	"github.com/peterkuimelis/parade/internal/view"
)

//go:embed static
var staticFiles embed.FS

// MaxDelay caps the per-message delay a client may ask for.
const MaxDelay = 5 * time.Second

// seatNames name the computer players of a spectated game.
var seatNames = []string{"Alice", "Hatter", "March Hare", "Dormouse", "Cheshire", "Queen"}

// RulesInfo is the JSON representation of the game constants for the
// /api/rules endpoint.
type RulesInfo struct {
	Colors       []string `json:"colors"`
	MaxValue     int      `json:"maxValue"`
	DeckSize     int      `json:"deckSize"`
	HandSize     int      `json:"handSize"`
	ParadeSize   int      `json:"paradeSize"`
	MinPlayers   int      `json:"minPlayers"`
	MaxPlayers   int      `json:"maxPlayers"`
	ZeroTakesAll bool     `json:"zeroTakesAll"`
	ScoreHand    bool     `json:"scoreHand"`
}

// Options configures a Server.
type Options struct {
	Rules  game.Rules
	Delay  time.Duration  // default pause between streamed events
	Logger *logrus.Logger // nil discards operational logs
}

// Server is the parade spectator web server. Every websocket connection
// watches its own all-computer game with every hand hidden.
type Server struct {
	rules game.Rules
	delay time.Duration
	log   *logrus.Logger
	mux   *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	s := &Server{
		rules: opts.Rules,
		delay: opts.Delay,
		log:   logger,
		mux:   http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	// Static CSS/JS
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/rules", s.handleRules)

	// Game stream
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	info := RulesInfo{
		MaxValue:     game.MaxValue,
		DeckSize:     game.DeckSize,
		HandSize:     game.InitialHandSize,
		ParadeSize:   game.InitialParadeSize,
		MinPlayers:   game.MinPlayers,
		MaxPlayers:   game.MaxPlayers,
		ZeroTakesAll: s.rules.ZeroTakesAll,
		ScoreHand:    s.rules.ScoreHand,
	}
	for _, c := range game.Colors {
		info.Colors = append(info.Colors, c.String())
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// gameParams are the query parameters of /ws.
type gameParams struct {
	players int
	seed    int64
	delay   time.Duration
}

func (s *Server) parseParams(r *http.Request) (gameParams, error) {
	p := gameParams{players: 3, delay: s.delay}
	q := r.URL.Query()
	if v := q.Get("players"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < game.MinPlayers || n > game.MaxPlayers {
			return p, fmt.Errorf("players must be %d-%d", game.MinPlayers, game.MaxPlayers)
		}
		p.players = n
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return p, fmt.Errorf("bad seed %q", v)
		}
		p.seed = seed
	}
	if v := q.Get("delay"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return p, fmt.Errorf("bad delay %q", v)
		}
		p.delay = min(time.Duration(ms)*time.Millisecond, MaxDelay)
	}
	return p, nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	params, err := s.parseParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept")
		return
	}
	defer wsConn.CloseNow()

	// Spectators never send; CloseRead cancels ctx when the browser leaves.
	ctx := wsConn.CloseRead(r.Context())

	if err := s.streamGame(ctx, wsConn, params); err != nil {
		s.log.WithError(err).Info("stream ended")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// streamGame runs one game and writes every event to the connection,
// pausing params.delay between messages. The game only advances as fast as
// the client reads.
func (s *Server) streamGame(ctx context.Context, wsConn *websocket.Conn, params gameParams) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seed := params.seed
	if seed == 0 {
		var err error
		if seed, err = dice.NewSeed(); err != nil {
			return err
		}
	}

	msgs := make(chan view.Message)
	observer := game.ObserverFunc(func(ctx context.Context, event log.GameEvent, snap game.Snapshot) {
		msg := view.Message{
			Type:  "event",
			Event: view.BuildEventView(event),
			State: view.BuildStateView(snap.ForPlayer(-1)),
		}
		select {
		case msgs <- msg:
		case <-ctx.Done():
		}
	})

	seats := make([]game.Seat, params.players)
	for i := range seats {
		seats[i] = game.Seat{
			Name:    seatNames[i],
			Kind:    game.KindAI,
			Chooser: game.NewRandomChooser(rand.New(rand.NewSource(seed + int64(i) + 1))),
		}
	}

	fields := logrus.Fields{"seed": seed, "players": params.players}
	sess, err := game.NewSession(game.Config{
		Seed:      seed,
		Rules:     s.rules,
		Observers: []game.Observer{observer},
		Logger:    log.NewLogrusLogger(s.log, fields),
	}, seats)
	if err != nil {
		return err
	}
	s.log.WithFields(fields).WithField("game", sess.ID).Info("spectator game started")

	go func() {
		defer close(msgs)
		res, err := sess.Run(ctx)
		final := view.Message{Type: "game_over", Result: view.BuildResultView(res)}
		if err != nil {
			final = view.Message{Type: "error", Error: err.Error()}
		}
		select {
		case msgs <- final:
		case <-ctx.Done():
		}
	}()

	for msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		if err := wsConn.Write(ctx, websocket.MessageText, data); err != nil {
			return err
		}
		if msg.Type == "event" && params.delay > 0 {
			select {
			case <-time.After(params.delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
