// Package gamemaster hosts AI sessions for many games at once. Each game has
// its own lock so only one search or update runs per board, while separate
// games proceed in parallel.
package gamemaster

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"gomoku/game"
	"gomoku/searcher"
	"gomoku/session"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrSessionAborted = errors.New("session aborted")
)

// AI is the computer side of one game. *session.Session implements it.
type AI interface {
	Player() game.Cell
	Strategy() session.Strategy
	Depth() int
	Search() (searcher.Result, error)
	ApplyExternalMove(r, c int, player game.Cell) error
	SetSearchDepth(depth int) error
	Dispose()
}

type hostedGame struct {
	mu        sync.Mutex
	session   AI
	createdAt time.Time
	updatedAt time.Time
}

// Info describes a hosted game.
type Info struct {
	ID        string
	Player    game.Cell
	Strategy  session.Strategy
	Depth     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*hostedGame
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*hostedGame)}
}

// NewGame starts a session for player on a copy of board and returns its id.
func (m *Manager) NewGame(board *game.Board, player game.Cell, depth int, options ...session.Option) (string, error) {
	s, err := session.New(board, player, depth, options...)
	if err != nil {
		return "", err
	}
	return m.Add(s), nil
}

// Add hosts an existing AI and returns the new game's id.
func (m *Manager) Add(ai AI) string {
	now := time.Now()
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[id] = &hostedGame{session: ai, createdAt: now, updatedAt: now}
	log.Debug().Str("game", id).Msg("game created")
	return id
}

func (m *Manager) get(id string) (*hostedGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

// Search runs a search for the game's AI player. Blocks while another call
// holds the same game.
func (m *Manager) Search(id string) (result searcher.Result, err error) {
	g, err := m.get(id)
	if err != nil {
		return searcher.Result{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("game", id).Interface("panic", r).Msg("search aborted")
			g.session.Dispose()
			m.remove(id)
			result, err = searcher.Result{}, fmt.Errorf("%w: %v", ErrSessionAborted, r)
		}
	}()
	result, err = g.session.Search()
	g.updatedAt = time.Now()
	return result, err
}

// GetMove returns the move the AI wants to play; false means no move is
// left.
func (m *Manager) GetMove(id string) (game.Move, bool, error) {
	result, err := m.Search(id)
	if err != nil {
		return game.Move{}, false, err
	}
	move, ok := result.Move()
	return move, ok, nil
}

// Play reports a real move by either side.
func (m *Manager) Play(id string, r, c int, player game.Cell) error {
	g, err := m.get(id)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.session.ApplyExternalMove(r, c, player); err != nil {
		return err
	}
	g.updatedAt = time.Now()
	return nil
}

func (m *Manager) SetSearchDepth(id string, depth int) error {
	g, err := m.get(id)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.SetSearchDepth(depth)
}

func (m *Manager) Info(id string) (Info, error) {
	g, err := m.get(id)
	if err != nil {
		return Info{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return Info{
		ID:        id,
		Player:    g.session.Player(),
		Strategy:  g.session.Strategy(),
		Depth:     g.session.Depth(),
		CreatedAt: g.createdAt,
		UpdatedAt: g.updatedAt,
	}, nil
}

// Games lists the ids of hosted games in sorted order.
func (m *Manager) Games() []string {
	m.mu.RLock()
	ids := lo.Keys(m.games)
	m.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Close disposes the game's session. Waits for a running search to finish.
func (m *Manager) Close(id string) error {
	g, err := m.get(id)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.Dispose()
	m.remove(id)
	log.Debug().Str("game", id).Msg("game closed")
	return nil
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}
