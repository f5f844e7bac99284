package client

import (
	"context"
	"errors"
	"sync"
)

// ErrNoBoard is returned when an operation needs a cached board and the
// session has none.
var ErrNoBoard = errors.New("no board loaded")

// ErrNotAuthenticated is returned when the session has no credential.
var ErrNotAuthenticated = errors.New("not authenticated")

// Session is the single source of truth for the current credential and
// the current board. All reads and mutations go through it, and it is
// invalidated synchronously when the server rejects the credential, so
// there is no ambient storage to fall out of sync with.
type Session struct {
	mu     sync.Mutex
	client *Client
	token  string
	board  *Board
}

func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// Login authenticates and loads the user's board.
func (s *Session) Login(ctx context.Context, email, password string) error {
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh refetches the board from the server, replacing local state.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		return ErrNotAuthenticated
	}

	board, err := s.client.FetchBoard(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			s.Clear()
		}
		return err
	}

	s.mu.Lock()
	s.board = board
	s.mu.Unlock()
	return nil
}

// Board returns a copy of the cached board, or nil when none is loaded.
func (s *Session) Board() *Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// Authenticated reports whether the session holds a credential.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Clear drops the credential and cached board. Called on logout and on
// any unauthorized response.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.board = nil
}

// Drop resolves a drag-and-drop gesture against the cached board,
// applies the resulting mutation optimistically, and submits it. On any
// failure the pre-drop state is restored; an unauthorized response also
// tears the session down.
//
// The lock is released for the duration of the server call so reads
// stay responsive while the request is in flight; the rollback path
// re-checks the credential before restoring the snapshot in case the
// session was cleared or re-established meanwhile.
func (s *Session) Drop(ctx context.Context, item DragItem, target DropTarget) error {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	if s.board == nil {
		s.mu.Unlock()
		return ErrNoBoard
	}

	cmd, err := ResolveDrop(s.board, item, target)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	token := s.token
	snapshot := s.board.Clone()
	cmd.Apply(s.board)
	s.mu.Unlock()

	if err := cmd.call(ctx, s.client, token); err != nil {
		s.mu.Lock()
		switch {
		case errors.Is(err, ErrUnauthorized):
			s.token = ""
			s.board = nil
		case s.token == token:
			s.board = snapshot
		}
		s.mu.Unlock()
		return err
	}
	return nil
}
