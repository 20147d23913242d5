// Package sidebar owns the open/closed state of the navigation panel.
package sidebar

//go:generate mockgen -source=state.go -destination=mocks/mock_state.go -package=mocks

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

const (
	// CookieName matches the cookie used by the client side sidebar so both
	// renderings agree on the stored state.
	CookieName   = "sidebar_state"
	CookieMaxAge = 7 * 24 * time.Hour
)

var ErrNoState = errors.New("sidebar state not available")

// State is the single writer interface to the panel state.
type State interface {
	Open() bool
	SetOpen(open bool)
}

// Toggle flips s and returns the new value.
func Toggle(s State) bool {
	next := !s.Open()
	s.SetOpen(next)
	return next
}

// Static is an in-memory State.
type Static struct {
	open bool
}

func NewStatic(open bool) *Static {
	return &Static{open: open}
}

func (s *Static) Open() bool {
	return s.open
}

func (s *Static) SetOpen(open bool) {
	s.open = open
}

type CookieOptions struct {
	DefaultOpen bool
	Secure      bool
}

// CookieState reads the state from the request cookie and writes changes back
// to the response.
type CookieState struct {
	open bool
	w    http.ResponseWriter
	opts CookieOptions
}

func FromRequest(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieState {
	state := &CookieState{open: opts.DefaultOpen, w: w, opts: opts}
	if r == nil {
		return state
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return state
	}

	if parsed, err := strconv.ParseBool(cookie.Value); err == nil {
		state.open = parsed
	}
	return state
}

func (s *CookieState) Open() bool {
	return s.open
}

func (s *CookieState) SetOpen(open bool) {
	s.open = open
	if s.w == nil {
		return
	}

	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    strconv.FormatBool(open),
		Path:     "/",
		MaxAge:   int(CookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type contextKey struct{}

func WithState(ctx context.Context, state State) context.Context {
	return context.WithValue(ctx, contextKey{}, state)
}

func FromContext(ctx context.Context) (State, error) {
	if ctx == nil {
		return nil, ErrNoState
	}
	state, ok := ctx.Value(contextKey{}).(State)
	if !ok || state == nil {
		return nil, ErrNoState
	}
	return state, nil
}
