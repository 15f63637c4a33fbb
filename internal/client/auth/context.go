// Package auth tracks who is signed in on the client side. The Context here
// replaces the global provider of the browser app: it is created once at
// startup, handed to consumers by reference, and is the only thing allowed
// to mutate session state.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"simplecrud/internal/client/api"
	"simplecrud/internal/client/session"
	"simplecrud/internal/models"
)

var (
	// ErrLoginFailed covers every login failure mode; the reason is
	// deliberately not distinguished for callers.
	ErrLoginFailed = errors.New("login failed")

	// ErrNotProvided is returned by From when no Context was attached.
	ErrNotProvided = errors.New("auth context not provided")

	// ErrOperationInFlight rejects a second concurrent login/logout instead
	// of letting the two race on the store.
	ErrOperationInFlight = errors.New("auth operation already in flight")
)

type Context struct {
	client *api.Client
	store  *session.Store
	log    zerolog.Logger

	mu       sync.Mutex
	user     *models.User
	loading  bool
	inFlight bool
}

func NewContext(client *api.Client, store *session.Store, log zerolog.Logger) *Context {
	return &Context{
		client:  client,
		store:   store,
		log:     log,
		loading: true,
	}
}

// Restore adopts a previously saved session, if any. The stored token is
// trusted as-is; nothing is re-checked against the server. Loading always
// ends when Restore returns, whether or not a session was found.
func (a *Context) Restore(ctx context.Context) error {
	defer func() {
		a.mu.Lock()
		a.loading = false
		a.mu.Unlock()
	}()

	sess, ok, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return nil
	}

	a.setUser(&sess.User)
	a.log.Debug().Str("email", sess.User.Email).Msg("session restored")
	return nil
}

// Login performs the credential round trip, persists the issued session, and
// adopts the returned user.
func (a *Context) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := a.begin(); err != nil {
		return models.User{}, err
	}
	defer a.end()

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.log.Warn().Err(err).Msg("login request failed")
		return models.User{}, ErrLoginFailed
	}

	if err := a.store.Save(ctx, resp.Token, resp.User); err != nil {
		return models.User{}, fmt.Errorf("persist session: %w", err)
	}

	a.setUser(&resp.User)
	return resp.User, nil
}

// Logout clears the session no matter what the server says; the round trip
// is best effort and its failure is only logged.
func (a *Context) Logout(ctx context.Context) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn().Err(err).Msg("logout request failed")
	}

	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	a.setUser(nil)
	return nil
}

func (a *Context) CurrentUser() (models.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return models.User{}, false
	}
	return *a.user, true
}

func (a *Context) IsAuthenticated() bool {
	_, ok := a.CurrentUser()
	return ok
}

// Loading reports whether the initial session-restore check is still pending.
func (a *Context) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func (a *Context) setUser(user *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if user == nil {
		a.user = nil
		return
	}
	u := *user
	a.user = &u
}

func (a *Context) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inFlight {
		return ErrOperationInFlight
	}
	a.inFlight = true
	return nil
}

func (a *Context) end() {
	a.mu.Lock()
	a.inFlight = false
	a.mu.Unlock()
}

type ctxKey struct{}

// With attaches the auth context for code reached through a context.Context
// rather than an explicit reference.
func With(ctx context.Context, ac *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

// From looks the auth context back up. A missing provider is reported as a
// plain error so callers decide how loud to be about it.
func From(ctx context.Context) (*Context, error) {
	ac, ok := ctx.Value(ctxKey{}).(*Context)
	if !ok {
		return nil, ErrNotProvided
	}
	return ac, nil
}
