package authguard

import (
	"context"
	"fmt"
	"time"
)

// Kind names a guarded attempt counter.
type Kind string

const (
	KindLogin Kind = "login"
	KindMFA   Kind = "mfa"
)

// Config controls block thresholds, populated from the environment.
type Config struct {
	Limit  int           `env:"AUTHGUARD_LIMIT" envDefault:"7"`
	Window time.Duration `env:"AUTHGUARD_WINDOW" envDefault:"30m"`
}

// Guard tracks failed login and MFA attempts per username within a rolling
// window and blocks further attempts once the limit is reached. Unblock
// clears both counters at once, which is what an administrator expects when
// releasing a locked-out user.
type Guard struct {
	store  Store
	limit  int
	window time.Duration
}

// New creates a guard over the given counter store.
func New(store Store, cfg Config) (*Guard, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if cfg.Limit <= 0 || cfg.Window <= 0 {
		return nil, ErrInvalidConfig
	}
	return &Guard{store: store, limit: cfg.Limit, window: cfg.Window}, nil
}

func (g *Guard) key(kind Kind, username string) string {
	return fmt.Sprintf("authguard:%s:%s", kind, username)
}

// RecordFailure increments the failure counter for the username and reports
// whether the username is now blocked.
func (g *Guard) RecordFailure(ctx context.Context, kind Kind, username string) (bool, error) {
	if username == "" {
		return false, ErrUsernameRequired
	}
	count, err := g.store.Incr(ctx, g.key(kind, username), g.window)
	if err != nil {
		return false, err
	}
	return count >= int64(g.limit), nil
}

// IsBlocked reports whether the username has exhausted its attempts.
func (g *Guard) IsBlocked(ctx context.Context, kind Kind, username string) (bool, error) {
	if username == "" {
		return false, ErrUsernameRequired
	}
	count, err := g.store.Get(ctx, g.key(kind, username))
	if err != nil {
		return false, err
	}
	return count >= int64(g.limit), nil
}

// Unblock clears the login and MFA counters for the username.
func (g *Guard) Unblock(ctx context.Context, username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	for _, kind := range []Kind{KindLogin, KindMFA} {
		if err := g.store.Delete(ctx, g.key(kind, username)); err != nil {
			return err
		}
	}
	return nil
}
