// Package session ties a browser cookie session to the in-memory alert store
// that belongs to it. Stores live only as long as their session: an idle
// session is swept and its alerts are gone.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/golang-cafe/job-alerts/internal/alert"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

const (
	cookieName = "____ja"
	sidKey     = "sid"

	MinSweepInterval = time.Second
)

type entry struct {
	store    *alert.Store
	lastSeen time.Time
}

type Registry struct {
	mu          sync.Mutex
	cookies     sessions.Store
	entries     map[string]*entry
	newStore    func() *alert.Store
	idleTimeout time.Duration
	now         func() time.Time
	logger      zerolog.Logger
}

// NewRegistry builds stores with newStore on demand. A nil newStore yields
// stores with ksuid ids.
func NewRegistry(cookies sessions.Store, newStore func() *alert.Store, idleTimeout time.Duration, logger zerolog.Logger) *Registry {
	if newStore == nil {
		newStore = func() *alert.Store {
			return alert.NewStore(alert.KsuidGenerator{}, time.Now)
		}
	}
	return &Registry{
		cookies:     cookies,
		entries:     make(map[string]*entry),
		newStore:    newStore,
		idleTimeout: idleTimeout,
		now:         time.Now,
		logger:      logger,
	}
}

// Get returns the store for the request's session, starting a new session
// when the cookie is missing, unreadable or refers to a swept session.
// The cookie is written on every call so its expiry slides with activity.
// It must be called before anything is written to w.
func (reg *Registry) Get(w http.ResponseWriter, r *http.Request) (*alert.Store, string, error) {
	sess, err := reg.cookies.Get(r, cookieName)
	if err != nil {
		// a cookie signed with an old key decodes to a fresh session
		reg.logger.Debug().Err(err).Msg("discarding unreadable session cookie")
	}
	if sid, ok := sess.Values[sidKey].(string); ok {
		if store, ok := reg.touch(sid); ok {
			if err := sess.Save(r, w); err != nil {
				return nil, "", errors.Wrap(err, "unable to refresh session cookie")
			}
			return store, sid, nil
		}
	}

	sid := ksuid.New().String()
	sess.Values[sidKey] = sid
	if err := sess.Save(r, w); err != nil {
		return nil, "", errors.Wrap(err, "unable to save session cookie")
	}
	return reg.start(sid), sid, nil
}

func (reg *Registry) touch(sid string) (*alert.Store, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	e, ok := reg.entries[sid]
	if !ok {
		return nil, false
	}
	e.lastSeen = reg.now()
	return e.store, true
}

func (reg *Registry) start(sid string) *alert.Store {
	store := reg.newStore()
	logger := reg.logger.With().Str("sid", sid).Logger()
	store.Subscribe(func(e alert.Event) {
		logger.Info().
			Str("event", string(e.Kind)).
			Str("alert_id", e.AlertID).
			Str("view", string(e.View)).
			Msg("alert store changed")
	})

	reg.mu.Lock()
	reg.entries[sid] = &entry{store: store, lastSeen: reg.now()}
	reg.mu.Unlock()

	logger.Info().Msg("session started")
	return store
}

// Sweep drops every session idle for longer than the idle timeout and
// returns how many were dropped.
func (reg *Registry) Sweep(now time.Time) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	var n int
	for sid, e := range reg.entries {
		if now.Sub(e.lastSeen) > reg.idleTimeout {
			delete(reg.entries, sid)
			n++
		}
	}
	if n > 0 {
		reg.logger.Info().Int("swept", n).Int("live", len(reg.entries)).Msg("idle sessions removed")
	}
	return n
}

// Run sweeps every interval until ctx is done. Intervals under
// MinSweepInterval are raised to it.
func (reg *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval < MinSweepInterval {
		interval = MinSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			reg.Sweep(t)
		}
	}
}

func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.entries)
}
