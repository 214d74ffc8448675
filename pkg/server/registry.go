package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/ukaji3/sheetplot-go/pkg/logging"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot"
)

// entry is one live session. mu serialises every request on the session.
type entry struct {
	mu      sync.Mutex
	session *sheetplot.Session
	touched time.Time
}

// registry holds the live sessions. Idle sessions are evicted whenever the
// registry is touched.
type registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	opts    sheetplot.Options
	now     func() time.Time
	log     *logging.Logger
}

func newRegistry(opts sheetplot.Options, ttl time.Duration, log *logging.Logger) *registry {
	return &registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		opts:    opts,
		now:     time.Now,
		log:     log,
	}
}

func (r *registry) create() (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.evictLocked(now)
	r.entries[id] = &entry{session: sheetplot.NewSession(r.opts), touched: now}
	r.log.Infof("session %s created (%d live)", id, len(r.entries))
	return id, nil
}

func (r *registry) get(id string) (*entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.evictLocked(now)
	e, ok := r.entries[id]
	if ok {
		e.touched = now
	}
	return e, ok
}

func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	r.log.Infof("session %s deleted", id)
	return true
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *registry) evictLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, e := range r.entries {
		if now.Sub(e.touched) > r.ttl {
			delete(r.entries, id)
			r.log.Infof("session %s evicted after %s idle", id, r.ttl)
		}
	}
}

func newID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
