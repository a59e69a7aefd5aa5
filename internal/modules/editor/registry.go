package editor

import (
	"sync"

	"github.com/mx-space/formcraft/internal/modules/form"
	"go.uber.org/zap"
)

type registryKey struct {
	sessionID string
	formID    string
}

// Registry hands out one Session per (login session, form) pair so that
// consecutive requests from the same client share a selection.
type Registry struct {
	mu       sync.Mutex
	store    form.Store
	logger   *zap.Logger
	sessions map[registryKey]*Session
}

func NewRegistry(store form.Store, logger *zap.Logger) *Registry {
	return &Registry{
		store:    store,
		logger:   logger.Named("editor"),
		sessions: make(map[registryKey]*Session),
	}
}

// Session returns the editor for formID under the given login session,
// creating an unloaded one on first use.
func (r *Registry) Session(sessionID, formID string) *Session {
	key := registryKey{sessionID: sessionID, formID: formID}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		s = NewSession(r.store, r.logger.With(zap.String("form", formID)))
		r.sessions[key] = s
	}
	return s
}

// Discard drops the editor for formID under sessionID, if any.
func (r *Registry) Discard(sessionID, formID string) {
	r.mu.Lock()
	delete(r.sessions, registryKey{sessionID: sessionID, formID: formID})
	r.mu.Unlock()
}

// Forget drops every editor opened under sessionID.
func (r *Registry) Forget(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for key := range r.sessions {
		if key.sessionID == sessionID {
			delete(r.sessions, key)
			n++
		}
	}
	return n
}

// Retain keeps only the editors whose login session satisfies keep and
// returns how many were dropped.
func (r *Registry) Retain(keep func(sessionID string) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for key := range r.sessions {
		if !keep(key.sessionID) {
			delete(r.sessions, key)
			n++
		}
	}
	return n
}

// Len returns the number of open editors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
