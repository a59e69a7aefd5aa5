// Package viewer serves published forms and records submissions.
package viewer

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/mx-space/formcraft/internal/models"
	"github.com/mx-space/formcraft/internal/modules/form"
	"github.com/mx-space/formcraft/internal/modules/notify"
	"go.uber.org/zap"
)

// SubmittedMessage is the notification sent after a submission.
const SubmittedMessage = "Form submitted successfully!"

// Session is one public view of a form. Required fields are not enforced
// on submit.
type Session struct {
	mu        sync.Mutex
	store     form.Store
	notifier  notify.Notifier
	logger    *zap.Logger
	form      *models.Form
	data      map[string]any
	submitted bool
}

func NewSession(store form.Store, notifier notify.Notifier, logger *zap.Logger) *Session {
	return &Session{store: store, notifier: notifier, logger: logger}
}

// Load fetches formID. A missing form returns models.ErrNotFound and
// leaves the session without a form.
func (s *Session) Load(ctx context.Context, formID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.store.Get(ctx, formID)
	if err != nil {
		return err
	}
	s.data = nil
	s.submitted = false
	if f == nil {
		s.form = nil
		return fmt.Errorf("%w: %s", models.ErrNotFound, formID)
	}
	s.form = f
	return nil
}

// Submit records data and emits a success notification. It does nothing
// before a form is loaded.
func (s *Session) Submit(ctx context.Context, data map[string]any) error {
	s.mu.Lock()
	if s.form == nil {
		s.mu.Unlock()
		return nil
	}
	s.data = maps.Clone(data)
	if s.data == nil {
		s.data = map[string]any{}
	}
	s.submitted = true
	event := notify.Success(SubmittedMessage)
	event.FormID = s.form.ID
	event.Data = maps.Clone(s.data)
	s.mu.Unlock()

	s.logger.Info("form submitted", zap.String("form", event.FormID), zap.Int("values", len(event.Data)))
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("submission notification failed", zap.String("form", event.FormID), zap.Error(err))
	}
	return nil
}

// Form returns a copy of the loaded form, or nil.
func (s *Session) Form() *models.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone()
}

// Submitted reports whether Submit ran since the last Load.
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Data returns a copy of the recorded submission.
func (s *Session) Data() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.data)
}
