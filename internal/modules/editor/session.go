// Package editor holds the per-form editing state: the loaded form, the
// selected field, and the mutations the builder UI performs on them.
package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/mx-space/formcraft/internal/models"
	"github.com/mx-space/formcraft/internal/modules/form"
	"go.uber.org/zap"
)

// Session edits one form. Every mutation is a no-op until Load succeeds,
// and a mutation that does nothing is not an error.
//
// Mutations work on a copy of the form; the copy replaces the session
// state only after the store accepted it.
type Session struct {
	mu       sync.Mutex
	store    form.Store
	logger   *zap.Logger
	form     *models.Form
	selected string
}

func NewSession(store form.Store, logger *zap.Logger) *Session {
	return &Session{store: store, logger: logger}
}

// Load fetches formID and clears the selection. A missing form returns
// models.ErrNotFound and unloads the session; a storage error leaves it as
// it was.
func (s *Session) Load(ctx context.Context, formID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.store.Get(ctx, formID)
	if err != nil {
		return err
	}
	if f == nil {
		s.unload()
		return fmt.Errorf("%w: %s", models.ErrNotFound, formID)
	}
	s.form = f
	s.selected = ""
	return nil
}

// Verify checks that the loaded form still exists in the store. A form
// deleted elsewhere unloads the session and returns models.ErrNotFound.
func (s *Session) Verify(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded() {
		return nil
	}

	id := s.form.ID
	f, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		s.unload()
		return fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	return nil
}

// AddField appends a default field of type t and selects it.
func (s *Session) AddField(ctx context.Context, t models.FieldType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded() {
		return nil
	}

	field, err := models.NewField(t)
	if err != nil {
		return err
	}
	next := s.form.Clone()
	next.Fields = append(next.Fields, field)
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.selected = field.FieldID()
	return nil
}

// SelectField toggles selection of id. Ids not on the form are ignored.
func (s *Session) SelectField(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded() {
		return
	}
	if s.selected == id {
		s.selected = ""
		return
	}
	if s.form.FieldIndex(id) < 0 {
		s.logger.Debug("select of unknown field ignored", zap.String("form", s.form.ID), zap.String("field", id))
		return
	}
	s.selected = id
}

// DeleteSelectedField removes the selected field and clears the selection.
func (s *Session) DeleteSelectedField(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.selectedIndex()
	if i < 0 {
		return nil
	}

	next := s.form.Clone()
	next.Fields = slices.Delete(next.Fields, i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.selected = ""
	return nil
}

// UpdateFieldProperty sets key on the selected field. Boolean attributes
// take "true"/"false" strings from the UI or are cast by truthiness.
func (s *Session) UpdateFieldProperty(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateFieldProperty(ctx, key, value)
}

func (s *Session) updateFieldProperty(ctx context.Context, key string, value any) error {
	i := s.selectedIndex()
	if i < 0 {
		return nil
	}
	next := s.form.Clone()
	if err := models.SetFieldProperty(next.Fields[i], key, value); err != nil {
		return err
	}
	return s.commit(ctx, next)
}

// AddOption appends option<N+1> / "Option <N+1>", N being the current count.
func (s *Session) AddOption(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	opts, ok := s.selectedOptions()
	if !ok {
		return nil
	}
	n := len(opts) + 1
	opts = append(slices.Clone(opts), models.Option{
		Value: fmt.Sprintf("option%d", n),
		Label: fmt.Sprintf("Option %d", n),
	})
	return s.updateFieldProperty(ctx, models.PropOptions, opts)
}

// RemoveOption drops option index. Out-of-range indexes do nothing.
func (s *Session) RemoveOption(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	opts, ok := s.selectedOptions()
	if !ok || index < 0 || index >= len(opts) {
		return nil
	}
	opts = slices.Delete(slices.Clone(opts), index, index+1)
	return s.updateFieldProperty(ctx, models.PropOptions, opts)
}

// UpdateOptionProperty sets "label" or "value" of option index. A new
// label also replaces the value with its slug.
func (s *Session) UpdateOptionProperty(ctx context.Context, index int, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	opts, ok := s.selectedOptions()
	if !ok || index < 0 || index >= len(opts) {
		return nil
	}
	next, err := models.SetOptionProperty(opts, index, key, value)
	if err != nil {
		return err
	}
	return s.updateFieldProperty(ctx, models.PropOptions, next)
}

// UpdateFormProperty sets the form title or description.
func (s *Session) UpdateFormProperty(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded() {
		return nil
	}
	next := s.form.Clone()
	if err := next.SetProperty(key, value); err != nil {
		return err
	}
	return s.commit(ctx, next)
}

// Loaded reports whether a form is present.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded()
}

// Form returns a copy of the loaded form, or nil.
func (s *Session) Form() *models.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone()
}

func (s *Session) SelectedFieldID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SelectedField returns a copy of the selected field, or nil.
func (s *Session) SelectedField() models.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.selectedIndex(); i >= 0 {
		return models.CloneField(s.form.Fields[i])
	}
	return nil
}

// Snapshot is what the builder UI renders after each operation.
type Snapshot struct {
	Form               *models.Form    `json:"form"`
	SelectedFieldID    string          `json:"selected_field_id,omitempty"`
	SelectedField      json.RawMessage `json:"selected_field,omitempty"`
	SelectedFieldName  string          `json:"selected_field_name,omitempty"`
	SelectedProperties []string        `json:"selected_properties,omitempty"`

	SelectedPropertyKinds map[string]models.PropertyKind `json:"selected_property_kinds,omitempty"`
}

func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded() {
		return Snapshot{}, nil
	}
	snap := Snapshot{Form: s.form.Clone(), SelectedFieldID: s.selected}
	if i := s.selectedIndex(); i >= 0 {
		field := s.form.Fields[i]
		raw, err := models.MarshalField(field)
		if err != nil {
			return Snapshot{}, err
		}
		snap.SelectedField = raw
		snap.SelectedFieldName = models.DisplayName(field.Kind())
		snap.SelectedProperties = models.PropertyNames(field)
		snap.SelectedPropertyKinds = make(map[string]models.PropertyKind, len(snap.SelectedProperties))
		for _, name := range snap.SelectedProperties {
			kind, err := models.PropertyKindOf(field, name)
			if err != nil {
				return Snapshot{}, err
			}
			snap.SelectedPropertyKinds[name] = kind
		}
	}
	return snap, nil
}

func (s *Session) loaded() bool { return s.form != nil }

func (s *Session) unload() {
	s.form = nil
	s.selected = ""
}

// selectedIndex returns -1 when unloaded or nothing is selected.
func (s *Session) selectedIndex() int {
	if !s.loaded() || s.selected == "" {
		return -1
	}
	return s.form.FieldIndex(s.selected)
}

func (s *Session) selectedOptions() ([]models.Option, bool) {
	i := s.selectedIndex()
	if i < 0 {
		return nil, false
	}
	return models.FieldOptions(s.form.Fields[i])
}

func (s *Session) commit(ctx context.Context, next *models.Form) error {
	if err := s.store.Update(ctx, next); err != nil {
		return fmt.Errorf("persist form %s: %w", next.ID, err)
	}
	s.form = next
	return nil
}
