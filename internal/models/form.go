package models

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	DefaultFormTitle       = "My Custom Form"
	DefaultFormDescription = "This is a form that can be customized."
)

// Form attribute names accepted by the form property editor.
const (
	FormPropTitle       = "title"
	FormPropDescription = "description"
	FormPropFields      = "fields"
)

// Form is a titled, ordered collection of fields. Field order is the
// display and tab order.
type Form struct {
	ID          string
	Title       string
	Description string
	Fields      []Field
}

// NewForm returns an empty form with default title and description.
func NewForm() *Form {
	return &Form{
		ID:          uuid.NewString(),
		Title:       DefaultFormTitle,
		Description: DefaultFormDescription,
		Fields:      []Field{},
	}
}

// Clone returns a deep copy of the form.
func (f *Form) Clone() *Form {
	if f == nil {
		return nil
	}
	c := *f
	c.Fields = make([]Field, len(f.Fields))
	for i, field := range f.Fields {
		c.Fields[i] = CloneField(field)
	}
	return &c
}

// FieldIndex returns the position of the field with id, or -1.
func (f *Form) FieldIndex(id string) int {
	for i, field := range f.Fields {
		if field.FieldID() == id {
			return i
		}
	}
	return -1
}

// Field returns the field with id, or nil.
func (f *Form) Field(id string) Field {
	if i := f.FieldIndex(id); i >= 0 {
		return f.Fields[i]
	}
	return nil
}

// SetProperty writes a top-level form attribute.
func (f *Form) SetProperty(key, value string) error {
	switch key {
	case FormPropTitle:
		f.Title = value
	case FormPropDescription:
		f.Description = value
	case PropID, FormPropFields:
		return fmt.Errorf("%w: %s", ErrImmutableProperty, key)
	default:
		return fmt.Errorf("%w: %q on form", ErrUnknownProperty, key)
	}
	return nil
}

// Equal reports structural equality of two forms.
func (f *Form) Equal(o *Form) bool {
	if f == nil || o == nil {
		return f == nil && o == nil
	}
	if f.ID != o.ID || f.Title != o.Title || f.Description != o.Description || len(f.Fields) != len(o.Fields) {
		return false
	}
	for i := range f.Fields {
		if !FieldsEqual(f.Fields[i], o.Fields[i]) {
			return false
		}
	}
	return true
}
