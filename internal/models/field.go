package models

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// FieldType is the discriminant of a form field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
)

// DefaultFieldLabel is the label every new field starts with.
const DefaultFieldLabel = "New Field"

// FieldTypeInfo describes a palette entry shown by the editor sidebar.
type FieldTypeInfo struct {
	Type FieldType `json:"type"`
	Name string    `json:"name"`
	Icon string    `json:"icon"`
}

var fieldPalette = []FieldTypeInfo{
	{Type: FieldTypeText, Name: "Text", Icon: "text"},
	{Type: FieldTypeEmail, Name: "Email", Icon: "mail"},
	{Type: FieldTypeTel, Name: "Phone", Icon: "phone"},
	{Type: FieldTypeTextarea, Name: "Text Area", Icon: "file-text"},
	{Type: FieldTypeSelect, Name: "Dropdown", Icon: "list"},
	{Type: FieldTypeCheckbox, Name: "Checkbox", Icon: "check-square"},
	{Type: FieldTypeRadio, Name: "Radio Group", Icon: "circle"},
}

// FieldTypes returns the palette in display order.
func FieldTypes() []FieldTypeInfo {
	return slices.Clone(fieldPalette)
}

// DisplayName returns the palette name of t, or t itself when unknown.
func DisplayName(t FieldType) string {
	for _, info := range fieldPalette {
		if info.Type == t {
			return info.Name
		}
	}
	return string(t)
}

// ParseFieldType validates a raw field tag.
func ParseFieldType(raw string) (FieldType, error) {
	t := FieldType(raw)
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeTel, FieldTypeTextarea,
		FieldTypeSelect, FieldTypeCheckbox, FieldTypeRadio:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFieldType, raw)
}

// Option is one choice of a select or radio field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DefaultOptions returns the two options select and radio fields start with.
func DefaultOptions() []Option {
	return []Option{
		{Value: "option1", Label: "Option 1"},
		{Value: "option2", Label: "Option 2"},
	}
}

// BaseField holds the attributes shared by every field kind.
type BaseField struct {
	ID       string
	Label    string
	Required bool
}

// FieldID returns the immutable field identifier.
func (b BaseField) FieldID() string { return b.ID }

func (b *BaseField) base() *BaseField { return b }

// Field is a closed sum over the seven field kinds. Only types in this
// package implement it.
type Field interface {
	FieldID() string
	Kind() FieldType
	base() *BaseField
}

type TextField struct {
	BaseField
	Placeholder string
}

type EmailField struct {
	BaseField
	Placeholder string
}

type TelField struct {
	BaseField
	Placeholder string
}

type TextareaField struct {
	BaseField
	Placeholder string
}

type SelectField struct {
	BaseField
	Options []Option
}

type RadioField struct {
	BaseField
	Options []Option
}

type CheckboxField struct {
	BaseField
	Checked bool
}

func (*TextField) Kind() FieldType     { return FieldTypeText }
func (*EmailField) Kind() FieldType    { return FieldTypeEmail }
func (*TelField) Kind() FieldType      { return FieldTypeTel }
func (*TextareaField) Kind() FieldType { return FieldTypeTextarea }
func (*SelectField) Kind() FieldType   { return FieldTypeSelect }
func (*RadioField) Kind() FieldType    { return FieldTypeRadio }
func (*CheckboxField) Kind() FieldType { return FieldTypeCheckbox }

func defaultPlaceholder(t FieldType) string {
	switch t {
	case FieldTypeText:
		return "Enter text..."
	case FieldTypeEmail:
		return "Enter email..."
	case FieldTypeTel:
		return "Enter phone number..."
	case FieldTypeTextarea:
		return "Enter a longer message..."
	}
	return ""
}

// NewField builds a default-initialized field of kind t with a fresh id.
func NewField(t FieldType) (Field, error) {
	if _, err := ParseFieldType(string(t)); err != nil {
		return nil, err
	}
	return newFieldWithID(t, uuid.NewString()), nil
}

func newFieldWithID(t FieldType, id string) Field {
	base := BaseField{ID: id, Label: DefaultFieldLabel}
	switch t {
	case FieldTypeText:
		return &TextField{BaseField: base, Placeholder: defaultPlaceholder(t)}
	case FieldTypeEmail:
		return &EmailField{BaseField: base, Placeholder: defaultPlaceholder(t)}
	case FieldTypeTel:
		return &TelField{BaseField: base, Placeholder: defaultPlaceholder(t)}
	case FieldTypeTextarea:
		return &TextareaField{BaseField: base, Placeholder: defaultPlaceholder(t)}
	case FieldTypeSelect:
		return &SelectField{BaseField: base, Options: DefaultOptions()}
	case FieldTypeRadio:
		return &RadioField{BaseField: base, Options: DefaultOptions()}
	case FieldTypeCheckbox:
		return &CheckboxField{BaseField: base}
	}
	return nil
}

// CloneField returns a deep copy of f. The id is preserved verbatim.
func CloneField(f Field) Field {
	switch v := f.(type) {
	case *TextField:
		c := *v
		return &c
	case *EmailField:
		c := *v
		return &c
	case *TelField:
		c := *v
		return &c
	case *TextareaField:
		c := *v
		return &c
	case *SelectField:
		c := *v
		c.Options = cloneOptions(v.Options)
		return &c
	case *RadioField:
		c := *v
		c.Options = cloneOptions(v.Options)
		return &c
	case *CheckboxField:
		c := *v
		return &c
	}
	return nil
}

// FieldsEqual reports structural equality, id and kind included.
func FieldsEqual(a, b Field) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || *a.base() != *b.base() {
		return false
	}
	switch x := a.(type) {
	case *TextField:
		return x.Placeholder == b.(*TextField).Placeholder
	case *EmailField:
		return x.Placeholder == b.(*EmailField).Placeholder
	case *TelField:
		return x.Placeholder == b.(*TelField).Placeholder
	case *TextareaField:
		return x.Placeholder == b.(*TextareaField).Placeholder
	case *SelectField:
		return slices.Equal(x.Options, b.(*SelectField).Options)
	case *RadioField:
		return slices.Equal(x.Options, b.(*RadioField).Options)
	case *CheckboxField:
		return x.Checked == b.(*CheckboxField).Checked
	}
	return false
}

// FieldOptions returns the option list of f and whether its kind carries one.
func FieldOptions(f Field) ([]Option, bool) {
	switch v := f.(type) {
	case *SelectField:
		return v.Options, true
	case *RadioField:
		return v.Options, true
	}
	return nil, false
}

func cloneOptions(opts []Option) []Option {
	if opts == nil {
		return []Option{}
	}
	return slices.Clone(opts)
}
