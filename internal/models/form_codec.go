package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fieldRecord is the persisted shape of a field. Pointer members are the
// tag-relevant attributes; nil ones are left out of the output.
type fieldRecord struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Required    bool      `json:"required"`
	Placeholder *string   `json:"placeholder,omitempty"`
	Options     *[]Option `json:"options,omitempty"`
	Checked     *bool     `json:"checked,omitempty"`
}

type fieldWire struct {
	ID          *string       `json:"id"`
	Type        *string       `json:"type"`
	Label       *string       `json:"label"`
	Required    *bool         `json:"required"`
	Placeholder *string       `json:"placeholder"`
	Options     *[]optionWire `json:"options"`
	Checked     *bool         `json:"checked"`
}

type optionWire struct {
	Value *string `json:"value"`
	Label *string `json:"label"`
}

type formRecord struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Fields      []fieldRecord `json:"fields"`
}

type formWire struct {
	ID          *string            `json:"id"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Fields      *[]json.RawMessage `json:"fields"`
}

func toFieldRecord(f Field) fieldRecord {
	b := f.base()
	rec := fieldRecord{ID: b.ID, Type: f.Kind(), Label: b.Label, Required: b.Required}
	switch v := f.(type) {
	case *TextField:
		rec.Placeholder = &v.Placeholder
	case *EmailField:
		rec.Placeholder = &v.Placeholder
	case *TelField:
		rec.Placeholder = &v.Placeholder
	case *TextareaField:
		rec.Placeholder = &v.Placeholder
	case *SelectField:
		opts := cloneOptions(v.Options)
		rec.Options = &opts
	case *RadioField:
		opts := cloneOptions(v.Options)
		rec.Options = &opts
	case *CheckboxField:
		rec.Checked = &v.Checked
	}
	return rec
}

// MarshalField encodes a single field with its type tag.
func MarshalField(f Field) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil field", ErrInvalidFormData)
	}
	return json.Marshal(toFieldRecord(f))
}

// UnmarshalField decodes a tagged field record. An unknown tag fails with
// ErrInvalidFieldType; a missing id, or missing options on select/radio,
// fails with ErrInvalidFormData.
func UnmarshalField(data []byte) (Field, error) {
	var w fieldWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: field: %v", ErrInvalidFormData, err)
	}
	if w.Type == nil {
		return nil, fmt.Errorf("%w: field missing type", ErrInvalidFormData)
	}
	t, err := ParseFieldType(*w.Type)
	if err != nil {
		return nil, err
	}
	if w.ID == nil || strings.TrimSpace(*w.ID) == "" {
		return nil, fmt.Errorf("%w: %s field missing id", ErrInvalidFormData, t)
	}

	f := newFieldWithID(t, *w.ID)
	b := f.base()
	if w.Label != nil {
		b.Label = *w.Label
	}
	if w.Required != nil {
		b.Required = *w.Required
	}

	switch v := f.(type) {
	case *TextField:
		applyPlaceholder(&v.Placeholder, w.Placeholder)
	case *EmailField:
		applyPlaceholder(&v.Placeholder, w.Placeholder)
	case *TelField:
		applyPlaceholder(&v.Placeholder, w.Placeholder)
	case *TextareaField:
		applyPlaceholder(&v.Placeholder, w.Placeholder)
	case *SelectField:
		if v.Options, err = decodeOptions(t, w.Options); err != nil {
			return nil, err
		}
	case *RadioField:
		if v.Options, err = decodeOptions(t, w.Options); err != nil {
			return nil, err
		}
	case *CheckboxField:
		if w.Checked != nil {
			v.Checked = *w.Checked
		}
	}
	return f, nil
}

func applyPlaceholder(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func decodeOptions(t FieldType, raw *[]optionWire) ([]Option, error) {
	if raw == nil || *raw == nil {
		return nil, fmt.Errorf("%w: %s field missing options", ErrInvalidFormData, t)
	}
	opts := make([]Option, 0, len(*raw))
	for i, o := range *raw {
		if o.Value == nil || o.Label == nil {
			return nil, fmt.Errorf("%w: %s option %d needs value and label", ErrInvalidFormData, t, i)
		}
		opts = append(opts, Option{Value: *o.Value, Label: *o.Label})
	}
	return opts, nil
}

// MarshalJSON emits {id,title,description,fields} with tagged fields.
func (f Form) MarshalJSON() ([]byte, error) {
	rec := formRecord{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Fields:      make([]fieldRecord, 0, len(f.Fields)),
	}
	for i, field := range f.Fields {
		if field == nil {
			return nil, fmt.Errorf("%w: nil field at %d", ErrInvalidFormData, i)
		}
		rec.Fields = append(rec.Fields, toFieldRecord(field))
	}
	return json.Marshal(rec)
}

// UnmarshalJSON decodes and validates a form record.
func (f *Form) UnmarshalJSON(data []byte) error {
	var w formWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormData, err)
	}
	switch {
	case w.ID == nil || strings.TrimSpace(*w.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidFormData)
	case w.Title == nil:
		return fmt.Errorf("%w: form %s missing title", ErrInvalidFormData, *w.ID)
	case w.Description == nil:
		return fmt.Errorf("%w: form %s missing description", ErrInvalidFormData, *w.ID)
	case w.Fields == nil || *w.Fields == nil:
		return fmt.Errorf("%w: form %s missing fields", ErrInvalidFormData, *w.ID)
	}

	fields := make([]Field, 0, len(*w.Fields))
	seen := make(map[string]struct{}, len(*w.Fields))
	for i, raw := range *w.Fields {
		field, err := UnmarshalField(raw)
		if err != nil {
			return fmt.Errorf("%w: form %s field %d: %w", ErrInvalidFormData, *w.ID, i, err)
		}
		if _, dup := seen[field.FieldID()]; dup {
			return fmt.Errorf("%w: form %s has duplicate field id %s", ErrInvalidFormData, *w.ID, field.FieldID())
		}
		seen[field.FieldID()] = struct{}{}
		fields = append(fields, field)
	}

	*f = Form{ID: *w.ID, Title: *w.Title, Description: *w.Description, Fields: fields}
	return nil
}

// EncodeForms serializes a collection into the persisted blob.
func EncodeForms(forms []Form) (string, error) {
	if forms == nil {
		forms = []Form{}
	}
	data, err := json.Marshal(forms)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeForms parses the persisted blob. A blob that is not a JSON array
// fails with ErrDecode. Records that fail validation are skipped and
// reported in the second return value.
func DecodeForms(blob string) ([]Form, []error, error) {
	if strings.TrimSpace(blob) == "" {
		return []Form{}, nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raws); err != nil {
		return []Form{}, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	forms := make([]Form, 0, len(raws))
	var invalid []error
	for i, raw := range raws {
		var form Form
		if err := json.Unmarshal(raw, &form); err != nil {
			invalid = append(invalid, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		forms = append(forms, form)
	}
	return forms, invalid, nil
}
