package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// PropertyKind is the value type of an editable field property.
type PropertyKind string

const (
	PropertyString  PropertyKind = "string"
	PropertyBool    PropertyKind = "bool"
	PropertyOptions PropertyKind = "options"
)

// Field attribute names accepted by the property editor.
const (
	PropLabel       = "label"
	PropRequired    = "required"
	PropPlaceholder = "placeholder"
	PropOptions     = "options"
	PropChecked     = "checked"
	PropID          = "id"
	PropType        = "type"
)

type property struct {
	kind PropertyKind
	get  func() any
	set  func(any) error
}

// properties binds the accessor table of the concrete variant behind f.
func properties(f Field) map[string]property {
	var props map[string]property
	switch v := f.(type) {
	case *TextField:
		props = map[string]property{PropPlaceholder: stringProperty(&v.Placeholder)}
	case *EmailField:
		props = map[string]property{PropPlaceholder: stringProperty(&v.Placeholder)}
	case *TelField:
		props = map[string]property{PropPlaceholder: stringProperty(&v.Placeholder)}
	case *TextareaField:
		props = map[string]property{PropPlaceholder: stringProperty(&v.Placeholder)}
	case *SelectField:
		props = map[string]property{PropOptions: optionsProperty(&v.Options)}
	case *RadioField:
		props = map[string]property{PropOptions: optionsProperty(&v.Options)}
	case *CheckboxField:
		props = map[string]property{PropChecked: boolProperty(&v.Checked)}
	default:
		return nil
	}
	b := f.base()
	props[PropLabel] = stringProperty(&b.Label)
	props[PropRequired] = boolProperty(&b.Required)
	return props
}

func stringProperty(p *string) property {
	return property{
		kind: PropertyString,
		get:  func() any { return *p },
		set: func(v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: want string, got %T", ErrInvalidPropertyValue, v)
			}
			*p = s
			return nil
		},
	}
}

func boolProperty(p *bool) property {
	return property{
		kind: PropertyBool,
		get:  func() any { return *p },
		set: func(v any) error {
			*p = CoerceBool(v)
			return nil
		},
	}
}

func optionsProperty(p *[]Option) property {
	return property{
		kind: PropertyOptions,
		get:  func() any { return cloneOptions(*p) },
		set: func(v any) error {
			opts, err := coerceOptions(v)
			if err != nil {
				return err
			}
			*p = opts
			return nil
		},
	}
}

// PropertyNames lists the editable attributes of f, sorted.
func PropertyNames(f Field) []string {
	props := properties(f)
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PropertyKindOf reports the value type of key on f.
func PropertyKindOf(f Field, key string) (PropertyKind, error) {
	p, err := lookupProperty(f, key)
	if err != nil {
		return "", err
	}
	return p.kind, nil
}

// GetFieldProperty reads attribute key of f.
func GetFieldProperty(f Field, key string) (any, error) {
	if key == PropID {
		return f.FieldID(), nil
	}
	if key == PropType {
		return string(f.Kind()), nil
	}
	p, err := lookupProperty(f, key)
	if err != nil {
		return nil, err
	}
	return p.get(), nil
}

// SetFieldProperty writes attribute key of f. Boolean attributes accept UI
// strings ("true" in any case is true, anything else false) or any value
// cast by truthiness.
func SetFieldProperty(f Field, key string, value any) error {
	if key == PropID || key == PropType {
		return fmt.Errorf("%w: %s", ErrImmutableProperty, key)
	}
	p, err := lookupProperty(f, key)
	if err != nil {
		return err
	}
	if err := p.set(value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func lookupProperty(f Field, key string) (property, error) {
	p, ok := properties(f)[key]
	if !ok {
		return property{}, fmt.Errorf("%w: %q on %s field", ErrUnknownProperty, key, f.Kind())
	}
	return p, nil
}

// CoerceBool converts an editor payload to a boolean.
func CoerceBool(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return strings.EqualFold(x, "true")
	case int:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint64:
		return x != 0
	case float32:
		return x != 0
	case float64:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	case []Option:
		return len(x) > 0
	}
	return true
}

func coerceOptions(v any) ([]Option, error) {
	switch x := v.(type) {
	case []Option:
		return cloneOptions(x), nil
	case []any:
		opts := make([]Option, 0, len(x))
		for i, item := range x {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: option %d is %T", ErrInvalidPropertyValue, i, item)
			}
			value, vok := m["value"].(string)
			label, lok := m["label"].(string)
			if !vok || !lok {
				return nil, fmt.Errorf("%w: option %d needs string value and label", ErrInvalidPropertyValue, i)
			}
			opts = append(opts, Option{Value: value, Label: label})
		}
		return opts, nil
	}
	return nil, fmt.Errorf("%w: want option list, got %T", ErrInvalidPropertyValue, v)
}

// SlugifyOptionLabel derives an option value from its label.
func SlugifyOptionLabel(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

// SetOptionProperty writes key ("label" or "value") of opts[index] and
// returns a new slice. Setting the label also re-derives the value.
func SetOptionProperty(opts []Option, index int, key string, value string) ([]Option, error) {
	if index < 0 || index >= len(opts) {
		return nil, fmt.Errorf("%w: option index %d", ErrInvalidPropertyValue, index)
	}
	out := slices.Clone(opts)
	switch key {
	case "label":
		out[index].Label = value
		out[index].Value = SlugifyOptionLabel(value)
	case "value":
		out[index].Value = value
	default:
		return nil, fmt.Errorf("%w: %q on option", ErrUnknownProperty, key)
	}
	return out, nil
}
