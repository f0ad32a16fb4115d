package core

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
)

// FieldType is the input type of a form field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldNumeric
	FieldBool
	FieldEmail
)

// String returns the HTML input type for the field.
func (t FieldType) String() string {
	switch t {
	case FieldEnum:
		return "select"
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "number"
	case FieldBool:
		return "checkbox"
	case FieldEmail:
		return "email"
	default:
		return "text"
	}
}

// FormData holds decoded form values keyed by field name.
type FormData map[string]string

// Get returns the trimmed value of name.
func (d FormData) Get(name string) string {
	return strings.TrimSpace(d[name])
}

// Float parses name as a number. Empty values are 0.
func (d FormData) Float(name string) (float64, error) {
	v := d.Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for %s: %q", name, v)
	}
	return f, nil
}

// Int parses name as an integer. Empty values are 0.
func (d FormData) Int(name string) (int, error) {
	f, err := d.Float(name)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Bool reports whether name holds a truthy checkbox value.
func (d FormData) Bool(name string) bool {
	switch strings.ToLower(d.Get(name)) {
	case "1", "true", "on", "yes", "oui":
		return true
	}
	return false
}

// Date parses name as YYYY-MM-DD. Empty values are the zero time.
func (d FormData) Date(name string) (time.Time, error) {
	v := d.Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date for %s: %q", name, v)
	}
	return t, nil
}

// FormField is one input of an entity form, populated for rendering.
type FormField struct {
	Name     string
	Label    string
	Type     FieldType
	Required bool
	Options  []FilterOption
	Value    string
}

// Form is the entity-specific form collaborator.
//
// Fields describes the inputs; selected is nil when creating and the item
// being edited otherwise. Decode validates submitted values.
type Form interface {
	Fields(selected Entity) []FormField
	Decode(values map[string]string) (FormData, error)
}

// FieldSpec declares one input of a FormSpec.
type FieldSpec struct {
	Name     string
	Label    string
	Type     FieldType
	Required bool
	Options  []FilterOption // Valid values for FieldEnum
	Default  string         // Initial value; also fills empty non-checkbox submissions
}

// FormSpec is a declarative Form. Values of the selected entity are read
// through FieldValue using each field's Name.
type FormSpec struct {
	Specs []FieldSpec
}

// Fields implements Form.
func (f FormSpec) Fields(selected Entity) []FormField {
	fields := make([]FormField, len(f.Specs))
	for i, spec := range f.Specs {
		value := spec.Default
		if selected != nil {
			value = FieldString(selected, spec.Name)
		}
		fields[i] = FormField{
			Name:     spec.Name,
			Label:    spec.Label,
			Type:     spec.Type,
			Required: spec.Required,
			Options:  spec.Options,
			Value:    value,
		}
	}
	return fields
}

// Decode implements Form. It checks presence and type only; entity rules
// belong to the store.
func (f FormSpec) Decode(values map[string]string) (FormData, error) {
	data := make(FormData, len(f.Specs))
	var errs []string

	for _, spec := range f.Specs {
		v := strings.TrimSpace(values[spec.Name])
		// Absent checkboxes are unchecked, not defaulted.
		if v == "" && spec.Type != FieldBool {
			v = spec.Default
		}
		label := spec.Label
		if label == "" {
			label = spec.Name
		}

		if v == "" {
			if spec.Required && spec.Type != FieldBool {
				errs = append(errs, fmt.Sprintf("required field: %s", label))
			}
			data[spec.Name] = ""
			continue
		}

		switch spec.Type {
		case FieldNumeric:
			if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64); err != nil {
				errs = append(errs, fmt.Sprintf("invalid number: %s", label))
			}
		case FieldDate:
			if _, err := time.Parse("2006-01-02", v); err != nil {
				errs = append(errs, fmt.Sprintf("invalid date: %s", label))
			}
		case FieldEmail:
			if _, err := mail.ParseAddress(v); err != nil {
				errs = append(errs, fmt.Sprintf("invalid email: %s", label))
			}
		case FieldEnum:
			if len(spec.Options) > 0 && !hasOption(spec.Options, v) {
				errs = append(errs, fmt.Sprintf("invalid enum: %s", label))
			}
		case FieldBool:
			if (FormData{spec.Name: v}).Bool(spec.Name) {
				v = "true"
			} else {
				v = "false"
			}
		}
		data[spec.Name] = v
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Problems: errs}
	}
	return data, nil
}

func hasOption(opts []FilterOption, v string) bool {
	for _, o := range opts {
		if strings.EqualFold(o.Value, v) {
			return true
		}
	}
	return false
}

// ValidationError lists every problem found in a submitted form.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}
