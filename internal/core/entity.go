package core

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Entity is any record the engine can manage. The identifier must be stable
// and unique within a tab; the engine needs nothing else from the shape.
type Entity interface {
	EntityID() string
}

// FieldGetter lets an entity answer field lookups itself instead of going
// through reflection.
type FieldGetter interface {
	Field(name string) (any, bool)
}

// Record is an untyped entity keyed by field name. The "id" key is its identifier.
type Record map[string]any

// EntityID implements Entity.
func (r Record) EntityID() string {
	return FormatValue(r["id"])
}

// Field implements FieldGetter.
func (r Record) Field(name string) (any, bool) {
	if v, ok := r[name]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// RawRecord is one untyped row read from an imported spreadsheet.
// Keys are header names as they appeared in the file.
type RawRecord map[string]string

// LineField is the RawRecord key holding the 1-based line of the row in its
// source file. Readers that drop blank rows set it so errors point at the
// right line.
const LineField = "_line"

// Line returns the source line recorded under LineField.
func (r RawRecord) Line() (int, bool) {
	n, err := strconv.Atoi(r[LineField])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// FieldValue returns the value of the field called name on e.
//
// Lookup order: FieldGetter, then exported struct fields matched by json tag
// or field name (case-insensitive). Missing fields and nil entities return
// (nil, false).
func FieldValue(e Entity, name string) (any, bool) {
	if e == nil || name == "" {
		return nil, false
	}
	if g, ok := e.(FieldGetter); ok {
		return g.Field(name)
	}

	v := reflect.ValueOf(e)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return structField(v, name)
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	}
	return nil, false
}

// structField finds a field by json tag first, then by Go name.
func structField(v reflect.Value, name string) (any, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := strings.Split(sf.Tag.Get("json"), ",")[0]
		if tag == "-" {
			continue
		}
		if strings.EqualFold(tag, name) || (tag == "" && strings.EqualFold(sf.Name, name)) {
			return v.Field(i).Interface(), true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, name) {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

// FieldString returns the display text of a field, or "" when it is missing.
func FieldString(e Entity, name string) string {
	v, ok := FieldValue(e, name)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// FormatValue converts a field value to the text used for display, search and
// equality filters. Both sides of a filter comparison go through it.
func FormatValue(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		return formatTime(val)
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return FormatValue(rv.Elem().Interface())
	}
	return fmt.Sprintf("%v", v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// CompareIDs orders identifiers numerically when both are integers and
// lexically otherwise. Returns -1, 0 or 1.
func CompareIDs(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// FindByID returns the element of items whose identifier is id.
// The returned value is the element itself, not a copy of what it points to.
func FindByID[E Entity](items []E, id string) (E, bool) {
	for _, item := range items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero E
	return zero, false
}
