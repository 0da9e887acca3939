package openapi

import (
	"reflect"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// TypeMapping maps a Go type to an OpenAPI type/format pair.
type TypeMapping struct {
	Type   string // OpenAPI type: string, integer, number, boolean, object, array
	Format string // OpenAPI format: int32, int64, float, double, date-time, etc.
}

var timeType = reflect.TypeOf(time.Time{})

// MapGoType converts a Go type to an OpenAPI type mapping. Pointers are
// dereferenced; unknown kinds fall back to {"string", ""}.
func MapGoType(t reflect.Type) TypeMapping {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return TypeMapping{"string", "date-time"}
	}
	switch t.Kind() {
	case reflect.Bool:
		return TypeMapping{"boolean", ""}
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return TypeMapping{"integer", "int64"}
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return TypeMapping{"integer", "int32"}
	case reflect.Float32:
		return TypeMapping{"number", "float"}
	case reflect.Float64:
		return TypeMapping{"number", "double"}
	case reflect.Slice, reflect.Array:
		return TypeMapping{"array", ""}
	case reflect.Map, reflect.Struct, reflect.Interface:
		return TypeMapping{"object", ""}
	default:
		return TypeMapping{"string", ""}
	}
}

// SchemaOf builds an object schema from the exported, JSON-visible fields of
// v's struct type. Fields tagged json:"-" are skipped; readOnly names fields
// the server assigns.
func SchemaOf(v interface{}, readOnly ...string) *openapi3.Schema {
	ro := make(map[string]bool, len(readOnly))
	for _, name := range readOnly {
		ro[name] = true
	}
	return schemaFor(reflect.TypeOf(v), ro)
}

func schemaFor(t reflect.Type, readOnly map[string]bool) *openapi3.Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	m := MapGoType(t)
	s := typeSchema(m)

	switch {
	case m.Type == "array":
		s.Items = &openapi3.SchemaRef{Value: schemaFor(t.Elem(), nil)}
	case t.Kind() == reflect.Map:
		s.AdditionalProperties = openapi3.AdditionalProperties{
			Schema: &openapi3.SchemaRef{Value: schemaFor(t.Elem(), nil)},
		}
	case t.Kind() == reflect.Struct && t != timeType:
		s.Properties = openapi3.Schemas{}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, ok := jsonName(f)
			if !ok {
				continue
			}
			fs := schemaFor(f.Type, nil)
			fs.ReadOnly = readOnly[name]
			s.Properties[name] = &openapi3.SchemaRef{Value: fs}
		}
	}
	return s
}

// jsonName returns the JSON property name of f and whether it is encoded.
func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name, true
}

func typeSchema(m TypeMapping) *openapi3.Schema {
	return &openapi3.Schema{Type: &openapi3.Types{m.Type}, Format: m.Format}
}
