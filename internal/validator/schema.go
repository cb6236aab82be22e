package validator

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"math/big"
	"slices"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// Schemas applied to book request bodies.
var (
	NewBook    = mustLoadSchema("schemas/new_book.json")
	UpdateBook = mustLoadSchema("schemas/update_book.json")
)

// rootContext is how gojsonschema names the top of the document.
const rootContext = "(root)"

// Schema is a compiled JSON schema together with the declaration order of
// its properties, which fixes the order of reported messages.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
	fields []string
}

// LoadSchema compiles the JSON schema document raw.
func LoadSchema(name string, raw []byte) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	fields, err := propertyOrder(raw)
	if err != nil {
		return nil, fmt.Errorf("read properties of %s: %w", name, err)
	}

	return &Schema{name: name, schema: compiled, fields: fields}, nil
}

func mustLoadSchema(path string) *Schema {
	raw, err := schemaFiles.ReadFile(path)
	if err != nil {
		panic(err)
	}
	s, err := LoadSchema(path, raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the path the schema was loaded from.
func (s *Schema) Name() string { return s.name }

// Validate checks body against the schema. It returns nil for a valid
// document and a *ValidationError listing one message per violation
// otherwise. body is never modified.
func (s *Schema) Validate(body []byte) error {
	v := New()

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		v.AddError("instance is not valid JSON: " + err.Error())
		return v.Err()
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validate against %s: %w", s.name, err)
	}

	errs := result.Errors()
	sort.SliceStable(errs, func(i, j int) bool {
		return s.rank(errs[i]) < s.rank(errs[j])
	})

	for _, e := range errs {
		v.AddError(describe(e))
	}

	return v.Err()
}

// rank orders messages by the property they concern, in declaration order.
// Messages raised on the object itself (required, additional property)
// sort before messages raised on the property value.
func (s *Schema) rank(e gojsonschema.ResultError) int {
	segments := strings.Split(e.Context().String(), ".")

	field, nested := "", 1
	if len(segments) > 1 {
		field = segments[1]
	} else if p, ok := e.Details()["property"].(string); ok {
		field, nested = p, 0
	} else {
		return -1
	}

	idx := slices.Index(s.fields, field)
	if idx < 0 {
		idx = len(s.fields)
	}
	return idx*2 + nested
}

// describe renders e in the message vocabulary clients already depend on,
// e.g. `instance requires property "isbn"`.
func describe(e gojsonschema.ResultError) string {
	path := "instance" + strings.TrimPrefix(e.Context().String(), rootContext)
	details := e.Details()

	switch e.Type() {
	case "required":
		return fmt.Sprintf("%s requires property %q", path, details["property"])
	case "additional_property_not_allowed":
		return fmt.Sprintf("%s is not allowed to have the additional property %q", path, details["property"])
	case "invalid_type":
		return fmt.Sprintf("%s is not of a type(s) %v", path, details["expected"])
	case "format":
		return fmt.Sprintf("%s does not conform to the %q format", path, details["format"])
	case "number_gt":
		return fmt.Sprintf("%s must be strictly greater than %s", path, formatBound(details["min"]))
	case "number_gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", path, formatBound(details["min"]))
	case "number_lt":
		return fmt.Sprintf("%s must be strictly less than %s", path, formatBound(details["max"]))
	case "number_lte":
		return fmt.Sprintf("%s must be less than or equal to %s", path, formatBound(details["max"]))
	default:
		return path + " " + e.Description()
	}
}

func formatBound(v any) string {
	switch n := v.(type) {
	case *big.Rat:
		return n.RatString()
	case *big.Float:
		return n.Text('f', -1)
	case json.Number:
		return n.String()
	default:
		return fmt.Sprint(v)
	}
}

// propertyOrder returns the keys of the schema's "properties" object in the
// order they are written.
func propertyOrder(raw []byte) ([]string, error) {
	var doc struct {
		Properties json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Properties) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(doc.Properties))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var fields []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		fields = append(fields, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return fields, nil
}
