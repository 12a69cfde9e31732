package capability

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/Cyclone1070/repoqa/internal/tool"
)

var reflector = &jsonschema.Reflector{
	DoNotReference: true,
	ExpandedStruct: true,
}

// schemaOf describes the argument struct returned by input. Anything that
// cannot be reflected into an object schema yields the permissive schema.
func schemaOf(input func() any) (schema *tool.Schema) {
	defer func() {
		if r := recover(); r != nil {
			schema = tool.ObjectSchema()
		}
	}()

	v := input()
	if v == nil {
		return tool.ObjectSchema()
	}
	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return tool.ObjectSchema()
	}

	reflected := reflector.Reflect(v)
	if reflected == nil || reflected.Type != string(tool.TypeObject) {
		return tool.ObjectSchema()
	}
	return convertSchema(reflected)
}

func convertSchema(s *jsonschema.Schema) *tool.Schema {
	out := &tool.Schema{
		Type:        tool.Type(s.Type),
		Description: s.Description,
		Default:     normaliseDefault(s.Default),
	}
	if out.Type == "" {
		out.Type = tool.TypeString
	}

	if s.Properties != nil && s.Properties.Len() > 0 {
		out.Properties = make(map[string]*tool.Schema, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = convertSchema(pair.Value)
		}
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Items != nil {
		out.Items = convertSchema(s.Items)
	}
	for _, e := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(e))
	}
	return out
}

// normaliseDefault turns the json.Number defaults produced for numeric
// fields into plain Go numbers.
func normaliseDefault(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return v
}
