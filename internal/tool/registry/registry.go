// Package registry enumerates the tool types available to the agent.
// It knows how to construct each tool but nothing about filtering or adaptation.
package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/Cyclone1070/repoqa/internal/workspace"
)

// Tool is a constructed tool bound to a workspace.
type Tool interface {
	// Input returns a fresh pointer to the argument struct of Apply,
	// e.g. &ReadFileRequest{}. Nil means the tool takes free-form arguments.
	Input() any

	// Apply runs the tool with a decoded Input value.
	Apply(ctx context.Context, input any) (string, error)
}

// Documented is implemented by tools that describe their entry point.
type Documented interface {
	Doc() string
}

// Descriptor declares a tool type before it is instantiated.
type Descriptor struct {
	// TypeName is the raw type identifier, e.g. "ReadFileTool".
	TypeName string
	New      func(ws *workspace.Workspace) (Tool, error)
}

// Name is the canonical, model-facing name of the tool.
func (d Descriptor) Name() string {
	return NameFromType(d.TypeName)
}

// For builds a Descriptor from a typed constructor. The type name is taken
// from T, dereferenced when T is a pointer.
func For[T Tool](newFn func(ws *workspace.Workspace) (T, error)) Descriptor {
	typ := reflect.TypeFor[T]()
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return Descriptor{
		TypeName: typ.Name(),
		New: func(ws *workspace.Workspace) (Tool, error) {
			t, err := newFn(ws)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
	}
}

// NameFromType strips a trailing "Tool" and converts CamelCase to snake_case.
// Acronyms stay together: "HTTPGetTool" becomes "http_get".
func NameFromType(typeName string) string {
	base := strings.TrimSuffix(typeName, "Tool")
	if base == "" {
		base = typeName
	}
	runes := []rune(base)

	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Registry holds descriptors in registration order.
type Registry struct {
	byType map[string]struct{}
	order  []Descriptor
}

// New creates a registry holding descs.
func New(descs ...Descriptor) *Registry {
	r := &Registry{byType: make(map[string]struct{})}
	for _, d := range descs {
		r.Register(d)
	}
	return r
}

// Register adds a descriptor. Panics if the type name is already registered.
func (r *Registry) Register(d Descriptor) {
	if _, exists := r.byType[d.TypeName]; exists {
		panic(fmt.Sprintf("tool type already registered: %s", d.TypeName))
	}
	r.byType[d.TypeName] = struct{}{}
	r.order = append(r.order, d)
}

// All returns the descriptors in registration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.order))
	copy(out, r.order)
	return out
}
