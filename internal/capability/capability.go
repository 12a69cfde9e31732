// Package capability turns registry descriptors into uniformly invocable
// capabilities that carry the tool's own name, documentation and schema.
package capability

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/repoqa/internal/tool"
	"github.com/Cyclone1070/repoqa/internal/tool/registry"
	"github.com/Cyclone1070/repoqa/internal/workspace"
)

// validator is implemented by argument structs that check themselves.
type validator interface {
	Validate() error
}

// Capability is one adapted tool. It is immutable once built.
type Capability struct {
	name        string
	description string
	schema      *tool.Schema
	tool        registry.Tool
}

// New builds a Capability around an already constructed tool.
// A nil schema is replaced by the permissive object schema.
func New(name, description string, schema *tool.Schema, t registry.Tool) *Capability {
	if schema == nil {
		schema = tool.ObjectSchema()
	}
	return &Capability{name: name, description: description, schema: schema, tool: t}
}

func (c *Capability) Name() string { return c.name }

func (c *Capability) Description() string { return c.description }

func (c *Capability) Schema() *tool.Schema { return c.schema }

// Declaration returns the model-facing function declaration.
func (c *Capability) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        c.name,
		Description: c.description,
		Parameters:  c.schema,
	}
}

// Adapt instantiates the descriptor's tool against ws and captures its
// canonical name, documentation and argument schema. Only a failed
// instantiation is an error; missing documentation or an unreflectable
// input degrade to empty defaults.
func Adapt(d registry.Descriptor, ws *workspace.Workspace) (c *Capability, err error) {
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = &AdaptationError{TypeName: d.TypeName, Cause: fmt.Errorf("constructor panicked: %v", r)}
		}
	}()

	if d.New == nil {
		return nil, &AdaptationError{TypeName: d.TypeName, Cause: ErrNoConstructor}
	}
	t, err := d.New(ws)
	if err != nil {
		return nil, &AdaptationError{TypeName: d.TypeName, Cause: err}
	}
	if t == nil {
		return nil, &AdaptationError{TypeName: d.TypeName, Cause: ErrNilTool}
	}

	return New(d.Name(), docOf(t), schemaOf(t.Input), t), nil
}

func docOf(t registry.Tool) (doc string) {
	defer func() {
		if recover() != nil {
			doc = ""
		}
	}()
	if d, ok := t.(registry.Documented); ok {
		return d.Doc()
	}
	return ""
}

// Invoke decodes args into the tool's argument struct, validates it and
// forwards to the tool. Every failure, including a panic inside the tool,
// is returned as an *InvocationError.
func (c *Capability) Invoke(ctx context.Context, args map[string]any) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = &InvocationError{Capability: c.name, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	input := c.tool.Input()
	if input == nil {
		input = args
	} else if err := decode(args, input); err != nil {
		return "", &InvocationError{Capability: c.name, Cause: fmt.Errorf("%w: %v", ErrInvalidArgs, err)}
	}

	if v, ok := input.(validator); ok {
		if err := v.Validate(); err != nil {
			return "", &InvocationError{Capability: c.name, Cause: fmt.Errorf("%w: %w", ErrInvalidArgs, err)}
		}
	}

	out, err := c.tool.Apply(ctx, input)
	if err != nil {
		return "", &InvocationError{Capability: c.name, Cause: err}
	}
	return out, nil
}

// Display describes a call for progress output, using the argument
// struct's String method when it has one.
func (c *Capability) Display(args map[string]any) (display string) {
	defer func() {
		if recover() != nil {
			display = ""
		}
	}()
	input := c.tool.Input()
	if input == nil || decode(args, input) != nil {
		return ""
	}
	if s, ok := input.(fmt.Stringer); ok {
		return s.String()
	}
	return ""
}

func decode(args map[string]any, input any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           input,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}
