package capability

import (
	"fmt"
	"log/slog"

	"github.com/Cyclone1070/repoqa/internal/tool"
	"github.com/Cyclone1070/repoqa/internal/tool/registry"
	"github.com/Cyclone1070/repoqa/internal/workspace"
)

// Set is an insertion-ordered collection of capabilities with unique names.
type Set struct {
	byName map[string]*Capability
	order  []*Capability
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{byName: make(map[string]*Capability)}
}

// Add appends c. The first capability registered under a name wins; later
// ones are rejected with ErrDuplicateName.
func (s *Set) Add(c *Capability) error {
	if _, exists := s.byName[c.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, c.Name())
	}
	s.byName[c.Name()] = c
	s.order = append(s.order, c)
	return nil
}

// Get returns the capability with the given name.
func (s *Set) Get(name string) (*Capability, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// All returns the capabilities in insertion order.
func (s *Set) All() []*Capability {
	out := make([]*Capability, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Set) Len() int { return len(s.order) }

func (s *Set) Names() []string {
	names := make([]string, len(s.order))
	for i, c := range s.order {
		names[i] = c.Name()
	}
	return names
}

// Declarations returns the model-facing declarations in insertion order.
func (s *Set) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, len(s.order))
	for i, c := range s.order {
		decls[i] = c.Declaration()
	}
	return decls
}

// Source enumerates tool descriptors, e.g. *registry.Registry.
type Source interface {
	All() []registry.Descriptor
}

// Discover filters, adapts and collects every descriptor of source in order.
// Ineligible descriptors are skipped; adaptation failures and duplicate
// names are logged and skipped. Discovery never aborts.
func Discover(source Source, ws *workspace.Workspace, filter Filter, logger *slog.Logger) *Set {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	set := NewSet()
	for _, d := range source.All() {
		if !filter.IsEligible(d) {
			logger.Debug("tool filtered out", "type", d.TypeName)
			continue
		}
		c, err := Adapt(d, ws)
		if err != nil {
			logger.Warn("skipping tool", "type", d.TypeName, "error", err)
			continue
		}
		if err := set.Add(c); err != nil {
			logger.Warn("skipping tool", "type", d.TypeName, "error", err)
			continue
		}
		logger.Debug("tool loaded", "name", c.Name())
	}
	return set
}
