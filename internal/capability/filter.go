package capability

import (
	"slices"
	"strings"

	"github.com/Cyclone1070/repoqa/internal/tool/registry"
)

// Filter decides which descriptors may be exposed to the model.
// Anything not matching a rule is allowed.
type Filter struct {
	// HostIntegrations are type-name fragments of tools that need a live
	// editor connection. The agent runs headless, so they are rejected.
	HostIntegrations []string

	// MarkerPrefix and MarkerSuffix identify structural marker types that
	// are not invocable tools. Both must match.
	MarkerPrefix string
	MarkerSuffix string

	// Disabled lists canonical names rejected by configuration.
	Disabled []string
}

// DefaultFilter returns the filter used when nothing else is configured.
func DefaultFilter() Filter {
	return Filter{
		HostIntegrations: []string{"JetBrains"},
		MarkerPrefix:     "Tool",
		MarkerSuffix:     "Marker",
	}
}

// IsEligible reports whether d passes every rule.
func (f Filter) IsEligible(d registry.Descriptor) bool {
	for _, host := range f.HostIntegrations {
		if host != "" && strings.Contains(d.TypeName, host) {
			return false
		}
	}
	if f.MarkerPrefix != "" && f.MarkerSuffix != "" &&
		strings.HasPrefix(d.TypeName, f.MarkerPrefix) && strings.HasSuffix(d.TypeName, f.MarkerSuffix) {
		return false
	}
	if len(f.Disabled) > 0 && slices.Contains(f.Disabled, d.Name()) {
		return false
	}
	return true
}
