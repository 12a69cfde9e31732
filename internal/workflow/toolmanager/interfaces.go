package toolmanager

import (
	"github.com/Cyclone1070/repoqa/internal/capability"
	"github.com/Cyclone1070/repoqa/internal/tool"
)

// capabilities is the set of tools the model may call.
type capabilities interface {
	// Get returns the capability registered under name.
	Get(name string) (*capability.Capability, bool)

	// Declarations returns all tool schemas for the LLM, in registration order.
	Declarations() []tool.Declaration
}
