package registry

import (
	"github.com/Cyclone1070/repoqa/internal/tool/directory"
	"github.com/Cyclone1070/repoqa/internal/tool/file"
	"github.com/Cyclone1070/repoqa/internal/tool/search"
	"github.com/Cyclone1070/repoqa/internal/tool/shell"
)

// Builtin returns the registry of repository exploration tools.
func Builtin() *Registry {
	return New(
		For(directory.NewListDirTool),
		For(directory.NewFindFileTool),
		For(file.NewReadFileTool),
		For(search.NewSearchForPatternTool),
		For(shell.NewExecuteShellCommandTool),
	)
}
