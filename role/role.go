// Package role bundles an agent identity with the tools it works with.
package role

import (
	"github.com/simmyhq/simmy/tool"
	"github.com/simmyhq/simmy/tool/library"
)

// Role names an identity and the tool set that goes with it. The identity
// text is folded into the system prompt at startup.
type Role struct {
	Name     string
	Identity string
	Tools    []tool.Definition
}

// Researcher is a role equipped for web research and documentation.
func Researcher() Role {
	return Role{
		Name:     "Researcher",
		Identity: "A dedicated researcher with specialized tools for web research, data analysis, and documentation.",
		Tools: []tool.Definition{
			library.WebRequest(),
			library.Scraper(),
			library.WriteFile(),
		},
	}
}

// Minimal is a role with no tools beyond the task tracker's.
func Minimal() Role {
	return Role{
		Name:     "Assistant",
		Identity: "A helpful conversational assistant.",
	}
}
