package agents

import (
	"strings"

	"erp-agent-nexus/internal/constant"
)

// Agent is an assistant persona a chat session talks to.
type Agent struct {
	Id           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
	Examples     []string `json:"examples"`
}

var byId = func() map[string]Agent {
	m := make(map[string]Agent, len(catalogue))
	for _, a := range catalogue {
		m[a.Id] = a
	}
	return m
}()

// All returns the catalogue in display order.
func All() []Agent {
	out := make([]Agent, len(catalogue))
	copy(out, catalogue)
	return out
}

// Find reports whether id is a known agent.
func Find(id string) (Agent, bool) {
	a, ok := byId[id]
	return a, ok
}

// Lookup falls back to the orchestrator for unknown ids.
func Lookup(id string) Agent {
	if a, ok := byId[id]; ok {
		return a
	}
	return byId[constant.DefaultRoleId]
}

// DisplayName upper-cases the first letter of a role id ("hod" -> "Hod").
func DisplayName(roleId string) string {
	if roleId == "" {
		return ""
	}
	r := []rune(roleId)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
