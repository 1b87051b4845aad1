package history

import (
	"strings"

	"erp-agent-nexus/internal/entity"
)

// Build renders the last limit prior messages plus the current one as
// "ROLE: content" lines. A non-positive limit keeps no prior messages.
func Build(prior []entity.Message, current entity.Message, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if len(prior) > limit {
		prior = prior[len(prior)-limit:]
	}

	lines := make([]string, 0, len(prior)+1)
	for _, m := range prior {
		lines = append(lines, line(m))
	}
	lines = append(lines, line(current))

	return strings.Join(lines, "\n")
}

func line(m entity.Message) string {
	return strings.ToUpper(m.Role) + ": " + m.Content
}
