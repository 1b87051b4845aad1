package simulator

import (
	"context"
	"testing"
	"time"

	"erp-agent-nexus/pkg/chat/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReport(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantTitle string
		wantChart string
	}{
		{"named report", "Generate Placement Report please", "Placement Report", "bar"},
		{"budget", "generate the budget utilization report", "Budget Utilization Report", "pie"},
		{"student feedback", "Generate Student Feedback Analysis Report", "Student Feedback Analysis Report", "line"},
		{"longest title wins", "generate library annual report", "Library Annual Report", ""},
		{"unknown defaults", "generate a report", defaultReportTitle, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Generate(tt.query, "principal")

			assert.Contains(t, resp.Content, "**"+tt.wantTitle+"**")
			require.Len(t, resp.DocumentsGenerated, 1)
			assert.Equal(t, tt.wantTitle+".pdf", resp.DocumentsGenerated[0].Filename)
			require.Len(t, resp.ActionItems, 2)
			assert.Equal(t, "Download PDF", resp.ActionItems[0].Label)
			assert.Equal(t, []string{"Analyze this report", "Email to Principal"}, resp.SuggestedPrompts)

			if tt.wantChart == "" {
				assert.Empty(t, resp.Visualizations)
				return
			}
			require.Len(t, resp.Visualizations, 1)
			assert.Equal(t, tt.wantChart, resp.Visualizations[0].Type)
		})
	}
}

func TestGenerateBuilderLinkIsEscaped(t *testing.T) {
	resp := Generate("generate NAAC Self-Study Report (SSR)", "")

	require.Len(t, resp.ActionItems, 2)
	assert.Equal(t,
		"/reports/builder?template=NAAC%20Self-Study%20Report%20%28SSR%29&auto=true",
		resp.ActionItems[1].Payload["url"])
}

func TestGenerateKeywordRules(t *testing.T) {
	status := Generate("What is the accreditation status?", "")
	assert.Contains(t, status.Content, "Accreditation Status Update")
	assert.Equal(t, "Compliance by Criteria", status.Visualizations[0].Title)

	analysis := Generate("Give me some insight", "")
	assert.Contains(t, analysis.Content, "Analysis Result")
	assert.Equal(t, []string{"Investigate Security Logs", "Generate Attendance Report"}, analysis.SuggestedPrompts)

	greeting := Generate("hello there", "hod")
	assert.Contains(t, greeting.Content, "I am the **Hod Agent** running in **Offline Mode**")
	assert.Len(t, greeting.SuggestedPrompts, 3)
	assert.Empty(t, greeting.Visualizations)
}

func TestChartDataIsLooselyTyped(t *testing.T) {
	viz := Generate("show status", "").Visualizations[0]

	labels, ok := viz.Data["labels"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, "Curriculum", labels[0])

	values, ok := viz.Data["values"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(85), values[0])
}

func TestRespondHonoursContext(t *testing.T) {
	g := NewGenerator(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := g.Respond(ctx, resolver.Query{Text: "hello"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp)
}

func TestRespondWithoutLatency(t *testing.T) {
	g := NewGenerator(0)

	resp, err := g.Respond(context.Background(), resolver.Query{Text: "hello", RoleId: "principal"})
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "Principal Agent")
	assert.Equal(t, "simulator", g.Name())
}
