package simulator

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"erp-agent-nexus/internal/dto"
	"erp-agent-nexus/pkg/agents"
	"erp-agent-nexus/pkg/chat/resolver"
)

const generatedReportSize = 2 * 1024 * 1024

// Generator produces plausible assistant responses without network access.
type Generator struct {
	latency time.Duration
}

var _ resolver.Source = (*Generator)(nil)

// NewGenerator creates a generator that waits latency before answering.
func NewGenerator(latency time.Duration) *Generator {
	return &Generator{latency: latency}
}

func (g *Generator) Name() string {
	return "simulator"
}

// Respond waits for the simulated latency, or until ctx is done.
func (g *Generator) Respond(ctx context.Context, q resolver.Query) (*dto.ChatBackendResponse, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return Generate(q.Text, q.RoleId), nil
}

// Generate applies the keyword rules to a query. It never fails.
func Generate(query, roleId string) *dto.ChatBackendResponse {
	lower := strings.ToLower(query)

	switch {
	case strings.Contains(lower, "generate") && strings.Contains(lower, "report"):
		return reportResponse(matchReport(lower))
	case strings.Contains(lower, "status") || strings.Contains(lower, "accreditation"):
		return accreditationResponse()
	case strings.Contains(lower, "analyze") || strings.Contains(lower, "insight"):
		return analysisResponse()
	default:
		return greetingResponse(roleId)
	}
}

func matchReport(lowerQuery string) string {
	for _, title := range matchOrder {
		if strings.Contains(lowerQuery, strings.ToLower(title)) {
			return title
		}
	}
	return defaultReportTitle
}

func reportResponse(title string) *dto.ChatBackendResponse {
	visualizations := []dto.ChatBackendVisualization{}
	switch {
	case strings.Contains(title, "Placement"):
		visualizations = append(visualizations, chart("bar", "Placement Statistics (2024)",
			[]string{"CSE", "ECE", "MECH", "CIVIL", "EEE"},
			[]float64{95, 88, 72, 65, 80}))
	case strings.Contains(title, "Budget") || strings.Contains(title, "Financial"):
		visualizations = append(visualizations, chart("pie", "Budget Utilization",
			[]string{"Infrastructure", "R&D", "Salaries", "Student Dev", "Misc"},
			[]float64{40, 25, 20, 10, 5}))
	case strings.Contains(title, "Student") || strings.Contains(title, "Result"):
		visualizations = append(visualizations, chart("line", "Average GPA Trend (Last 5 Semesters)",
			[]string{"Sem 1", "Sem 2", "Sem 3", "Sem 4", "Sem 5"},
			[]float64{7.2, 7.4, 7.8, 7.5, 8.1}))
	}

	template := strings.ReplaceAll(url.QueryEscape(title), "+", "%20")

	return &dto.ChatBackendResponse{
		Content: fmt.Sprintf("I have generated the **%s** as requested based on the latest available data.", title),
		DocumentsGenerated: []dto.ChatBackendDocument{{
			Filename:  title + ".pdf",
			Path:      "#",
			Type:      "PDF",
			SizeBytes: generatedReportSize,
		}},
		Visualizations: visualizations,
		ActionItems: []dto.ChatBackendActionItem{
			{Label: "Download PDF", ActionType: "download", Payload: map[string]interface{}{"path": "#"}, Variant: "primary"},
			{Label: "Edit in Builder", ActionType: "link", Payload: map[string]interface{}{
				"url": "/reports/builder?template=" + template + "&auto=true",
			}},
		},
		SuggestedPrompts: []string{"Analyze this report", "Email to Principal"},
	}
}

func accreditationResponse() *dto.ChatBackendResponse {
	return &dto.ChatBackendResponse{
		Content: "### Accreditation Status Update\n\n" +
			"**Current Status:** On Track\n" +
			"**Next Milestone:** NBA Peer Team Visit (Scheduled: Dec 2025)\n\n" +
			"I have analyzed the current metrics against the compliance standards:",
		Visualizations: []dto.ChatBackendVisualization{
			chart("bar", "Compliance by Criteria",
				[]string{"Curriculum", "Teaching", "Outcomes", "Faculty", "Facilities"},
				[]float64{85, 92, 78, 88, 95}),
		},
		ActionItems: []dto.ChatBackendActionItem{
			{Label: "View Detailed Dashboard", ActionType: "link", Payload: map[string]interface{}{"url": "/accreditation"}, Variant: "primary"},
		},
		SuggestedPrompts: []string{"Show detailed gaps", "Schedule review meeting"},
	}
}

func analysisResponse() *dto.ChatBackendResponse {
	return &dto.ChatBackendResponse{
		Content: "### Analysis Result\n\n" +
			"Based on the system logs and performance metrics, here is the analysis:\n\n" +
			"*   **Trend:** Positive upward trend in student attendance (5% increase).\n" +
			"*   **Anomaly:** Detected irregular server load spikes during non-exam hours.\n" +
			"*   **Recommendation:** Review firewall logs for potential security probing.",
		Visualizations: []dto.ChatBackendVisualization{
			chart("line", "Attendance Trend (Last 7 Days)",
				[]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
				[]float64{75, 78, 80, 82, 85, 84}),
		},
		SuggestedPrompts: []string{"Investigate Security Logs", "Generate Attendance Report"},
	}
}

func greetingResponse(roleId string) *dto.ChatBackendResponse {
	return &dto.ChatBackendResponse{
		Content: fmt.Sprintf("I am the **%s Agent** running in **Offline Mode**. \n\n"+
			"I can help you simulate workflows, generate mock reports, and demonstrate the UI capabilities without the live backend.\n\n"+
			"*Try asking me to \"Generate NAAC Report\" or \"Show Accreditation Status\".*", agents.DisplayName(roleId)),
		SuggestedPrompts: []string{"Generate NAAC Report", "Show Accreditation Status", "Analyze Student Performance"},
	}
}

// chart builds the loosely typed data map the wire format carries.
func chart(kind, title string, labels []string, values []float64) dto.ChatBackendVisualization {
	l := make([]interface{}, len(labels))
	for i, s := range labels {
		l[i] = s
	}
	v := make([]interface{}, len(values))
	for i, f := range values {
		v[i] = f
	}
	return dto.ChatBackendVisualization{
		Type:  kind,
		Title: title,
		Data:  map[string]interface{}{"labels": l, "values": v},
	}
}
