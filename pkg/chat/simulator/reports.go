package simulator

import "sort"

const defaultReportTitle = "Annual Report"

// Report titles the simulator knows how to "generate".
var reportTitles = []string{
	"NAAC Self-Study Report (SSR)",
	"NBA Self-Assessment Report",
	"AQAR (NAAC) Report",
	"AICTE Mandatory Disclosure",
	"NIRF Data Report",
	"Annual Report",
	"Financial Audit Report",
	"Academic Audit Report",
	"Anti-Ragging Report",
	"SC/ST/OBC Cell Report",
	"Examination Results Analysis Report",
	"Placement Report",
	"Faculty Development Report",
	"Student Feedback Analysis Report",
	"Library Annual Report",
	"Infrastructure Utilization Report",
	"Research Publication Report",
	"Internal Complaints Committee (ICC) Report",
	"Grievance Redressal Report",
	"Women Empowerment Cell Report",
	"Graduate Attribute Tracking Report",
	"CO-PO Attainment Report",
	"Budget Utilization Report",
	"Institution Overview",
}

// Longest first, so "Library Annual Report" wins over "Annual Report".
var matchOrder = func() []string {
	out := make([]string, len(reportTitles))
	copy(out, reportTitles)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// ReportTitles returns the known report catalogue.
func ReportTitles() []string {
	out := make([]string, len(reportTitles))
	copy(out, reportTitles)
	return out
}
