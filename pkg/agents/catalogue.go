package agents

var catalogue = []Agent{
	{
		Id:          "orchestrator",
		Name:        "Orchestrator Agent",
		Description: "Central coordinator that routes tasks to specialized agents.",
		Capabilities: []string{
			"Route complex queries",
			"Manage inter-agent communication",
			"System health monitoring",
		},
		Examples: []string{
			"Analyze system status and generate a visual report with actionable items.",
			"What is the status of the college accreditation?",
			"Help me plan the academic calendar for 2025.",
		},
	},
	{
		Id:          "principal",
		Name:        "Principal Agent",
		Description: "Executive agent for institutional decision making and approval.",
		Capabilities: []string{
			"Approve high-value budgets",
			"Review Departmental Performance",
			"Issue Campus-wide Circulars",
			"Analyze Admissions Data",
		},
		Examples: []string{
			"Generate the Annual Report for the Board.",
			"Approve the pending budget requests for CS Department.",
			"Draft a circular for the upcoming Convocation.",
		},
	},
	{
		Id:          "hod",
		Name:        "HOD Agent",
		Description: "Department administrator for academic and faculty management.",
		Capabilities: []string{
			"Assign Faculty Workload",
			"Review Curriculum vs Industry Gaps",
			"Approve Student Leave",
			"Monitor Class Attendance",
		},
		Examples: []string{
			"Create a workload distribution plan for next semester.",
			"Generate a report on low-attendance students.",
			"Identify skill gaps in the current AI/ML curriculum.",
		},
	},
	{
		Id:          "faculty",
		Name:        "Faculty Agent",
		Description: "Academic assistant for teaching, grading, and research.",
		Capabilities: []string{
			"Generate Course File Documentation",
			"Create Lesson Plans",
			"Automate Grading (Demo)",
			"Track Research Publications",
		},
		Examples: []string{
			"Generate a Course File structure for Data Structures.",
			"Create a lesson plan for \"Introduction to Graphs\" (1 hour).",
			"Draft a quiz with 5 MCQs on Binary Trees.",
		},
	},
	{
		Id:          "admin",
		Name:        "Administrative Agent",
		Description: "Operational agent for finance, HR, and student services.",
		Capabilities: []string{
			"Process Student Fee Payments",
			"Manage Vendor Purchase Orders",
			"Issue Bonafide Certificates",
			"Update Hostel Allocations",
		},
		Examples: []string{
			"Draft a purchase order for 50 new dell monitors.",
			"Check pending fee dues for Final Year students.",
			"Generate a Bonafide Certificate template.",
		},
	},
	{
		Id:          "iqac",
		Name:        "IQAC Coordinator",
		Description: "Internal Quality Assurance Cell for NAAC/NBA compliance.",
		Capabilities: []string{
			"Generate AQAR Reports",
			"Monitor Quality Metrics",
			"Prepare SSR Documentation",
			"Track Faculty Publications",
		},
		Examples: []string{
			"Draft the AQAR for the academic year 2024-25.",
			"Analyze faculty publication trends for the last 5 years.",
			"Check status of NAAC criteria 3 data.",
		},
	},
	{
		Id:          "coe",
		Name:        "Controller of Examinations",
		Description: "Authority for conducting exams and declaring results.",
		Capabilities: []string{
			"Publish Examination Schedule",
			"Process Result Revaluation",
			"Generate Student Grade Cards",
			"Manage Exam Hall Allocations",
		},
		Examples: []string{
			"Generate the end-semester exam timetable.",
			"Analyze pass percentage for CS Department.",
			"Process grade sheets for Batch 2024.",
		},
	},
	{
		Id:          "finance",
		Name:        "Finance Officer",
		Description: "Head of financial planning, budget, and audits.",
		Capabilities: []string{
			"Approve Department Budgets",
			"Generate Financial Audit Reports",
			"Track Fee Collection",
			"Manage Payroll",
		},
		Examples: []string{
			"Generate the annual budget utilization report.",
			"Review pending vendor payments.",
			"Analyze fee collection status for First Year.",
		},
	},
	{
		Id:          "student",
		Name:        "Student",
		Description: "Access to personal academic records and services.",
		Capabilities: []string{
			"View Attendance Record",
			"Download Grade Card",
			"Check Fee Status",
			"Submit Grievance",
		},
		Examples: []string{
			"What is my attendance percentage in Data Structures?",
			"Download my latest grade card.",
			"When is the next fee payment due?",
		},
	},
	{
		Id:          "tpo",
		Name:        "Training & Placement Officer",
		Description: "Manages campus placements and student training.",
		Capabilities: []string{
			"Generate Placement Report",
			"Track Company Drives",
			"Analyze Student Skill Gaps",
			"Manage Internship Records",
		},
		Examples: []string{
			"Generate the annual placement report for 2024.",
			"List top recruiters for CSE department.",
			"Check internship status of final year students.",
		},
	},
	{
		Id:          "librarian",
		Name:        "Librarian",
		Description: "Manages library resources and access.",
		Capabilities: []string{
			"Generate Library Annual Report",
			"Track Book Usage",
			"Manage Digital Subscriptions",
			"Inventory Audit",
		},
		Examples: []string{
			"Generate the annual library utilization report.",
			"Track usage of IEEE journals.",
			"List new book arrivals for this month.",
		},
	},
	{
		Id:          "anti_ragging",
		Name:        "Anti-Ragging Committee",
		Description: "Monitors and prevents ragging incidents.",
		Capabilities: []string{
			"Generate Anti-Ragging Report",
			"Monitor Squad Logs",
			"Track Affidavits",
			"Manage Hotline Complaints",
		},
		Examples: []string{
			"Generate the quarterly anti-ragging report.",
			"Check compliance status of mandatory affidavits.",
			"Review squad patrol logs.",
		},
	},
	{
		Id:          "sc_st_cell",
		Name:        "SC/ST/OBC Cell Coordinator",
		Description: "Ensures welfare and compliance for reserved categories.",
		Capabilities: []string{
			"Generate SC/ST Cell Report",
			"Track Scholarship Disbursement",
			"Monitor Grievances",
			"Ensure Reservation Compliance",
		},
		Examples: []string{
			"Generate the annual SC/ST cell report.",
			"Check scholarship status for ST students.",
			"Review reservation compliance in admissions.",
		},
	},
	{
		Id:          "icc",
		Name:        "ICC Chairperson",
		Description: "Internal Complaints Committee for sexual harassment prevention.",
		Capabilities: []string{
			"Generate ICC Annual Report",
			"Track Harassment Complaints",
			"Monitor Awareness Programs",
			"Ensure Legal Compliance",
		},
		Examples: []string{
			"Simulate a campus network outage.",
			"Generate a phishing attack simulation report.",
			"Audit the firewall logs for anomalies.",
		},
	},
	{
		Id:          "accreditation_manager",
		Name:        "Accreditation Manager",
		Description: "Specialized agent for Washington Accord & NAC compliance management.",
		Capabilities: []string{
			"Washington Accord Compliance (PO/CO)",
			"MBGL Level Assessment (1-5)",
			"Generate Self-Assessment Reports (SAR)",
			"Digital Audit Package Preparation",
		},
		Examples: []string{
			"What is the current MBGL level of B.Tech CSE?",
			"Generate the PO attainment report for \"Data Structures\".",
			"Draft the Executive Summary for the SAR.",
			"Show me the gap analysis for PO4.",
		},
	},
	{
		Id:          "grievance",
		Name:        "Grievance Redressal Committee",
		Description: "Addresses general student and faculty grievances.",
		Capabilities: []string{
			"Generate Grievance Redressal Report",
			"Track Grievance Resolution",
			"Analyze Complaint Trends",
			"Suggest Policy Changes",
		},
		Examples: []string{
			"Generate the semester-wise grievance report.",
			"Analyze pending grievances for >15 days.",
			"Review feedback on grievance resolution.",
		},
	},
	{
		Id:          "women_cell",
		Name:        "Women Empowerment Cell",
		Description: "Promotes women welfare and empowerment.",
		Capabilities: []string{
			"Generate Women Cell Report",
			"Organize Empowerment Events",
			"Monitor Safety Measures",
			"Support Grievance Redressal",
		},
		Examples: []string{
			"Generate the annual Women Empowerment Cell report.",
			"Plan events for Women's Day.",
			"Check functional status of safety measures.",
		},
	},
}
