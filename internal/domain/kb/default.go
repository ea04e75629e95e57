package kb

import "fmt"

// defaultEntries is the Sentinel Secure Services FAQ shipped with the binary.
var defaultEntries = []KnowledgeEntry{
	{
		ID:       "services-overview",
		Question: "What services do you provide?",
		Keywords: []string{"services", "provide", "offer", "capabilities", "solutions"},
		Answer:   "Sentinel Secure Services provides integrated security programs including physical guarding, access control management, patrol and perimeter security, CCTV monitoring, remote surveillance, alarm management, risk assessments, compliance consulting, and coordinated emergency response.",
	},
	{
		ID:       "monitoring-247",
		Question: "Do you offer 24/7 monitoring?",
		Keywords: []string{"24/7", "monitoring", "command", "control", "soc", "after hours"},
		Answer:   "Yes. Our command & control operations support 24/7 monitoring options, including after-hours escalation workflows, event triage, and documented incident handling. Coverage is tailored based on your site risk and operating hours.",
	},
	{
		ID:       "industries",
		Question: "Which industries do you serve?",
		Keywords: []string{"industries", "corporate", "manufacturing", "warehouse", "hospital", "clinic", "education", "residential", "retail"},
		Answer:   "We serve commercial, industrial, residential, and institutional clients. Typical coverage includes corporate offices, manufacturing and warehousing, hospitals and clinics, educational institutions, residential communities, and retail or shopping centers.",
	},
	{
		ID:       "guards",
		Question: "Are your guards licensed and trained?",
		Keywords: []string{"guards", "licensed", "trained", "personnel", "uniformed", "background"},
		Answer:   "Yes. Our security personnel are licensed and trained for site SOPs, access governance, de-escalation, patrol discipline, incident documentation, and escalation protocols. Training plans are aligned to your operating environment.",
	},
	{
		ID:       "incident-reporting",
		Question: "How do you handle incident reporting?",
		Keywords: []string{"incident", "report", "reporting", "analytics", "timeline", "severity"},
		Answer:   "Incidents are recorded with timestamps, severity classification, officer notes, actions taken, and closure status. The client dashboard demonstrates downloadable report summaries and structured analytics for service reviews and audits.",
	},
	{
		ID:       "access-logs",
		Question: "Do you maintain access control logs?",
		Keywords: []string{"access", "logs", "visitor", "employee", "entry", "badge"},
		Answer:   "Yes. We maintain structured access logs for employee entry and visitor access (date/time, site, outcome, and method). In production deployments, logs are governed by role-based access and audit trails.",
	},
	{
		ID:       "compliance",
		Question: "Do you support compliance and documentation?",
		Keywords: []string{"compliance", "iso", "privacy", "audit", "sla", "documents", "insurance"},
		Answer:   "Yes. Our programs are designed to be compliance-ready with structured documentation. The portal includes compliance certificates, SLA agreements, and insurance documents with secure viewing and download controls (demo).",
	},
	{
		ID:       "emergency",
		Question: "Can you support emergency response and liaison?",
		Keywords: []string{"emergency", "evacuation", "liaison", "law", "enforcement", "incident handling"},
		Answer:   "Yes. We coordinate incident handling, emergency evacuation support, and law-enforcement liaison when required. Response workflows follow predefined escalation playbooks and are documented for post-incident review.",
	},
	{
		ID:       "consultation",
		Question: "How do I request a security consultation?",
		Keywords: []string{"consultation", "request", "assessment", "audit", "site"},
		Answer:   "You can request a security consultation directly on the Home page. We typically start with a risk assessment and site audit, then deliver a customized security plan with coverage and reporting recommendations.",
	},
	{
		ID:       "client-login",
		Question: "How do I access the client dashboard?",
		Keywords: []string{"login", "client", "dashboard", "portal", "register"},
		Answer:   "Use Client Login to access the dashboard. If you don’t have an account, register first. For this demo site, you can use the provided demo credentials on the Login page to sign in instantly.",
	},
}

// DefaultSuggestions are the example prompts offered by the assistant.
var DefaultSuggestions = []string{
	"What services do you provide?",
	"Do you offer 24/7 monitoring?",
	"Are your guards licensed and trained?",
	"How do I request a security consultation?",
	"How do I access the client dashboard?",
}

// Default returns the compiled-in knowledge base. It panics if the literal
// data is invalid, which the package tests rule out.
func Default() *KB {
	k, err := New(defaultEntries, WithSuggestions(DefaultSuggestions...))
	if err != nil {
		panic(fmt.Sprintf("kb: invalid default knowledge base: %v", err))
	}
	return k
}
