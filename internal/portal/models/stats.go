package models

// VerdictDistribution counts results per verdict for dashboard charts.
type VerdictDistribution struct {
	Authentic  int `json:"authentic"`
	Suspicious int `json:"suspicious"`
	Fake       int `json:"fake"`
}

// AdminStats is the system-wide summary rendered on the admin dashboard.
type AdminStats struct {
	Users        int                 `json:"users"`
	Institutions int                 `json:"institutions"`
	Documents    int                 `json:"documents"`
	Validations  int                 `json:"validations"`
	Distribution VerdictDistribution `json:"distribution"`
}

// ActivityItem is one row of the admin recent-activity feed.
type ActivityItem struct {
	DocumentID  int64   `json:"document_id"`
	Filename    string  `json:"filename"`
	Verdict     Verdict `json:"verdict"`
	ValidatedAt string  `json:"validated_at"`
}

// InstitutionStats is the summary rendered on the institution dashboard.
type InstitutionStats struct {
	TotalRecords int `json:"total_records"`
}
