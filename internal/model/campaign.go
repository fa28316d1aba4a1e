package model

// Campaign is a saved job search: preference filters plus optional custom
// ranking weights. Campaigns are created and edited by the CRUD layer; the
// ranking core only reads them.
type Campaign struct {
	ID    string
	Name  string
	Query string // free-text keyword query, space separated terms

	Location        string
	Salary          *SalaryRange // desired band; nil = no salary preference
	RemoteTypes     []RemoteType
	Seniorities     []SeniorityLevel
	EmployerSizes   []string
	EmploymentTypes []string
	Skills          []string

	// Weights maps dimension names to percentages. nil means "use the
	// system defaults". Validated by ranker.Weights before any scoring.
	Weights map[string]float64
}
