package output

// LintSummary is the summary section of lint output.
type LintSummary struct {
	FilesChecked    int    `json:"files_checked" yaml:"files_checked"`
	FilesWithIssues int    `json:"files_with_issues" yaml:"files_with_issues"`
	TotalIssues     int    `json:"total_issues" yaml:"total_issues"`
	Errors          int    `json:"errors" yaml:"errors"`
	Duration        string `json:"duration" yaml:"duration"`
}

// LintDiagnostic is one diagnostic in lint output.
type LintDiagnostic struct {
	Code      string `json:"code" yaml:"code"`
	Message   string `json:"message" yaml:"message"`
	Hint      string `json:"hint,omitempty" yaml:"hint,omitempty"`
	Line      int    `json:"line" yaml:"line"`
	Column    int    `json:"column" yaml:"column"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
	EndColumn int    `json:"end_column" yaml:"end_column"`
	DocURL    string `json:"doc_url,omitempty" yaml:"doc_url,omitempty"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path" yaml:"path"`
	Error       string           `json:"error,omitempty" yaml:"error,omitempty"`
	Diagnostics []LintDiagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// LintOutput is the JSON and YAML document written by the lint command.
type LintOutput struct {
	Summary LintSummary      `json:"summary" yaml:"summary"`
	Files   []LintFileResult `json:"files" yaml:"files"`
}
