package domain

// Report represents a complete deal analysis report
type Report struct {
	Title    string
	Source   string // input document the report was computed from
	Debug    bool
	Sections []ReportSection
}

// ReportSection represents one category of derived fields
type ReportSection struct {
	Title   string
	Sources []string // where the category's numbers usually come from
	Details []ReportDetail
}

// ReportDetail represents a single labelled, already formatted value
type ReportDetail struct {
	Name  string
	Value string
}
