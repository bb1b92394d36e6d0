package api

type ReportDetail struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ReportSection struct {
	Title   string         `json:"title"`
	Sources []string       `json:"sources,omitempty"`
	Details []ReportDetail `json:"details"`
}

type Report struct {
	Title    string          `json:"title"`
	Source   string          `json:"source"`
	Debug    bool            `json:"debug,omitempty"`
	Sections []ReportSection `json:"sections"`
}

type Profile struct {
	Name string `json:"name"`
}

type Error struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
}
