package domain

// RowDrop describes one row the loader could not turn into a record
type RowDrop struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

// LoadReport is the data-quality summary of loading one dataset
type LoadReport struct {
	Kind     DatasetKind    `json:"kind"`
	Sheet    string         `json:"sheet"`
	RowsSeen int            `json:"rows_seen"`
	Loaded   int            `json:"loaded"`
	Dropped  int            `json:"dropped"`
	Blank    int            `json:"blank"`
	Reasons  map[string]int `json:"reasons,omitempty"`
	Drops    []RowDrop      `json:"drops,omitempty"`
	Warning  string         `json:"warning,omitempty"`
}

// Drop records one dropped sheet row
func (r *LoadReport) Drop(row int, reason, detail string) {
	r.Dropped++
	if r.Reasons == nil {
		r.Reasons = make(map[string]int)
	}
	r.Reasons[reason]++
	r.Drops = append(r.Drops, RowDrop{Row: row, Reason: reason, Detail: detail})
}
