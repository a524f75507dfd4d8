package compiler

// DocumentStatus records what happened to one document in a bundle.
type DocumentStatus string

const (
	StatusIncluded  DocumentStatus = "included"
	StatusTruncated DocumentStatus = "truncated"
	// StatusDropped marks a document that overflowed with too little room left.
	StatusDropped DocumentStatus = "dropped"
	StatusMissing DocumentStatus = "missing"
	StatusEmpty   DocumentStatus = "empty"
)

// DocumentReport is the outcome for one document.
type DocumentReport struct {
	Name   string         `json:"name"`
	Status DocumentStatus `json:"status"`
	Chars  int            `json:"chars"`
}

// BundleReport summarizes one written artifact. Chars is the budget-charged
// size; TotalChars is the full artifact length.
type BundleReport struct {
	Target     string           `json:"target"`
	Bundle     string           `json:"bundle"`
	Path       string           `json:"path"`
	Budget     int              `json:"budget"`
	Chars      int              `json:"chars"`
	TotalChars int              `json:"total_chars"`
	Documents  []DocumentReport `json:"documents"`
}

func (r *BundleReport) add(name string, status DocumentStatus, chars int) {
	r.Documents = append(r.Documents, DocumentReport{Name: name, Status: status, Chars: chars})
}

// Truncated reports whether the bundle hit its budget.
func (r *BundleReport) Truncated() bool {
	for _, d := range r.Documents {
		if d.Status == StatusTruncated || d.Status == StatusDropped {
			return true
		}
	}
	return false
}

// Count returns how many documents have status.
func (r *BundleReport) Count(status DocumentStatus) int {
	n := 0
	for _, d := range r.Documents {
		if d.Status == status {
			n++
		}
	}
	return n
}
