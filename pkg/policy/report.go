package policy

import (
	"fmt"
	"strings"
)

// Report counts how many cells hit each placeholder or fallback branch
// during a run. Rules never reject a record (only the negative-amount filter
// drops rows), so these counters are the visibility into what the cleaning
// actually touched.
type Report struct {
	PhonesDefaulted     int
	EmailsDefaulted     int
	TypesUnmatched      int
	AmountsImputed      int
	RowsDropped         int
	ClaimsZeroed        int
	StatesRelabeled     int
	StartDatesDefaulted int
	EndDatesDefaulted   int
}

// Total returns the number of anomaly branches taken, rows and cells
// combined.
func (r Report) Total() int {
	return r.PhonesDefaulted + r.EmailsDefaulted + r.TypesUnmatched +
		r.AmountsImputed + r.RowsDropped + r.ClaimsZeroed + r.StatesRelabeled +
		r.StartDatesDefaulted + r.EndDatesDefaulted
}

func (r Report) String() string {
	var b strings.Builder
	b.WriteString("Cleaning Report\n")
	fmt.Fprintf(&b, "  phones defaulted:      %d\n", r.PhonesDefaulted)
	fmt.Fprintf(&b, "  emails defaulted:      %d\n", r.EmailsDefaulted)
	fmt.Fprintf(&b, "  types unmatched:       %d\n", r.TypesUnmatched)
	fmt.Fprintf(&b, "  amounts imputed:       %d\n", r.AmountsImputed)
	fmt.Fprintf(&b, "  rows dropped:          %d\n", r.RowsDropped)
	fmt.Fprintf(&b, "  claims zeroed:         %d\n", r.ClaimsZeroed)
	fmt.Fprintf(&b, "  states relabeled:      %d\n", r.StatesRelabeled)
	fmt.Fprintf(&b, "  start dates defaulted: %d\n", r.StartDatesDefaulted)
	fmt.Fprintf(&b, "  end dates defaulted:   %d\n", r.EndDatesDefaulted)
	return b.String()
}
