package policy

import (
	"context"
	"strconv"
	"strings"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// CleanClaim converts the raw claim_amount text column into a numeric column
// with no absent values. The rule runs in two passes over the column: the
// first rewrites literal placeholders ("NULL", "N/A") to zero, the second
// rewrites true absence to zero and parses what remains. Text that is
// neither a placeholder nor a number also becomes zero, since a typed column
// cannot carry it through; Zeroed counts every zeroed cell.
//
// On a column that is already numeric only the absence pass applies, which
// makes the transform a no-op on its own output.
type CleanClaim struct {
	Column string
	Zeroed *int
}

func (t *CleanClaim) Name() string { return "clean_claim" }

func (t *CleanClaim) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	switch c := col.(type) {
	case *j.FloatColumn:
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, 0)
				t.bump()
			}
		}
		return f, nil
	case *j.StringColumn:
		n := c.Len()
		out := j.NewFloatColumn(t.Column, n)
		for i := 0; i < n; i++ {
			out.SetNull(i)
		}
		// pass one: literal placeholders
		for i := 0; i < n; i++ {
			v, present := c.Get(i)
			if !present {
				continue
			}
			switch strings.TrimSpace(v) {
			case "NULL", Missing:
				out.Set(i, 0)
				t.bump()
			}
		}
		// pass two: true absence, then pass-through of the numeric remainder
		for i := 0; i < n; i++ {
			if !out.IsNull(i) {
				continue
			}
			v, present := c.Get(i)
			if !present {
				out.Set(i, 0)
				t.bump()
				continue
			}
			if x, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				out.Set(i, x)
			} else {
				out.Set(i, 0)
				t.bump()
			}
		}
		return f, f.ReplaceColumn(t.Column, out)
	default:
		return f, nil
	}
}

func (t *CleanClaim) bump() {
	if t.Zeroed != nil {
		*t.Zeroed++
	}
}
