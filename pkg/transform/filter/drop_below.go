package filter

import (
	"context"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// DropBelow removes rows whose value in a float column is present and below
// Min. Null cells are kept; dropping is reserved for values that are known
// and out of range. This is the only transform that changes row count.
type DropBelow struct {
	Column  string
	Min     float64
	Dropped *int
}

func (t *DropBelow) Name() string { return "drop_below" }

func (t *DropBelow) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	c, ok := col.(*j.FloatColumn)
	if !ok {
		return f, nil
	}
	before := f.Rows()
	out := f.Filter(func(row int) bool {
		v, present := c.Get(row)
		return !present || v >= t.Min
	})
	if t.Dropped != nil {
		*t.Dropped += before - out.Rows()
	}
	return out, nil
}
