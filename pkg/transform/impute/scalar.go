package impute

import (
	"context"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// Scalar fills nulls in a float column with a value computed ahead of the
// pipeline run (e.g. the mean of the raw column). Keeping the statistic out
// of the transform means it cannot be skewed by earlier cleaning stages or by
// chunked execution. Filled, when non-nil, counts imputed cells.
type Scalar struct {
	Column string
	Value  float64
	Filled *int
}

func (t *Scalar) Name() string { return "impute_scalar" }

func (t *Scalar) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	if c, ok := col.(*j.FloatColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				c.Set(i, t.Value)
				if t.Filled != nil {
					*t.Filled++
				}
			}
		}
	}
	return f, nil
}
