package scrub

import (
	"context"
	"math"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// Round rounds every present value of a float column to Decimals places,
// half away from zero.
type Round struct {
	Column   string
	Decimals int
}

func (t *Round) Name() string { return "round" }

func (t *Round) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	if c, ok := col.(*j.FloatColumn); ok {
		pow := math.Pow10(t.Decimals)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			c.Set(i, math.Round(v*pow)/pow)
		}
	}
	return f, nil
}
