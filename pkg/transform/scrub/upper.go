package scrub

import (
	"context"
	"strings"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

type Upper struct{ Column string }

func (t *Upper) Name() string { return "upper" }

func (t *Upper) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	if c, ok := col.(*j.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			c.Set(i, strings.ToUpper(v))
		}
	}
	return f, nil
}
