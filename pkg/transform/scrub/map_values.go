package scrub

import (
	"context"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// MapValues rewrites string cells through a lookup table. Lookups are
// case-sensitive; values outside the table pass through unchanged unless
// Default is set, in which case misses (and absent cells) are relabeled to
// *Default. Misses, when non-nil, counts every cell that fell outside the
// table.
type MapValues struct {
	Column  string
	Map     map[string]string
	Default *string
	Misses  *int
}

func (t *MapValues) Name() string { return "map_values" }

func (t *MapValues) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	if c, ok := col.(*j.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				if t.Default != nil {
					c.Set(i, *t.Default)
					bump(t.Misses)
				}
				continue
			}
			v, _ := c.Get(i)
			if nv, ok := t.Map[v]; ok {
				c.Set(i, nv)
				continue
			}
			bump(t.Misses)
			if t.Default != nil {
				c.Set(i, *t.Default)
			}
		}
	}
	return f, nil
}

func bump(p *int) {
	if p != nil {
		*p++
	}
}
