package validate

import (
	"context"
	"regexp"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// Pattern checks every cell of a string column against an anchored regular
// expression. Cells that fail (or are absent) are rewritten to Fallback
// rather than rejected; Fallbacks counts how many were rewritten.
type Pattern struct {
	Column    string
	Pattern   string
	Fallback  string
	Fallbacks *int
	re        *regexp.Regexp
}

func (t *Pattern) Name() string { return "validate_pattern" }

func (t *Pattern) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	if t.re == nil {
		re, err := regexp.Compile(t.Pattern)
		if err != nil {
			return f, err
		}
		t.re = re
	}
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	if c, ok := col.(*j.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			v, present := c.Get(i)
			if present && t.re.MatchString(v) {
				continue
			}
			if present && v == t.Fallback {
				continue
			}
			c.Set(i, t.Fallback)
			if t.Fallbacks != nil {
				*t.Fallbacks++
			}
		}
	}
	return f, nil
}
