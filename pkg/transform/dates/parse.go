package dates

import (
	"context"
	"strings"
	"time"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// Parse converts a string column into a time column. Placeholder strings and
// absent cells become nulls; everything else is tried against Layouts in
// order, first successful parse wins. Because the list is ordered, inputs
// that are valid under two layouts (e.g. 05-03-2020 as month-day or
// day-month) always resolve to the earlier layout. That ambiguity is a
// property of the data, not something the parser tries to second-guess.
//
// A column that is already a time column is left untouched, so the transform
// is a no-op on its own output. Defaulted, when non-nil, counts cells that
// held text but produced no date.
type Parse struct {
	Column       string
	Layouts      []string
	Placeholders []string
	Defaulted    *int
}

func (t *Parse) Name() string { return "parse_dates" }

func (t *Parse) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	c, ok := col.(*j.StringColumn)
	if !ok {
		return f, nil
	}
	out := j.NewTimeColumn(t.Column, 0)
	for i := 0; i < c.Len(); i++ {
		v, present := c.Get(i)
		if !present {
			out.AppendNull()
			continue
		}
		v = strings.TrimSpace(v)
		if t.isPlaceholder(v) {
			out.AppendNull()
			bump(t.Defaulted)
			continue
		}
		if ts, ok := t.parse(v); ok {
			out.Append(ts)
		} else {
			out.AppendNull()
			bump(t.Defaulted)
		}
	}
	return f, f.ReplaceColumn(t.Column, out)
}

func (t *Parse) parse(v string) (time.Time, bool) {
	for _, layout := range t.Layouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (t *Parse) isPlaceholder(v string) bool {
	if v == "" {
		return true
	}
	for _, p := range t.Placeholders {
		if v == p {
			return true
		}
	}
	return false
}

func bump(p *int) {
	if p != nil {
		*p++
	}
}
