package policy

import (
	"context"
	"regexp"
	"strings"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

var phoneJunk = regexp.MustCompile(`[^A-Za-z0-9]`)

// CleanPhone normalizes phone numbers: absent cells and the "NULL" literal
// become Missing, everything else is stripped to its alphanumerics and cut
// to the rightmost 10 characters. Numbers with fewer than 10 usable
// characters become Missing as well; padding would invent digits and
// keeping the short remainder would break the fixed-width contract.
type CleanPhone struct {
	Column    string
	Missing   string
	Defaulted *int
}

func (t *CleanPhone) Name() string { return "clean_phone" }

func (t *CleanPhone) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	c, ok := col.(*j.StringColumn)
	if !ok {
		return f, nil
	}
	for i := 0; i < c.Len(); i++ {
		v, present := c.Get(i)
		if !present {
			c.Set(i, t.Missing)
			t.bump()
			continue
		}
		v = strings.TrimSpace(v)
		if v == t.Missing {
			c.Set(i, t.Missing)
			continue
		}
		if v == "NULL" {
			c.Set(i, t.Missing)
			t.bump()
			continue
		}
		stripped := phoneJunk.ReplaceAllString(v, "")
		if len(stripped) < 10 {
			c.Set(i, t.Missing)
			t.bump()
			continue
		}
		c.Set(i, stripped[len(stripped)-10:])
	}
	return f, nil
}

func (t *CleanPhone) bump() {
	if t.Defaulted != nil {
		*t.Defaulted++
	}
}
