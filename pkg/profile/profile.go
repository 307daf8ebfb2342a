package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

type NumStats struct {
	Count int     `json:"count"`
	Nulls int     `json:"nulls"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Sum   float64 `json:"sum"`
}

// Mean returns the mean of the present values, and false when no value was
// present (the mean is undefined, not zero).
func (s *NumStats) Mean() (float64, bool) {
	if s.Count == 0 {
		return 0, false
	}
	return s.Sum / float64(s.Count), true
}

type StringStats struct {
	Count int            `json:"count"`
	Nulls int            `json:"nulls"`
	Freqs map[string]int `json:"top,omitempty"`
}

type ColumnProfile struct {
	Name string
	Kind j.Kind
	Num  *NumStats
	Str  *StringStats
}

// Collector accumulates per-column statistics over one or more frames that
// share a schema, so it works for both batch frames and chunked streams.
type Collector struct {
	cols  []ColumnProfile
	index map[string]int
	topK  int
}

func NewCollector(s j.Schema, topK int) *Collector {
	c := &Collector{index: make(map[string]int, len(s.Columns)), topK: topK}
	for i, cs := range s.Columns {
		cp := ColumnProfile{Name: cs.Name, Kind: cs.Type}
		switch cs.Type {
		case j.KindFloat, j.KindInt:
			cp.Num = &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
		default:
			cp.Str = &StringStats{Freqs: map[string]int{}}
		}
		c.cols = append(c.cols, cp)
		c.index[cs.Name] = i
	}
	return c
}

// Column returns the profile accumulated so far for a named column.
func (c *Collector) Column(name string) (ColumnProfile, bool) {
	i, ok := c.index[name]
	if !ok {
		return ColumnProfile{}, false
	}
	return c.cols[i], true
}

func (c *Collector) ConsumeFrame(f *j.Frame) {
	for _, cs := range f.Schema().Columns {
		idx, ok := c.index[cs.Name]
		if !ok {
			continue
		}
		cp := &c.cols[idx]
		col, _ := f.ColumnByName(cs.Name)
		switch tc := col.(type) {
		case *j.FloatColumn:
			for i := 0; i < tc.Len(); i++ {
				v, present := tc.Get(i)
				if !present {
					cp.Num.Nulls++
					continue
				}
				cp.Num.Count++
				cp.Num.Sum += v
				if v < cp.Num.Min {
					cp.Num.Min = v
				}
				if v > cp.Num.Max {
					cp.Num.Max = v
				}
			}
		case *j.IntColumn:
			for i := 0; i < tc.Len(); i++ {
				v, present := tc.Get(i)
				if !present {
					cp.Num.Nulls++
					continue
				}
				fv := float64(v)
				cp.Num.Count++
				cp.Num.Sum += fv
				if fv < cp.Num.Min {
					cp.Num.Min = fv
				}
				if fv > cp.Num.Max {
					cp.Num.Max = fv
				}
			}
		case *j.StringColumn:
			for i := 0; i < tc.Len(); i++ {
				v, present := tc.Get(i)
				if !present {
					cp.Str.Nulls++
					continue
				}
				cp.Str.Count++
				if c.topK > 0 {
					cp.Str.Freqs[v]++
				}
			}
		case *j.TimeColumn:
			for i := 0; i < tc.Len(); i++ {
				v, present := tc.Get(i)
				if !present {
					cp.Str.Nulls++
					continue
				}
				cp.Str.Count++
				if c.topK > 0 {
					cp.Str.Freqs[v.Format("2006-01-02")]++
				}
			}
		}
	}
}

// ReportText renders a human-readable summary, one line per column.
func (c *Collector) ReportText() string {
	var b strings.Builder
	b.WriteString("Profile Summary\n")
	for _, cp := range c.cols {
		fmt.Fprintf(&b, "- %s (%s): ", cp.Name, cp.Kind)
		switch {
		case cp.Num != nil:
			mean, _ := cp.Num.Mean()
			fmt.Fprintf(&b, "count=%d nulls=%d min=%.6g max=%.6g mean=%.6g\n",
				cp.Num.Count, cp.Num.Nulls, cp.Num.Min, cp.Num.Max, mean)
		default:
			fmt.Fprintf(&b, "count=%d nulls=%d\n", cp.Str.Count, cp.Str.Nulls)
			if len(cp.Str.Freqs) > 0 {
				type kv struct {
					k string
					v int
				}
				arr := make([]kv, 0, len(cp.Str.Freqs))
				for k, v := range cp.Str.Freqs {
					arr = append(arr, kv{k, v})
				}
				sort.Slice(arr, func(i, j int) bool {
					if arr[i].v != arr[j].v {
						return arr[i].v > arr[j].v
					}
					return arr[i].k < arr[j].k
				})
				n := c.topK
				if n > len(arr) {
					n = len(arr)
				}
				for i := 0; i < n; i++ {
					fmt.Fprintf(&b, "    %q: %d\n", arr[i].k, arr[i].v)
				}
			}
		}
	}
	return b.String()
}
