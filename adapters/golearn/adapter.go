// Package golearn converts between policyclean Frames and
// github.com/sjwhitworth/golearn/base DenseInstances, so a cleaned policy
// dataset can feed golearn models directly (e.g. predicting policy_type).
package golearn

import (
	"github.com/sjwhitworth/golearn/base"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. Numeric
// columns become float attributes, everything else (including dates, as
// yyyy-MM-dd text) becomes categorical. When class names a column, it is
// registered as the class attribute.
func ToDenseInstances(f *j.Frame, class string) (*base.DenseInstances, error) {
	cols := f.Schema().Columns
	attrs := make([]base.Attribute, len(cols))
	classIdx := -1
	for i, cs := range cols {
		switch cs.Type {
		case j.KindFloat, j.KindInt:
			attrs[i] = base.NewFloatAttribute(cs.Name)
		default:
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
		if cs.Name == class {
			classIdx = i
		}
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c, cs := range cols {
			col, _ := f.ColumnByName(cs.Name)
			switch tc := col.(type) {
			case *j.FloatColumn:
				if v, ok := tc.Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(v))
				}
			case *j.IntColumn:
				if v, ok := tc.Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(float64(v)))
				}
			case *j.StringColumn:
				if v, ok := tc.Get(r); ok {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], v))
				}
			case *j.TimeColumn:
				if v, ok := tc.Get(r); ok {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], v.Format("2006-01-02")))
				}
			}
		}
	}
	if classIdx >= 0 {
		if err := inst.AddClassAttribute(attrs[classIdx]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances back into a Frame.
// Float attributes become float columns; everything else comes back as text.
func FromDenseInstances(inst *base.DenseInstances) (*j.Frame, error) {
	attrs := inst.AllAttributes()
	schema := j.Schema{Columns: make([]j.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		k := j.KindString
		if a.GetType() == base.Float64Type {
			k = j.KindFloat
		}
		schema.Columns[i] = j.ColumnSchema{Name: a.GetName(), Type: k, Nullable: true}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	f := j.NewFrame(schema)
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			switch cs.Type {
			case j.KindFloat:
				v := base.UnpackBytesToFloat(inst.Get(specs[c], r))
				_ = f.SetCell(r, cs.Name, v)
			default:
				v := base.Attribute.GetStringFromSysVal(specs[c].GetAttribute(), inst.Get(specs[c], r))
				_ = f.SetCell(r, cs.Name, v)
			}
		}
	}
	return f, nil
}
