package jsonlio

import (
	"encoding/json"

	"github.com/insurekit/policyclean/pkg/io/ioutils"
	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// WriteAll writes a Frame as newline-delimited JSON (gzip-aware). Absent
// cells are omitted from their object; dates are written as yyyy-MM-dd.
func WriteAll(path string, f *j.Frame) error {
	out, err := ioutils.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	enc := json.NewEncoder(out)
	for r := 0; r < f.Rows(); r++ {
		m := map[string]any{}
		for _, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch cs.Type {
			case j.KindFloat:
				if v, ok := col.(*j.FloatColumn).Get(r); ok {
					m[cs.Name] = v
				}
			case j.KindInt:
				if v, ok := col.(*j.IntColumn).Get(r); ok {
					m[cs.Name] = v
				}
			case j.KindString:
				if v, ok := col.(*j.StringColumn).Get(r); ok {
					m[cs.Name] = v
				}
			case j.KindTime:
				if v, ok := col.(*j.TimeColumn).Get(r); ok {
					m[cs.Name] = v.Format("2006-01-02")
				}
			}
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}
