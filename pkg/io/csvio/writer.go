package csvio

import (
	"encoding/csv"
	"strconv"

	"github.com/insurekit/policyclean/pkg/io/ioutils"
	j "github.com/insurekit/policyclean/pkg/policyclean"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to a CSV file (gzip-aware) with headers. Absent
// cells are written as empty fields; dates as yyyy-MM-dd.
func WriteAll(path string, f *j.Frame, opt WriterOptions) error {
	out, err := ioutils.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	hdr := make([]string, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		hdr[i] = cs.Name
	}
	if err := w.Write(hdr); err != nil {
		return err
	}

	for r := 0; r < f.Rows(); r++ {
		if err := w.Write(formatRow(f, r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatRow(f *j.Frame, r int) []string {
	cols := f.Schema().Columns
	row := make([]string, len(cols))
	for c, cs := range cols {
		col, _ := f.ColumnByName(cs.Name)
		switch cs.Type {
		case j.KindFloat:
			if v, ok := col.(*j.FloatColumn).Get(r); ok {
				row[c] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		case j.KindInt:
			if v, ok := col.(*j.IntColumn).Get(r); ok {
				row[c] = strconv.FormatInt(v, 10)
			}
		case j.KindString:
			if v, ok := col.(*j.StringColumn).Get(r); ok {
				row[c] = v
			}
		case j.KindTime:
			if v, ok := col.(*j.TimeColumn).Get(r); ok {
				row[c] = v.Format("2006-01-02")
			}
		}
	}
	return row
}
