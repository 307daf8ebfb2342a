package parquetio

import (
	"os"
	"strconv"
	"strings"
	"time"

	parquet "github.com/segmentio/parquet-go"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// ReadAll loads a Parquet file into a Frame with the given schema, matching
// row fields to columns by name. Fields outside the schema are ignored.
func ReadAll(path string, schema j.Schema) (*j.Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	r := parquet.NewGenericReader[map[string]any](fh)
	defer func() { _ = r.Close() }()

	f := j.NewFrame(schema)
	buf := make([]map[string]any, 1024)
	for {
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			f.AppendNullRow()
			setRow(f, f.Rows()-1, buf[i])
		}
		if err != nil {
			if strings.Contains(err.Error(), "EOF") {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return f, nil
}

func setRow(f *j.Frame, row int, m map[string]any) {
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		switch cs.Type {
		case j.KindFloat:
			switch t := v.(type) {
			case float64:
				_ = f.SetCell(row, cs.Name, t)
			case int64:
				_ = f.SetCell(row, cs.Name, float64(t))
			case int32:
				_ = f.SetCell(row, cs.Name, float64(t))
			case string:
				if s := strings.TrimSpace(t); s != "" {
					if x, err := strconv.ParseFloat(s, 64); err == nil {
						_ = f.SetCell(row, cs.Name, x)
					}
				}
			}
		case j.KindInt:
			switch t := v.(type) {
			case int64:
				_ = f.SetCell(row, cs.Name, t)
			case int32:
				_ = f.SetCell(row, cs.Name, int64(t))
			case float64:
				_ = f.SetCell(row, cs.Name, int64(t))
			case string:
				if s := strings.TrimSpace(t); s != "" {
					if x, err := strconv.ParseInt(s, 10, 64); err == nil {
						_ = f.SetCell(row, cs.Name, x)
					}
				}
			}
		case j.KindTime:
			switch t := v.(type) {
			case string:
				if ts, err := time.Parse("2006-01-02", strings.TrimSpace(t)); err == nil {
					_ = f.SetCell(row, cs.Name, ts)
				}
			case []byte:
				if ts, err := time.Parse("2006-01-02", strings.TrimSpace(string(t))); err == nil {
					_ = f.SetCell(row, cs.Name, ts)
				}
			}
		default:
			switch t := v.(type) {
			case string:
				_ = f.SetCell(row, cs.Name, t)
			case []byte:
				_ = f.SetCell(row, cs.Name, string(t))
			}
		}
	}
}
