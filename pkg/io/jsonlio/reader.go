package jsonlio

import (
	"encoding/json"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/insurekit/policyclean/pkg/io/ioutils"
	j "github.com/insurekit/policyclean/pkg/policyclean"
)

type ReaderOptions struct {
	SampleRows int
}

type Reader struct {
	rc   io.ReadCloser
	dec  *json.Decoder
	opt  ReaderOptions
	buf  []map[string]any
	keys []string
}

// Open opens a JSONL file (gzip-aware) for reading.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := ioutils.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return &Reader{rc: rc, dec: json.NewDecoder(rc), opt: opt}, nil
}

func (r *Reader) Close() error { return r.rc.Close() }

// InferSchema samples objects to determine column names and kinds. Objects
// are keyed, so a known schema can be passed straight to ReadAll instead.
func (r *Reader) InferSchema() (j.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	keysSet := map[string]struct{}{}
	var sample []map[string]any
	for len(sample) < max {
		var m map[string]any
		if err := r.dec.Decode(&m); err != nil {
			if err == io.EOF {
				break
			}
			return j.Schema{}, err
		}
		sample = append(sample, m)
		for k := range m {
			keysSet[k] = struct{}{}
		}
	}
	r.buf = append(r.buf, sample...)
	r.keys = r.keys[:0]
	for k := range keysSet {
		r.keys = append(r.keys, k)
	}
	kinds := inferKinds(sample, r.keys)
	schema := j.Schema{Columns: make([]j.ColumnSchema, len(r.keys))}
	for i, k := range r.keys {
		schema.Columns[i] = j.ColumnSchema{Name: k, Type: kinds[i], Nullable: true}
	}
	return schema, nil
}

// ReadAll decodes all remaining objects into a Frame, matching object keys
// to schema columns by name.
func (r *Reader) ReadAll(schema j.Schema) (*j.Frame, error) {
	f := j.NewFrame(schema)
	for len(r.buf) > 0 {
		m := r.buf[0]
		r.buf = r.buf[1:]
		f.AppendNullRow()
		setRowFromMap(f, f.Rows()-1, m)
	}
	for {
		var m map[string]any
		if err := r.dec.Decode(&m); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		f.AppendNullRow()
		setRowFromMap(f, f.Rows()-1, m)
	}
	return f, nil
}

func setRowFromMap(f *j.Frame, row int, m map[string]any) {
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
			case string:
				if s := strings.TrimSpace(t); s != "" {
					if x, err := strconv.ParseFloat(s, 64); err == nil {
						_ = f.SetCell(row, cs.Name, x)
					}
				}
			}
		case j.KindInt:
			switch t := v.(type) {
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
			if t, ok := v.(string); ok {
				s := strings.TrimSpace(t)
				if ts, err := time.Parse("2006-01-02", s); err == nil {
					_ = f.SetCell(row, cs.Name, ts)
				} else if ts, err := time.Parse(time.RFC3339, s); err == nil {
					_ = f.SetCell(row, cs.Name, ts)
				}
			}
		default:
			switch t := v.(type) {
			case string:
				_ = f.SetCell(row, cs.Name, t)
			default:
				// non-string scalar landing in a text column: keep its JSON form
				b, _ := json.Marshal(t)
				_ = f.SetCell(row, cs.Name, string(b))
			}
		}
	}
}

func inferKinds(sample []map[string]any, keys []string) []j.Kind {
	kinds := make([]j.Kind, len(keys))
	numre := regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)
	for i, k := range keys {
		nNum, nInt, nStr := 0, 0, 0
		for _, m := range sample {
			v, ok := m[k]
			if !ok || v == nil {
				continue
			}
			switch t := v.(type) {
			case float64:
				nNum++
				if float64(int64(t)) == t {
					nInt++
				}
			case string:
				s := strings.TrimSpace(t)
				if s == "" {
					continue
				}
				if numre.MatchString(s) {
					nNum++
					if !strings.ContainsAny(s, ".eE") {
						nInt++
					}
				} else {
					nStr++
				}
			default:
				nStr++
			}
		}
		switch {
		case nNum > nStr && nInt == nNum:
			kinds[i] = j.KindInt
		case nNum > nStr:
			kinds[i] = j.KindFloat
		default:
			kinds[i] = j.KindString
		}
	}
	return kinds
}
