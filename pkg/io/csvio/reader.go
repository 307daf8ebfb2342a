package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/insurekit/policyclean/pkg/io/ioutils"
	j "github.com/insurekit/policyclean/pkg/policyclean"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = ','
	SampleRows int  // for inference; default 100
	Strict     bool // if true, error on short/long records
}

type Reader struct {
	r      *csv.Reader
	rc     io.ReadCloser
	opt    ReaderOptions
	header []string
	buf    [][]string
	// repair/warning counters
	shortRecords int
	longRecords  int
}

// Open opens a CSV file (gzip-aware) and, when the options say so, consumes
// the header row immediately.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := ioutils.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	rr := csv.NewReader(rc)
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.FieldsPerRecord = -1
	r := &Reader{r: rr, rc: rc, opt: opt}
	if opt.HasHeader {
		rec, err := rr.Read()
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		r.header = make([]string, len(rec))
		for i := range rec {
			r.header[i] = strings.ToValidUTF8(rec[i], "?")
		}
		if len(r.header) > 0 {
			r.header[0] = strings.TrimPrefix(r.header[0], "\ufeff")
		}
	}
	return r, nil
}

func (r *Reader) Close() error { return r.rc.Close() }

// Header returns the header row, nil when the file has none.
func (r *Reader) Header() []string { return r.header }

// InferSchema samples rows to determine column kinds. Column names come from
// the header when present, col_N otherwise.
func (r *Reader) InferSchema() (j.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	var sample [][]string
	for len(sample) < max {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return j.Schema{}, err
		}
		sample = append(sample, rec)
	}
	if len(sample) == 0 && len(r.header) == 0 {
		return j.Schema{}, io.EOF
	}
	ncol := len(r.header)
	if ncol == 0 && len(sample) > 0 {
		ncol = len(sample[0])
	}
	names := make([]string, ncol)
	for i := range names {
		if i < len(r.header) {
			names[i] = r.header[i]
		} else {
			names[i] = "col_" + strconv.Itoa(i)
		}
	}
	kinds := inferKinds(sample, ncol)
	schema := j.Schema{Columns: make([]j.ColumnSchema, ncol)}
	for i := range names {
		schema.Columns[i] = j.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	// retain sampled rows for the subsequent read
	r.buf = append(r.buf, sample...)
	return schema, nil
}

// ReadAll loads the remaining records into a Frame, mapping record fields to
// schema columns by position.
func (r *Reader) ReadAll(schema j.Schema) (*j.Frame, error) {
	pos := make([]int, len(schema.Columns))
	for i := range pos {
		pos[i] = i
	}
	return r.readAll(schema, pos)
}

// ReadNamed loads the remaining records into a Frame, mapping record fields
// to schema columns by header name. Every schema column must appear in the
// header; extra columns in the file are ignored.
func (r *Reader) ReadNamed(schema j.Schema) (*j.Frame, error) {
	pos, err := r.namedPositions(schema)
	if err != nil {
		return nil, err
	}
	return r.readAll(schema, pos)
}

func (r *Reader) namedPositions(schema j.Schema) ([]int, error) {
	if r.header == nil {
		return nil, fmt.Errorf("csv: named read requires a header row")
	}
	byName := make(map[string]int, len(r.header))
	for i, h := range r.header {
		byName[strings.TrimSpace(h)] = i
	}
	pos := make([]int, len(schema.Columns))
	for i, cs := range schema.Columns {
		p, ok := byName[cs.Name]
		if !ok {
			return nil, fmt.Errorf("csv: missing column %q in header", cs.Name)
		}
		pos[i] = p
	}
	return pos, nil
}

func (r *Reader) readAll(schema j.Schema, pos []int) (*j.Frame, error) {
	f := j.NewFrame(schema)
	for len(r.buf) > 0 {
		rec := r.buf[0]
		r.buf = r.buf[1:]
		if err := r.appendRecord(f, schema, pos, rec); err != nil {
			return nil, err
		}
	}
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, schema, pos, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (r *Reader) appendRecord(f *j.Frame, schema j.Schema, pos []int, rec []string) error {
	want := len(schema.Columns)
	if r.header != nil {
		want = len(r.header)
	}
	if len(rec) > want {
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv: long record: need %d fields, got %d", want, len(rec))
		}
	}
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		p := pos[i]
		if p >= len(rec) {
			r.shortRecords++
			if r.opt.Strict {
				return fmt.Errorf("csv: short record: need %d fields, got %d", want, len(rec))
			}
			continue
		}
		val := strings.ToValidUTF8(strings.TrimSpace(rec[p]), "?")
		if val == "" {
			continue
		}
		setCell(f, row, cs, val)
	}
	return nil
}

// setCell parses val per the column kind; unparseable numeric or time text
// leaves the cell null for downstream rules to handle.
func setCell(f *j.Frame, row int, cs j.ColumnSchema, val string) {
	switch cs.Type {
	case j.KindFloat:
		if x, err := strconv.ParseFloat(val, 64); err == nil {
			_ = f.SetCell(row, cs.Name, x)
		}
	case j.KindInt:
		if x, err := strconv.ParseInt(val, 10, 64); err == nil {
			_ = f.SetCell(row, cs.Name, x)
		}
	case j.KindTime:
		if ts, err := time.Parse("2006-01-02", val); err == nil {
			_ = f.SetCell(row, cs.Name, ts)
		} else if ts, err := time.Parse(time.RFC3339, val); err == nil {
			_ = f.SetCell(row, cs.Name, ts)
		}
	default:
		_ = f.SetCell(row, cs.Name, val)
	}
}

func inferKinds(rows [][]string, ncol int) []j.Kind {
	kinds := make([]j.Kind, ncol)
	numre := regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)
	for c := 0; c < ncol; c++ {
		num, integer, str := 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if v == "" {
				continue
			}
			if numre.MatchString(v) {
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
			} else {
				str++
			}
		}
		// prefer float over int to be permissive
		switch {
		case num > str && integer == num:
			kinds[c] = j.KindInt
		case num > str:
			kinds[c] = j.KindFloat
		default:
			kinds[c] = j.KindString
		}
	}
	return kinds
}

// Warnings summarizes any record-shape mismatches seen while reading.
func (r *Reader) Warnings() string {
	var parts []string
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
