package csvio

import (
	"encoding/csv"
	"io"

	"github.com/insurekit/policyclean/pkg/io/ioutils"
	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// StreamReader reads CSV into Frame chunks of up to chunkSize rows.
type StreamReader struct {
	r         *Reader
	schema    j.Schema
	pos       []int
	chunkSize int
}

// NewStreamReader opens the file, infers the schema from a sample, and
// returns a StreamReader mapping fields by position.
func NewStreamReader(path string, opt ReaderOptions, chunkSize int) (*StreamReader, error) {
	rr, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	schema, err := rr.InferSchema()
	if err != nil {
		_ = rr.Close()
		return nil, err
	}
	pos := make([]int, len(schema.Columns))
	for i := range pos {
		pos[i] = i
	}
	return &StreamReader{r: rr, schema: schema, pos: pos, chunkSize: chunkSize}, nil
}

// NewNamedStreamReader opens the file and maps the given schema's columns to
// record fields by header name, so a known schema is not at the mercy of
// sample-based inference.
func NewNamedStreamReader(path string, opt ReaderOptions, schema j.Schema, chunkSize int) (*StreamReader, error) {
	opt.HasHeader = true
	rr, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	pos, err := rr.namedPositions(schema)
	if err != nil {
		_ = rr.Close()
		return nil, err
	}
	return &StreamReader{r: rr, schema: schema, pos: pos, chunkSize: chunkSize}, nil
}

func (s *StreamReader) Schema() j.Schema { return s.schema }

func (s *StreamReader) Close() error { return s.r.Close() }

// Next returns the next chunk frame or io.EOF when complete.
func (s *StreamReader) Next() (*j.Frame, error) {
	if s.chunkSize <= 0 {
		s.chunkSize = 1024
	}
	f := j.NewFrame(s.schema)
	// drain rows buffered by schema inference first
	for len(s.r.buf) > 0 && f.Rows() < s.chunkSize {
		rec := s.r.buf[0]
		s.r.buf = s.r.buf[1:]
		if err := s.r.appendRecord(f, s.schema, s.pos, rec); err != nil {
			return nil, err
		}
	}
	for f.Rows() < s.chunkSize {
		rec, err := s.r.r.Read()
		if err == io.EOF {
			if f.Rows() == 0 {
				return nil, io.EOF
			}
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		if err := s.r.appendRecord(f, s.schema, s.pos, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// StreamWriter appends frames to a CSV file with a header written once.
type StreamWriter struct {
	w           *csv.Writer
	out         io.WriteCloser
	wroteHeader bool
	schema      j.Schema
}

func NewStreamWriter(path string, schema j.Schema, opt WriterOptions) (*StreamWriter, error) {
	out, err := ioutils.CreateMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	return &StreamWriter{w: w, out: out, schema: schema}, nil
}

func (s *StreamWriter) Write(fr *j.Frame) error {
	if !s.wroteHeader {
		hdr := make([]string, len(s.schema.Columns))
		for i, cs := range s.schema.Columns {
			hdr[i] = cs.Name
		}
		if err := s.w.Write(hdr); err != nil {
			return err
		}
		s.wroteHeader = true
	}
	for r := 0; r < fr.Rows(); r++ {
		if err := s.w.Write(formatRow(fr, r)); err != nil {
			return err
		}
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *StreamWriter) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.out.Close()
		return err
	}
	return s.out.Close()
}
