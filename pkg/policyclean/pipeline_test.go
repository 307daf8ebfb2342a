package policyclean_test

import (
	"context"
	"io"
	"strings"
	"testing"

	j "github.com/insurekit/policyclean/pkg/policyclean"
	"github.com/insurekit/policyclean/pkg/transform/scrub"
)

func TestPipeline(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "s", Type: j.KindString, Nullable: true}}}
	f := j.NewFrame(s)
	for i := 0; i < 2; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "s", "  foo ")
	// row 1 left null

	p := j.NewPipeline().Add(&scrub.Trim{Column: "s"}).Add(&scrub.Upper{Column: "s"})
	if got := p.Steps(); len(got) != 2 || got[0] != "trim" || got[1] != "upper" {
		t.Fatalf("unexpected steps: %v", got)
	}
	out, err := p.Run(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.ColumnByName("s")
	c := col.(*j.StringColumn)
	v, _ := c.Get(0)
	if v != "FOO" {
		t.Fatalf("expected FOO, got %q", v)
	}
	if !c.IsNull(1) {
		t.Fatal("null row should stay null")
	}
}

func TestPipelineWrapsStepError(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "s", Type: j.KindString, Nullable: true}}}
	f := j.NewFrame(s)
	f.AppendNullRow()
	_ = f.SetCell(0, "s", "x")

	p := j.NewPipeline().Add(&scrub.RegexReplace{Column: "s", Pattern: "(", Replace: ""})
	_, err := p.Run(context.Background(), f)
	if err == nil {
		t.Fatal("expected error from invalid pattern")
	}
	if !strings.Contains(err.Error(), "regex_replace") {
		t.Fatalf("error should name the failing step: %v", err)
	}
}

type sliceSource struct {
	frames []*j.Frame
	i      int
}

func (s *sliceSource) Next() (*j.Frame, error) {
	if s.i >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.i]
	s.i++
	return f, nil
}

type collectSink struct {
	rows   int
	chunks int
	closed bool
}

func (s *collectSink) Write(f *j.Frame) error { s.rows += f.Rows(); s.chunks++; return nil }
func (s *collectSink) Close() error           { s.closed = true; return nil }

func TestRunStream(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "s", Type: j.KindString, Nullable: true}}}
	mk := func(n int) *j.Frame {
		f := j.NewFrame(s)
		for i := 0; i < n; i++ {
			f.AppendNullRow()
			_ = f.SetCell(i, "s", " x ")
		}
		return f
	}
	src := &sliceSource{frames: []*j.Frame{mk(3), mk(2)}}
	sink := &collectSink{}
	p := j.NewPipeline().Add(&scrub.Trim{Column: "s"})
	if err := j.RunStream(context.Background(), p, src, sink); err != nil {
		t.Fatal(err)
	}
	if sink.rows != 5 || sink.chunks != 2 {
		t.Fatalf("expected 5 rows in 2 chunks, got %d in %d", sink.rows, sink.chunks)
	}
	if !sink.closed {
		t.Fatal("sink not closed")
	}
}
