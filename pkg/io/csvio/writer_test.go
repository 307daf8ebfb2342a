package csvio

import (
	"path/filepath"
	"testing"
	"time"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

func sampleFrame() *j.Frame {
	s := j.Schema{Columns: []j.ColumnSchema{
		{Name: "name", Type: j.KindString, Nullable: true},
		{Name: "amount", Type: j.KindFloat, Nullable: true},
		{Name: "start", Type: j.KindTime, Nullable: true},
	}}
	f := j.NewFrame(s)
	for i := 0; i < 2; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "name", "JOHN SMITH")
	_ = f.SetCell(0, "amount", 120.5)
	_ = f.SetCell(0, "start", time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC))
	// row 1 all null
	return f
}

func roundTrip(t *testing.T, path string) {
	t.Helper()
	f := sampleFrame()
	if err := WriteAll(path, f, WriterOptions{}); err != nil {
		t.Fatal(err)
	}
	r, err := Open(path, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	got, err := r.ReadNamed(f.Schema())
	if err != nil {
		t.Fatal(err)
	}
	if got.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Rows())
	}
	nameCol, _ := got.ColumnByName("name")
	v, _ := nameCol.(*j.StringColumn).Get(0)
	if v != "JOHN SMITH" {
		t.Fatalf("got %q", v)
	}
	startCol, _ := got.ColumnByName("start")
	ts, ok := startCol.(*j.TimeColumn).Get(0)
	if !ok || !ts.Equal(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %v %v", ts, ok)
	}
	amtCol, _ := got.ColumnByName("amount")
	if !amtCol.IsNull(1) {
		t.Fatal("null row should read back as nulls")
	}
}

func TestWriteAllRoundTrip(t *testing.T) {
	roundTrip(t, filepath.Join(t.TempDir(), "out.csv"))
}

func TestWriteAllRoundTripGzip(t *testing.T) {
	roundTrip(t, filepath.Join(t.TempDir(), "out.csv.gz"))
}

func TestStreamWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	f := sampleFrame()
	w, err := NewStreamWriter(path, f.Schema(), WriterOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Write(f); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(f); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	got, err := r.ReadNamed(f.Schema())
	if err != nil {
		t.Fatal(err)
	}
	// one header for two chunks
	if got.Rows() != 4 {
		t.Fatalf("expected 4 rows, got %d", got.Rows())
	}
}
