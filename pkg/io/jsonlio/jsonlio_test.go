package jsonlio

import (
	"path/filepath"
	"testing"
	"time"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

func TestRoundTrip(t *testing.T) {
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

	path := filepath.Join(t.TempDir(), "out.jsonl")
	if err := WriteAll(path, f); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path, ReaderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	got, err := r.ReadAll(s)
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
		t.Fatal("omitted field should read back as null")
	}
}

func TestInferSchema(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{
		{Name: "n", Type: j.KindFloat, Nullable: true},
		{Name: "s", Type: j.KindString, Nullable: true},
	}}
	f := j.NewFrame(s)
	for i := 0; i < 3; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "n", 1.5+float64(i))
		_ = f.SetCell(i, "s", "x")
	}
	path := filepath.Join(t.TempDir(), "out.jsonl")
	if err := WriteAll(path, f); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path, ReaderOptions{SampleRows: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	kinds := map[string]j.Kind{}
	for _, cs := range schema.Columns {
		kinds[cs.Name] = cs.Type
	}
	if kinds["n"] != j.KindFloat || kinds["s"] != j.KindString {
		t.Fatalf("kinds: %v", kinds)
	}
	got, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	// sampled rows must not be lost
	if got.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", got.Rows())
	}
}
