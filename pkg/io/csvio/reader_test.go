package csvio

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadNamed(t *testing.T) {
	// columns deliberately out of schema order, plus one extra
	path := writeFile(t, "in.csv", strings.Join([]string{
		"amount,extra,name",
		"120.5,x,john",
		",y,mary",
		"bogus,z,",
		"",
	}, "\n"))

	schema := j.Schema{Columns: []j.ColumnSchema{
		{Name: "name", Type: j.KindString, Nullable: true},
		{Name: "amount", Type: j.KindFloat, Nullable: true},
	}}
	r, err := Open(path, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	f, err := r.ReadNamed(schema)
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", f.Rows())
	}
	nameCol, _ := f.ColumnByName("name")
	amtCol, _ := f.ColumnByName("amount")
	v, _ := nameCol.(*j.StringColumn).Get(0)
	if v != "john" {
		t.Fatalf("got %q", v)
	}
	a, ok := amtCol.(*j.FloatColumn).Get(0)
	if !ok || a != 120.5 {
		t.Fatalf("got %v %v", a, ok)
	}
	if !amtCol.IsNull(1) {
		t.Fatal("empty field should be null")
	}
	if !amtCol.IsNull(2) {
		t.Fatal("unparseable float should be null")
	}
	if !nameCol.IsNull(2) {
		t.Fatal("empty name should be null")
	}
}

func TestReadNamedMissingColumn(t *testing.T) {
	path := writeFile(t, "in.csv", "a,b\n1,2\n")
	schema := j.Schema{Columns: []j.ColumnSchema{{Name: "missing", Type: j.KindString, Nullable: true}}}
	r, err := Open(path, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	if _, err := r.ReadNamed(schema); err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestBOMStrippedFromHeader(t *testing.T) {
	path := writeFile(t, "in.csv", "\ufeffname,amount\njohn,1\n")
	r, err := Open(path, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	if h := r.Header(); h[0] != "name" {
		t.Fatalf("BOM not stripped: %q", h[0])
	}
}

func TestInferSchemaThenReadAll(t *testing.T) {
	path := writeFile(t, "in.csv", strings.Join([]string{
		"1,1.5,abc",
		"2,2.5,def",
		"3,,ghi",
		"",
	}, "\n"))
	r, err := Open(path, ReaderOptions{HasHeader: false, SampleRows: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	if len(schema.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(schema.Columns))
	}
	if schema.Columns[0].Type != j.KindInt || schema.Columns[1].Type != j.KindFloat || schema.Columns[2].Type != j.KindString {
		t.Fatalf("kinds: %v %v %v", schema.Columns[0].Type, schema.Columns[1].Type, schema.Columns[2].Type)
	}
	f, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	// sampled rows must not be lost
	if f.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", f.Rows())
	}
}

func TestShortRecordWarning(t *testing.T) {
	path := writeFile(t, "in.csv", "a,b\n1,2\n3\n")
	schema := j.Schema{Columns: []j.ColumnSchema{
		{Name: "a", Type: j.KindString, Nullable: true},
		{Name: "b", Type: j.KindString, Nullable: true},
	}}
	r, err := Open(path, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	f, err := r.ReadNamed(schema)
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", f.Rows())
	}
	if !strings.Contains(r.Warnings(), "short_records=1") {
		t.Fatalf("warnings: %q", r.Warnings())
	}

	strict, err := Open(path, ReaderOptions{HasHeader: true, Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = strict.Close() }()
	if _, err := strict.ReadNamed(schema); err == nil {
		t.Fatal("strict mode should error on short records")
	}
}

func TestStreamReaderChunks(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("name,amount\n")
	for i := 0; i < 5; i++ {
		sb.WriteString("n,1\n")
	}
	path := writeFile(t, "in.csv", sb.String())

	schema := j.Schema{Columns: []j.ColumnSchema{
		{Name: "name", Type: j.KindString, Nullable: true},
		{Name: "amount", Type: j.KindFloat, Nullable: true},
	}}
	sr, err := NewNamedStreamReader(path, ReaderOptions{}, schema, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = sr.Close() }()

	var sizes []int
	for {
		f, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		sizes = append(sizes, f.Rows())
	}
	if len(sizes) != 3 || sizes[0] != 2 || sizes[1] != 2 || sizes[2] != 1 {
		t.Fatalf("chunk sizes: %v", sizes)
	}
}
