package filter

import (
	"context"
	"testing"

	j "github.com/insurekit/policyclean/pkg/policyclean"
)

func TestDropBelow(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{
		{Name: "x", Type: j.KindFloat, Nullable: true},
		{Name: "s", Type: j.KindString, Nullable: true},
	}}
	f := j.NewFrame(s)
	for i := 0; i < 4; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "x", 100.0)
	_ = f.SetCell(0, "s", "keep")
	_ = f.SetCell(1, "x", -50.0)
	_ = f.SetCell(1, "s", "drop")
	_ = f.SetCell(2, "x", 0.0)
	// row 3: x null, kept

	dropped := 0
	tf := &DropBelow{Column: "x", Min: 0, Dropped: &dropped}
	out, err := tf.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", out.Rows())
	}
	if dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", dropped)
	}
	col, _ := out.ColumnByName("s")
	c := col.(*j.StringColumn)
	for i := 0; i < out.Rows(); i++ {
		if v, ok := c.Get(i); ok && v == "drop" {
			t.Fatal("negative row survived")
		}
	}
	xcol, _ := out.ColumnByName("x")
	if !xcol.IsNull(2) {
		t.Fatal("null amount row should be kept, not dropped")
	}
}
