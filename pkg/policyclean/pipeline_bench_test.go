package policyclean

import (
	"context"
	"strconv"
	"testing"
)

func benchFrame(rows int) *Frame {
	s := Schema{Columns: []ColumnSchema{
		{Name: "amount", Type: KindFloat, Nullable: true},
		{Name: "name", Type: KindString, Nullable: true},
	}}
	f := NewFrame(s)
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "amount", float64(i%1000))
		_ = f.SetCell(i, "name", "policyholder "+strconv.Itoa(i%50))
	}
	return f
}

type noopTransform struct{}

func (n *noopTransform) Name() string                                        { return "noop" }
func (n *noopTransform) Apply(ctx context.Context, f *Frame) (*Frame, error) { return f, nil }

func BenchmarkPipeline(b *testing.B) {
	f := benchFrame(100000)
	p := NewPipeline().Add(&noopTransform{}).Add(&noopTransform{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Run(context.Background(), f)
	}
}

func BenchmarkFilter(b *testing.B) {
	f := benchFrame(100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Filter(func(row int) bool { return row%10 != 0 })
	}
}
